package participationmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating user_competitions and user_editions tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS user_competitions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL,
					competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
					status VARCHAR(20) NOT NULL,
					finish_time VARCHAR(16),
					finish_time_seconds INTEGER,
					position INTEGER,
					category_position INTEGER,
					notes TEXT,
					personal_rating INTEGER CHECK (personal_rating BETWEEN 1 AND 5),
					completed_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_user_competitions_user_competition UNIQUE (user_id, competition_id)
				);
				CREATE INDEX IF NOT EXISTS idx_user_competitions_status ON user_competitions(status);
			`); err != nil {
				return fmt.Errorf("failed to create user_competitions table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS user_editions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL,
					edition_id UUID NOT NULL REFERENCES editions(id) ON DELETE CASCADE,
					status VARCHAR(20) NOT NULL,
					finish_time VARCHAR(16),
					finish_time_seconds INTEGER,
					position INTEGER,
					category_position INTEGER,
					bib_number VARCHAR(32),
					category_type VARCHAR(64),
					category_name VARCHAR(128),
					notes TEXT,
					personal_rating INTEGER CHECK (personal_rating BETWEEN 1 AND 5),
					completed_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_user_editions_user_edition UNIQUE (user_id, edition_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create user_editions table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping participation tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, table := range []string{"user_editions", "user_competitions"} {
				if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+";"); err != nil {
					return fmt.Errorf("failed to drop %s table: %w", table, err)
				}
			}
			return nil
		})
	})
}
