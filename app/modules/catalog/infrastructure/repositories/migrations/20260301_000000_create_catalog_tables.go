package catalogmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating events, competitions and editions tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS events (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(255) NOT NULL,
					slug VARCHAR(255) NOT NULL UNIQUE,
					city VARCHAR(255) NOT NULL DEFAULT '',
					country VARCHAR(2) NOT NULL DEFAULT '',
					description TEXT,
					website TEXT,
					typical_month INTEGER CHECK (typical_month BETWEEN 1 AND 12),
					status VARCHAR(20) NOT NULL DEFAULT 'PUBLISHED',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS competitions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
					name VARCHAR(255) NOT NULL,
					slug VARCHAR(255) NOT NULL UNIQUE,
					type VARCHAR(20) NOT NULL DEFAULT 'TRAIL',
					base_distance DOUBLE PRECISION,
					base_elevation INTEGER,
					base_max_participants INTEGER,
					status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_competitions_event_id ON competitions(event_id);
			`); err != nil {
				return fmt.Errorf("failed to create competitions table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS editions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					competition_id UUID NOT NULL REFERENCES competitions(id) ON DELETE CASCADE,
					year INTEGER NOT NULL,
					slug VARCHAR(255) NOT NULL UNIQUE,
					distance DOUBLE PRECISION,
					elevation INTEGER,
					max_participants INTEGER,
					city VARCHAR(255),
					current_participants INTEGER NOT NULL DEFAULT 0,
					status VARCHAR(30) NOT NULL DEFAULT 'UPCOMING',
					registration_status VARCHAR(20) NOT NULL DEFAULT 'COMING_SOON',
					registration_opens_at TIMESTAMPTZ,
					registration_closes_at TIMESTAMPTZ,
					start_date TIMESTAMPTZ,
					end_date TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_editions_competition_year UNIQUE (competition_id, year)
				);
			`); err != nil {
				return fmt.Errorf("failed to create editions table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping catalog tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, table := range []string{"editions", "competitions", "events"} {
				if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE;"); err != nil {
					return fmt.Errorf("failed to drop %s table: %w", table, err)
				}
			}
			return nil
		})
	})
}
