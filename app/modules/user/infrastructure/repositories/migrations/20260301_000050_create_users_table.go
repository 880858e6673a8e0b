package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating users table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				username VARCHAR(64) NOT NULL UNIQUE,
				first_name VARCHAR(128),
				last_name VARCHAR(128),
				avatar TEXT,
				country VARCHAR(2),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`)
		if err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping users table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS users;`); err != nil {
			return fmt.Errorf("failed to drop users table: %w", err)
		}
		return nil
	})
}
