//go:build integration

package testutils

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	catalogmigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories/migrations"
	participationmigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories/migrations"
	usermigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/user/infrastructure/repositories/migrations"
)

// RunMigrations applies all module migrations in foreign-key order, each
// module tracked in its own table.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	ordered := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"user", usermigrations.Migrations},
		{"catalog", catalogmigrations.Migrations},
		{"participation", participationmigrations.Migrations},
	}

	for _, mod := range ordered {
		migrator := migrate.NewMigrator(db, mod.migrations,
			migrate.WithTableName("bun_migrations_"+mod.name),
			migrate.WithLocksTableName("bun_migration_locks_"+mod.name),
		)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}

// CleanTables truncates the domain tables, children first.
func CleanTables(ctx context.Context, db bun.IDB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE TABLE user_editions, user_competitions, editions, competitions, events, users CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}
