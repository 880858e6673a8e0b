package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	catalogmigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/catalog/infrastructure/repositories/migrations"
	participationmigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/participation/infrastructure/repositories/migrations"
	usermigrations "github.com/nicolapicasso/wwtrail-all-sub003/app/modules/user/infrastructure/repositories/migrations"
	"github.com/nicolapicasso/wwtrail-all-sub003/config"
	"github.com/nicolapicasso/wwtrail-all-sub003/db/bundb"
)

// moduleMigrator pairs a module with its migrator. The list order is the
// foreign-key order; rollback walks it backwards.
type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func newMigrators(db *bun.DB) []moduleMigrator {
	sets := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"user", usermigrations.Migrations},
		{"catalog", catalogmigrations.Migrations},
		{"participation", participationmigrations.Migrations},
	}

	migrators := make([]moduleMigrator, 0, len(sets))
	for _, s := range sets {
		migrators = append(migrators, moduleMigrator{
			name: s.name,
			migrator: migrate.NewMigrator(db, s.migrations,
				migrate.WithTableName("bun_migrations_"+s.name),
				migrate.WithLocksTableName("bun_migration_locks_"+s.name),
			),
		})
	}
	return migrators
}

func main() {
	var db *bun.DB

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "wwtrail database tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err = bundb.Open(c.Context, bundb.Options{DSN: cfg.Postgres.DSN}, slog.Default())
			return err
		},
		After: func(c *cli.Context) error {
			if db != nil {
				return db.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(func() []moduleMigrator { return newMigrators(db) }),
		},
	}

	if err := cliApp.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func findMigrator(migrators []moduleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.name == name {
			return m.migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

func newMultiModuleDBCommand(migrators func() []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						fmt.Printf("Initializing migrations for module: %s\n", m.name)
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.name, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						if err := m.migrator.Lock(c.Context); err != nil {
							return fmt.Errorf("lock %s: %w", m.name, err)
						}
						group, err := m.migrator.Migrate(c.Context)
						unlockErr := m.migrator.Unlock(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.name, err)
						}
						if unlockErr != nil {
							return fmt.Errorf("unlock %s: %w", m.name, unlockErr)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Action: func(c *cli.Context) error {
					ms := migrators()
					for i := len(ms) - 1; i >= 0; i-- {
						m := ms[i]
						group, err := m.migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
						}
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					migrator, err := findMigrator(migrators(), c.Args().First())
					if err != nil {
						return err
					}
					mf, err := migrator.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
					if err != nil {
						return err
					}
					fmt.Printf("Created migration: %s (%s)\n", mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					migrator, err := findMigrator(migrators(), c.Args().First())
					if err != nil {
						return err
					}
					files, err := migrator.CreateSQLMigrations(c.Context, strings.Join(c.Args().Tail(), "_"))
					if err != nil {
						return err
					}
					for _, mf := range files {
						fmt.Printf("Created migration: %s (%s)\n", mf.Name, mf.Path)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for _, m := range migrators() {
						ms, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("status %s: %w", m.name, err)
						}
						fmt.Printf("Migrations for module: %s\n", m.name)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						fmt.Printf("  Last group: %s\n", ms.LastGroup())
					}
					return nil
				},
			},
		},
	}
}
