//go:build integration

package testutils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/nicolapicasso/wwtrail-all-sub003/db/bundb"
	"github.com/nicolapicasso/wwtrail-all-sub003/integration_tests/containers"
)

// TestEnvironment holds the resources shared by a package's integration
// tests.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	DSN           string
}

// NewTestEnvironment starts Postgres, connects through pgdriver and applies
// every module's migrations.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer
	env.DSN = dsn

	db, err := bundb.Open(ctx, bundb.Options{DSN: dsn}, nil)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	env.DB = db

	if err := RunMigrations(ctx, db); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return env, nil
}

// Reset empties every table between tests.
func (env *TestEnvironment) Reset() error {
	return CleanTables(env.Ctx, env.DB)
}

// Cleanup tears down all resources created for testing.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.DB != nil {
		env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}
