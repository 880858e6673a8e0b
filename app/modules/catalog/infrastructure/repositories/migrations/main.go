package catalogmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

func init() {
	// Each migration file registers without an explicit ID, so the ID is
	// derived from the caller's file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
