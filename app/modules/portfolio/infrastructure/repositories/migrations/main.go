package portfoliomigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds every schema migration for the portfolio module.
var Migrations = migrate.NewMigrations()

func init() {
	// Each migration ID comes from its file name.
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
