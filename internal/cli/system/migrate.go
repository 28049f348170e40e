package system

import (
	"fmt"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/migration"
)

// migratable is implemented by the SQL-backed stores
type migratable interface {
	Migrator() (*migration.Runner, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(migratable)
	if !ok {
		ctx.Println("The JSON store has no schema. Nothing to migrate.")
		return nil
	}

	runner, err := store.Migrator()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
