package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		source, err := cli.OpenStore(c.Source, false)
		if err != nil {
			return err
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source store: %w", err)
		}
		defer source.Close()

		if err := CopyStore(ctx, source, ctx.Store); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// reset deletes a file-backed store, refusing when it is also the source
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if !cli.IsFileStore(dbPath) {
		return fmt.Errorf("--force is only supported for file-based stores")
	}
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// CopyStore copies every collection and preference from src to dst
func CopyStore(ctx *cli.Context, src, dst storage.Provider) error {
	ctx.Println("  Migrating users...")
	users, err := src.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}
	if err := dst.ReplaceUsers(users); err != nil {
		return fmt.Errorf("failed to save users to destination: %w", err)
	}
	ctx.Printf("    Migrated %d users\n", len(users))

	ctx.Println("  Migrating habits...")
	habits, err := src.ListHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	if err := dst.ReplaceHabits(habits); err != nil {
		return fmt.Errorf("failed to save habits to destination: %w", err)
	}
	ctx.Printf("    Migrated %d habits\n", len(habits))

	ctx.Println("  Migrating tracking entries...")
	entries, err := src.ListEntries()
	if err != nil {
		return fmt.Errorf("failed to get tracking entries from source: %w", err)
	}
	if err := dst.ReplaceEntries(entries); err != nil {
		return fmt.Errorf("failed to save tracking entries to destination: %w", err)
	}
	ctx.Printf("    Migrated %d tracking entries\n", len(entries))

	ctx.Println("  Migrating preferences...")
	theme, err := src.GetTheme()
	if err != nil {
		return fmt.Errorf("failed to get theme from source: %w", err)
	}
	if err := dst.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to save theme to destination: %w", err)
	}
	current, err := src.GetCurrentUserID()
	if err != nil {
		return fmt.Errorf("failed to get session from source: %w", err)
	}
	return dst.SetCurrentUserID(current)
}
