package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name      string
	run       func(ctx *cli.Context) error
	needsData bool
	warnOnly  bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsData: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsData: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsData: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Orphaned entries", run: checkOrphanedEntries, needsData: true, warnOnly: true},
	{name: "Tracking duplicates", run: checkEntryDuplicates, needsData: true},
	{name: "Date formats", run: checkDateFormats, needsData: true},
	{name: "Session", run: checkSession, needsData: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Store reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsData && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(migratable)
	if !ok {
		return nil
	}
	runner, err := store.Migrator()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(migratable)
	if !ok {
		return nil
	}
	runner, err := store.Migrator()
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, run '%s migrate'", pending, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	users, err := ctx.Store.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}
	ids := make(map[string]bool)
	for _, u := range users {
		if ids[u.ID] {
			return fmt.Errorf("duplicate user ID found: %s", u.ID)
		}
		ids[u.ID] = true
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	ids = make(map[string]bool)
	for _, h := range habits {
		if ids[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		ids[h.ID] = true
		if err := h.Validate(); err != nil {
			return fmt.Errorf("habit %s is invalid: %w", h.ID, err)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
	}
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkOrphanedEntries(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListEntries()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	orphaned := 0
	for _, e := range entries {
		if !known[e.HabitID] {
			orphaned++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d tracking entries referencing deleted habits", orphaned)
	}
	return nil
}

func checkEntryDuplicates(ctx *cli.Context) error {
	entries, err := ctx.Store.ListEntries()
	if err != nil {
		return err
	}
	seen := make(map[models.EntryKey]bool, len(entries))
	duplicates := 0
	for _, e := range entries {
		if seen[e.Key()] {
			duplicates++
		}
		seen[e.Key()] = true
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d duplicate entries for the same habit and day (the next write folds them)", duplicates)
	}
	return nil
}

func checkDateFormats(ctx *cli.Context) error {
	entries, err := ctx.Store.ListEntries()
	if err != nil {
		return err
	}
	invalid := 0
	for _, e := range entries {
		if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("found %d tracking entries with invalid date format", invalid)
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	id, err := ctx.Store.GetCurrentUserID()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	if _, err := ctx.Accounts.Get(id); err != nil {
		return fmt.Errorf("session points at a missing user %s", id)
	}
	return nil
}
