package backup

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/storage/sqlite"
)

func habitNames(t *testing.T, store storage.Provider) []string {
	t.Helper()
	habits, err := store.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	names := make([]string, 0, len(habits))
	for _, h := range habits {
		names = append(names, h.Name)
	}
	return names
}

// TestIntegrationBackupRestoreWorkflow backs up a migrated store, changes it,
// and restores it
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	tests := []struct {
		name string
		file string
		open func(path string) storage.Provider
	}{
		{"sqlite", "habitrackr.db", func(p string) storage.Provider { return sqlite.NewStore(p) }},
		{"json", "habitrackr.json", func(p string) storage.Provider { return storage.NewJSONStore(p) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)

			store := tt.open(path)
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			if err := store.ReplaceHabits([]models.Habit{{ID: "h1", UserID: "u1", Name: "Read", GoalDays: 30}}); err != nil {
				t.Fatalf("ReplaceHabits failed: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			mgr := newTestManager(path)
			backupPath, err := mgr.CreateBackup()
			if err != nil {
				t.Fatalf("failed to create backup: %v", err)
			}

			store = tt.open(path)
			if err := store.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if err := store.ReplaceHabits([]models.Habit{
				{ID: "h1", UserID: "u1", Name: "Read", GoalDays: 30},
				{ID: "h2", UserID: "u1", Name: "Walk", GoalDays: 7},
			}); err != nil {
				t.Fatalf("ReplaceHabits failed: %v", err)
			}
			store.Close()

			if _, err := mgr.RestoreBackup(backupPath); err != nil {
				t.Fatalf("failed to restore backup: %v", err)
			}

			store = tt.open(path)
			if err := store.Load(); err != nil {
				t.Fatalf("Load after restore failed: %v", err)
			}
			defer store.Close()

			names := habitNames(t, store)
			if len(names) != 1 || names[0] != "Read" {
				t.Errorf("habits after restore = %v, want [Read]", names)
			}

			backups, err := mgr.ListBackups()
			if err != nil {
				t.Fatalf("failed to list backups: %v", err)
			}
			if len(backups) != 2 {
				t.Errorf("expected 2 backups (original + pre-restore), got %d", len(backups))
			}
		})
	}
}
