package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitrackr/internal/backup"
	"github.com/julianstephens/habitrackr/internal/cli/clitest"
	"github.com/julianstephens/habitrackr/internal/models"
)

func TestBackupCreateAndList(t *testing.T) {
	for _, file := range []string{"test.db", "test.json"} {
		t.Run(file, func(t *testing.T) {
			env := clitest.Initialized(t, file)

			if err := (&BackupListCmd{}).Run(env.Context); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if out := env.Output(); !strings.Contains(out, "No backups found.") {
				t.Errorf("unexpected output: %s", out)
			}

			if err := (&BackupCreateCmd{}).Run(env.Context); err != nil {
				t.Fatalf("create failed: %v", err)
			}
			created := env.Output()
			if !strings.Contains(created, "✓ Backup created: habitrackr-") {
				t.Errorf("unexpected output: %s", created)
			}

			if err := (&BackupListCmd{}).Run(env.Context); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if out := env.Output(); !strings.Contains(out, "Available backups (1 total") {
				t.Errorf("unexpected output: %s", out)
			}
		})
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	env := clitest.Initialized(t, "test.db")
	habits := []models.Habit{{ID: "h1", UserID: "u1", Name: "Read", GoalDays: 30}}
	if err := env.Store.ReplaceHabits(habits); err != nil {
		t.Fatal(err)
	}
	backupPath, err := backup.NewManager(env.Path).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Store.ReplaceHabits([]models.Habit{}); err != nil {
		t.Fatal(err)
	}

	env.Input("no\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(env.Context); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Restore cancelled.") {
		t.Errorf("unexpected output: %s", out)
	}

	env.Input("y\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(env.Context); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Previous data saved as: habitrackr-") {
		t.Errorf("expected the pre-restore backup to be reported: %s", out)
	}

	if err := env.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	got, err := env.Store.ListHabits()
	if err != nil || len(got) != 1 || got[0].Name != "Read" {
		t.Errorf("habits after restore = %v, %v", got, err)
	}
}

func TestBackupRestoreCmd_NotFound(t *testing.T) {
	env := clitest.Initialized(t, "test.db")
	err := (&BackupRestoreCmd{BackupFile: "habitrackr-19990101-0000.db", Yes: true}).Run(env.Context)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
