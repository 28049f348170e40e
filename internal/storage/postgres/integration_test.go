package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
)

// TestStore_Integration tests the PostgreSQL store against a real database.
// Example: POSTGRES_TEST_URL="postgres://habitrackr_user@localhost:5432/habitrackr_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Theme", func(t *testing.T) {
		theme, err := store.GetTheme()
		if err != nil {
			t.Fatalf("Failed to get theme: %v", err)
		}
		if theme != constants.ThemeLight && theme != constants.ThemeDark {
			t.Errorf("unexpected theme %q", theme)
		}

		if err := store.SetTheme(constants.ThemeDark); err != nil {
			t.Fatalf("Failed to set theme: %v", err)
		}
		theme, err = store.GetTheme()
		if err != nil {
			t.Fatalf("Failed to get theme: %v", err)
		}
		if theme != constants.ThemeDark {
			t.Errorf("Expected dark theme, got %s", theme)
		}
	})

	t.Run("Habits", func(t *testing.T) {
		habits := []models.Habit{
			{ID: "h1", UserID: "u1", Name: "Read", GoalDays: 30, StartDate: "2026-10-01", CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)},
			{ID: "h2", UserID: "u1", Name: "Run", GoalDays: 10, StartDate: "2026-10-05", CreatedAt: time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC)},
		}
		if err := store.ReplaceHabits(habits); err != nil {
			t.Fatalf("Failed to replace habits: %v", err)
		}

		got, err := store.ListHabits()
		if err != nil {
			t.Fatalf("Failed to list habits: %v", err)
		}
		if len(got) != 2 || got[0].ID != "h1" || got[1].ID != "h2" {
			t.Errorf("habits not returned in insertion order: %+v", got)
		}
	})

	t.Run("Session", func(t *testing.T) {
		if err := store.SetCurrentUserID("u1"); err != nil {
			t.Fatalf("Failed to set current user: %v", err)
		}
		id, err := store.GetCurrentUserID()
		if err != nil {
			t.Fatalf("Failed to get current user: %v", err)
		}
		if id != "u1" {
			t.Errorf("Expected current user u1, got %q", id)
		}
		if err := store.SetCurrentUserID(""); err != nil {
			t.Fatalf("Failed to clear current user: %v", err)
		}
	})
}
