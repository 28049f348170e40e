package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
)

func setupTestSQLiteStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesTables(t *testing.T) {
	store := setupTestSQLiteStore(t)

	for _, table := range []string{"collections", "preferences", "schema_version"} {
		exists, err := store.tableExists(table)
		if err != nil {
			t.Fatalf("tableExists(%q) returned error: %v", table, err)
		}
		if !exists {
			t.Errorf("expected table %q to exist", table)
		}
	}

	exists, err := store.tableExists("nonexistent_table")
	if err != nil {
		t.Fatalf("tableExists() returned error: %v", err)
	}
	if exists {
		t.Error("tableExists() = true for a missing table")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestSQLiteStore(t)
	if err := store.ReplaceUsers([]models.User{{ID: "u1", Name: "Ada"}}); err != nil {
		t.Fatalf("ReplaceUsers failed: %v", err)
	}
	if err := store.SetTheme(constants.ThemeDark); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	store.Close()

	again := NewStore(store.GetConfigPath())
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer again.Close()

	users, err := again.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user after re-init, got %d", len(users))
	}
	theme, _ := again.GetTheme()
	if theme != constants.ThemeDark {
		t.Errorf("re-init overwrote theme preference: %q", theme)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("expected Load to fail for a missing database")
	}
}

func TestCollectionsRoundTrip(t *testing.T) {
	store := setupTestSQLiteStore(t)

	empty, err := store.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}

	entries := []models.TrackingEntry{
		{ID: "e1", UserID: "u1", HabitID: "h1", Date: "2026-10-01", Completed: true},
		{ID: "e2", UserID: "u1", HabitID: "h1", Date: "2026-10-02", Completed: false},
	}
	if err := store.ReplaceEntries(entries); err != nil {
		t.Fatalf("ReplaceEntries failed: %v", err)
	}
	if err := store.ReplaceEntries(entries[:1]); err != nil {
		t.Fatalf("second ReplaceEntries failed: %v", err)
	}

	got, err := store.ListEntries()
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(got) != 1 || got[0] != entries[0] {
		t.Errorf("expected replace to overwrite collection, got %+v", got)
	}

	revision, err := store.Revision(constants.CollectionEntries)
	if err != nil {
		t.Fatalf("Revision failed: %v", err)
	}
	if revision != 2 {
		t.Errorf("expected revision 2, got %d", revision)
	}
}

func TestCorruptCollection(t *testing.T) {
	store := setupTestSQLiteStore(t)
	_, err := store.GetDB().Exec(
		"INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)",
		constants.CollectionHabits, "{broken", "2026-10-15T00:00:00Z")
	if err != nil {
		t.Fatalf("failed to seed corrupt payload: %v", err)
	}

	_, err = store.ListHabits()
	if !apperrors.Is(err, apperrors.ErrPersistenceUnavailable) {
		t.Errorf("expected ErrPersistenceUnavailable, got %v", err)
	}
}

func TestPreferences(t *testing.T) {
	store := setupTestSQLiteStore(t)

	theme, err := store.GetTheme()
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme != constants.ThemeLight {
		t.Errorf("expected default light theme, got %q", theme)
	}

	current, err := store.GetCurrentUserID()
	if err != nil {
		t.Fatalf("GetCurrentUserID failed: %v", err)
	}
	if current != "" {
		t.Errorf("expected no current user, got %q", current)
	}

	if err := store.SetCurrentUserID("u1"); err != nil {
		t.Fatalf("SetCurrentUserID failed: %v", err)
	}
	current, _ = store.GetCurrentUserID()
	if current != "u1" {
		t.Errorf("expected current user u1, got %q", current)
	}

	if err := store.SetCurrentUserID(""); err != nil {
		t.Fatalf("clearing current user failed: %v", err)
	}
	current, _ = store.GetCurrentUserID()
	if current != "" {
		t.Errorf("expected cleared current user, got %q", current)
	}
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	store := setupTestSQLiteStore(t)
	store.Close()

	if _, err := store.ListUsers(); !apperrors.Is(err, apperrors.ErrPersistenceUnavailable) {
		t.Errorf("expected ErrPersistenceUnavailable, got %v", err)
	}
}
