package registry

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/ledger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/utils"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	reg    *Registry
	ledger *ledger.Ledger
	store  storage.Provider
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, store.Init())

	l := ledger.New(store, utils.FixedClock(now))
	reg := New(store, utils.FixedClock(now), l)
	n := 0
	reg.newID = func() string {
		n++
		return fmt.Sprintf("habit-%04d", n)
	}
	return fixture{reg: reg, ledger: l, store: store}
}

func TestSaveHabit_Create(t *testing.T) {
	f := newFixture(t)

	h, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: " Read ", GoalDays: 21})
	require.NoError(t, err)

	assert.Equal(t, "habit-0001", h.ID)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, "2026-10-15", h.StartDate, "start defaults to today")
	assert.Equal(t, now, h.CreatedAt)
	assert.Equal(t, constants.DefaultIcon, h.Icon)
	assert.Equal(t, constants.DefaultCategory, h.Category)

	got, err := f.reg.GetHabit("u1", h.ID)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestSaveHabit_CreateNormalizesStartTimestamp(t *testing.T) {
	f := newFixture(t)

	h, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Run", GoalDays: 5, StartDate: "2026-10-20T12:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", h.StartDate)
}

func TestSaveHabit_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		habit models.Habit
		field string
	}{
		{"zero goal", models.Habit{UserID: "u1", Name: "Run", GoalDays: 0}, "goalDays"},
		{"negative goal", models.Habit{UserID: "u1", Name: "Run", GoalDays: -3}, "goalDays"},
		{"goal over a year", models.Habit{UserID: "u1", Name: "Run", GoalDays: 366}, "goalDays"},
		{"blank name", models.Habit{UserID: "u1", Name: "   ", GoalDays: 5}, "name"},
		{"no owner", models.Habit{Name: "Run", GoalDays: 5}, "userId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reg.SaveHabit(tt.habit)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	habits, err := f.store.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, habits, "invalid habits are never persisted")
}

func TestSaveHabit_UpdatePreservesImmutableFields(t *testing.T) {
	f := newFixture(t)

	created, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 30, StartDate: "2026-10-01"})
	require.NoError(t, err)

	updated, err := f.reg.SaveHabit(models.Habit{
		ID:        created.ID,
		Name:      "Read more",
		GoalDays:  60,
		StartDate: "2027-01-01",
		Category:  "Study",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", updated.UserID)
	assert.Equal(t, "2026-10-01", updated.StartDate)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Read more", updated.Name)
	assert.Equal(t, 60, updated.GoalDays)
	assert.Equal(t, "Study", updated.Category)

	habits, err := f.reg.ListHabits("u1")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, updated, habits[0])
}

func TestSaveHabit_AnotherUsersHabitIsNotFound(t *testing.T) {
	f := newFixture(t)

	created, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 30, StartDate: "2026-10-01"})
	require.NoError(t, err)

	_, err = f.reg.SaveHabit(models.Habit{ID: created.ID, UserID: "u2", Name: "Mine now", GoalDays: 5})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	kept, err := f.reg.GetHabit("u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, kept)
}

func TestSaveHabit_UnknownIDIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.SaveHabit(models.Habit{ID: "missing", UserID: "u1", Name: "Read", GoalDays: 30})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	habits, err := f.store.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestListHabits_ScopedAndOrdered(t *testing.T) {
	f := newFixture(t)

	for _, h := range []models.Habit{
		{UserID: "u1", Name: "C", GoalDays: 1},
		{UserID: "u2", Name: "X", GoalDays: 1},
		{UserID: "u1", Name: "A", GoalDays: 1},
		{UserID: "u1", Name: "B", GoalDays: 1},
	} {
		_, err := f.reg.SaveHabit(h)
		require.NoError(t, err)
	}

	habits, err := f.reg.ListHabits("u1")
	require.NoError(t, err)
	names := []string{}
	for _, h := range habits {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)

	_, err = f.reg.GetHabit("u1", "habit-0002")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "another user's habit is not visible")
}

func TestResolve(t *testing.T) {
	f := newFixture(t)

	read, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 1})
	require.NoError(t, err)
	_, err = f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Run", GoalDays: 1})
	require.NoError(t, err)

	got, err := f.reg.Resolve("u1", "read")
	require.NoError(t, err)
	assert.Equal(t, read.ID, got.ID)

	got, err = f.reg.Resolve("u1", read.ID)
	require.NoError(t, err)
	assert.Equal(t, read.ID, got.ID)

	_, err = f.reg.Resolve("u1", "habit-")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "ambiguous prefix")

	_, err = f.reg.Resolve("u1", "Swim")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteHabit_Cascade(t *testing.T) {
	f := newFixture(t)

	h, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 5})
	require.NoError(t, err)
	_, err = f.ledger.SetForDates("u1", h.ID, []string{"2026-10-14", "2026-10-15"}, true)
	require.NoError(t, err)

	require.NoError(t, f.reg.DeleteHabit(h.ID, constants.DeletePolicyCascade))

	habits, err := f.reg.ListHabits("u1")
	require.NoError(t, err)
	assert.Empty(t, habits)

	entries, err := f.ledger.GetEntries("u1", h.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteHabit_Orphan(t *testing.T) {
	f := newFixture(t)

	h, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 5})
	require.NoError(t, err)
	_, err = f.ledger.Upsert("u1", h.ID, "2026-10-15", true)
	require.NoError(t, err)

	require.NoError(t, f.reg.DeleteHabit(h.ID, constants.DeletePolicyOrphan))

	entries, err := f.ledger.GetEntries("u1", h.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "orphan policy leaves entries in place")
}

func TestDeleteHabit_Errors(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.reg.DeleteHabit("missing", ""), apperrors.ErrNotFound)

	h, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 5})
	require.NoError(t, err)
	assert.ErrorIs(t, f.reg.DeleteHabit(h.ID, "soft"), apperrors.ErrValidation)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)

	existing, err := f.reg.SaveHabit(models.Habit{UserID: "u1", Name: "Read", GoalDays: 10})
	require.NoError(t, err)

	added, err := f.reg.Restore("u2", []models.Habit{
		{ID: existing.ID, UserID: "u9", Name: "Read again", GoalDays: 5},
		{ID: "snap-1", UserID: "u9", Name: "Walk", GoalDays: 7, StartDate: "2026-09-01T08:00:00Z"},
		{Name: "no id", GoalDays: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	h, err := f.reg.GetHabit("u2", "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "u2", h.UserID)
	assert.Equal(t, "2026-09-01", h.StartDate)
	assert.Equal(t, now, h.CreatedAt)

	kept, err := f.reg.GetHabit("u1", existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read", kept.Name)
}

func TestRestore_InvalidHabit(t *testing.T) {
	f := newFixture(t)

	_, err := f.reg.Restore("u1", []models.Habit{{ID: "x", Name: "Bad", GoalDays: 0}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	habits, err := f.reg.ListHabits("u1")
	require.NoError(t, err)
	assert.Empty(t, habits)
}
