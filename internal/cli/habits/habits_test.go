package habits

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitrackr/internal/cli/clitest"
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
)

func TestHabitAddCmd(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.db")

	cmd := &HabitAddCmd{Name: "  Read  ", Icon: "📚", Category: "study", Goal: 21, Start: "yesterday", Reminder: "07:30"}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Added habit: 📚 Read") {
		t.Errorf("unexpected output: %s", out)
	}

	habits, err := env.Registry.ListHabits(u.ID)
	if err != nil || len(habits) != 1 {
		t.Fatalf("ListHabits = %v, %v", habits, err)
	}
	h := habits[0]
	if h.Name != "Read" || h.Category != "Study" || h.GoalDays != 21 || h.StartDate != "2026-10-14" || h.ReminderTime != "07:30" {
		t.Errorf("unexpected habit: %+v", h)
	}
}

func TestHabitAddCmd_Invalid(t *testing.T) {
	env, _ := clitest.LoggedIn(t, "test.db")

	tests := []struct {
		name string
		cmd  HabitAddCmd
	}{
		{"empty name", HabitAddCmd{Name: " ", Icon: "📝", Category: "Personal", Goal: 30}},
		{"zero goal", HabitAddCmd{Name: "Run", Icon: "📝", Category: "Personal", Goal: 0}},
		{"goal too long", HabitAddCmd{Name: "Run", Icon: "📝", Category: "Personal", Goal: 366}},
		{"unknown category", HabitAddCmd{Name: "Run", Icon: "📝", Category: "Hobbies", Goal: 30}},
		{"unknown icon", HabitAddCmd{Name: "Run", Icon: "🦄", Category: "Personal", Goal: 30}},
		{"bad reminder", HabitAddCmd{Name: "Run", Icon: "📝", Category: "Personal", Goal: 30, Reminder: "25:00"}},
		{"bad start", HabitAddCmd{Name: "Run", Icon: "📝", Category: "Personal", Goal: 30, Start: "someday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(env.Context); !apperrors.Is(err, apperrors.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestHabitListCmd(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.json")

	if err := (&HabitListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "No habits found") {
		t.Errorf("expected empty listing, got %s", out)
	}

	h := clitest.AddHabit(t, env, u.ID, "Meditate", "2026-10-12", 10)
	clitest.AddHabit(t, env, u.ID, "Budget", "2026-10-12", 10)
	if _, err := env.Ledger.SetForDates(u.ID, h.ID, []string{"2026-10-12", "2026-10-13"}, true); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitListCmd{}).Run(env.Context); err != nil {
		t.Fatalf("habit list failed: %v", err)
	}
	out := env.Output()
	if !strings.Contains(out, "Meditate") || !strings.Contains(out, "Budget") {
		t.Errorf("expected both habits, got %s", out)
	}
	if !strings.Contains(out, " 20%  2/10 days") {
		t.Errorf("expected progress for Meditate, got %s", out)
	}
}

func TestHabitEditCmd(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.db")
	h := clitest.AddHabit(t, env, u.ID, "Walk", "2026-10-01", 30)

	name := "Evening walk"
	goal := 60
	if err := (&HabitEditCmd{Habit: "walk", Name: &name, Goal: &goal}).Run(env.Context); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}

	got, err := env.Registry.GetHabit(u.ID, h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != name || got.GoalDays != 60 || got.StartDate != "2026-10-01" || !got.CreatedAt.Equal(h.CreatedAt) {
		t.Errorf("unexpected habit after edit: %+v", got)
	}

	if err := (&HabitEditCmd{Habit: "missing"}).Run(env.Context); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.db")
	h := clitest.AddHabit(t, env, u.ID, "Floss", "2026-10-01", 30)
	if _, err := env.Ledger.Upsert(u.ID, h.ID, "2026-10-02", true); err != nil {
		t.Fatal(err)
	}

	env.Input("n\n")
	if err := (&HabitDeleteCmd{Habit: "Floss"}).Run(env.Context); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Delete cancelled") {
		t.Errorf("expected cancellation, got %s", out)
	}

	env.Input("y\n")
	if err := (&HabitDeleteCmd{Habit: "Floss"}).Run(env.Context); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	habits, _ := env.Registry.ListHabits(u.ID)
	entries, _ := env.Ledger.GetEntries(u.ID, h.ID)
	if len(habits) != 0 || len(entries) != 0 {
		t.Errorf("cascade delete left %d habits and %d entries", len(habits), len(entries))
	}
}

func TestHabitDeleteCmd_KeepEntries(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.db")
	h := clitest.AddHabit(t, env, u.ID, "Floss", "2026-10-01", 30)
	if _, err := env.Ledger.Upsert(u.ID, h.ID, "2026-10-02", true); err != nil {
		t.Fatal(err)
	}

	if err := (&HabitDeleteCmd{Habit: h.ID, KeepEntries: true, Yes: true}).Run(env.Context); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	entries, _ := env.Ledger.GetEntries(u.ID, h.ID)
	if len(entries) != 1 {
		t.Errorf("orphan delete should keep entries, got %d", len(entries))
	}
	if env.Config.DeletePolicy != constants.DeletePolicyCascade {
		t.Errorf("flag must not change the configured policy")
	}
}
