package tracker

import (
	"time"

	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// FirstDay returns the first applicable day of a habit. A start date after
// today is clamped to today, so a habit scheduled for tomorrow is tracked
// from today.
func FirstDay(h models.Habit, today time.Time) time.Time {
	day := utils.StartOfDay(today)
	start := h.Start(today.Location(), today)
	if start.After(day) {
		return day
	}
	return start
}

// HabitWindow returns the habit's applicable range: GoalDays days from its first day
func HabitWindow(h models.Habit, today time.Time) Window {
	first := FirstDay(h, today)
	if h.GoalDays <= 0 {
		return Window{Start: first, End: utils.AddDays(first, -1)}
	}
	return Window{Start: first, End: utils.AddDays(first, h.GoalDays-1)}
}

// ApplicableDays lists exactly GoalDays consecutive days starting at the habit's first day
func ApplicableDays(h models.Habit, today time.Time) []time.Time {
	return HabitWindow(h, today).Days()
}

// CalendarWindow spans the earliest first day to the latest last day of any habit
func CalendarWindow(habits []models.Habit, today time.Time) Window {
	var out Window
	seen := false
	for _, h := range habits {
		w := HabitWindow(h, today)
		if w.Empty() {
			continue
		}
		if !seen {
			out = w
			seen = true
			continue
		}
		if w.Start.Before(out.Start) {
			out.Start = w.Start
		}
		if w.End.After(out.End) {
			out.End = w.End
		}
	}
	if !seen {
		d := utils.StartOfDay(today)
		return Window{Start: d, End: utils.AddDays(d, -1)}
	}
	return out
}

// UnionCalendar lists every day of CalendarWindow, including days between
// habits that no habit covers
func UnionCalendar(habits []models.Habit, today time.Time) []time.Time {
	return CalendarWindow(habits, today).Days()
}
