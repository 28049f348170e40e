// Package tracker derives day ranges, completion joins, percentages, streaks
// and rankings from loaded habits and tracking entries. Every function is pure
// and takes "today" explicitly.
package tracker

import (
	"time"

	"github.com/julianstephens/habitrackr/internal/utils"
)

// Window is an inclusive range of calendar days
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window from the days containing start and end
func NewWindow(start, end time.Time) Window {
	return Window{Start: utils.StartOfDay(start), End: utils.StartOfDay(end)}
}

// Month returns the calendar month containing today
func Month(today time.Time) Window {
	return NewWindow(utils.StartOfMonth(today), utils.EndOfMonth(today))
}

// Empty reports whether the window holds no days
func (w Window) Empty() bool {
	return w.End.Before(w.Start)
}

// Len returns the number of days in the window
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return utils.DaysBetween(w.Start, w.End) + 1
}

// Contains reports whether day falls inside the window
func (w Window) Contains(day time.Time) bool {
	d := utils.StartOfDay(day)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days lists every day of the window in order
func (w Window) Days() []time.Time {
	n := w.Len()
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, utils.AddDays(w.Start, i))
	}
	return days
}

// Intersect returns the overlap of two windows and whether it is non-empty
func (w Window) Intersect(o Window) (Window, bool) {
	start := w.Start
	if o.Start.After(start) {
		start = o.Start
	}
	end := w.End
	if o.End.Before(end) {
		end = o.End
	}
	out := Window{Start: start, End: end}
	return out, !out.Empty()
}
