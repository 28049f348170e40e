package tracker

import (
	"time"

	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

type dayKey struct {
	habitID string
	date    string
}

// Index answers completion lookups over one user's tracking entries
type Index struct {
	done   map[dayKey]bool
	perDay map[string]int
}

// NewIndex indexes the completed entries. Entries should belong to a single user.
func NewIndex(entries []models.TrackingEntry) Index {
	ix := Index{
		done:   make(map[dayKey]bool, len(entries)),
		perDay: make(map[string]int),
	}
	for _, e := range entries {
		k := dayKey{habitID: e.HabitID, date: e.Date}
		if e.Completed && !ix.done[k] {
			ix.done[k] = true
			ix.perDay[e.Date]++
		} else if !e.Completed && ix.done[k] {
			delete(ix.done, k)
			ix.perDay[e.Date]--
		}
	}
	return ix
}

// IsCompleted reports whether the habit has a completed entry on day.
// A missing entry means not completed.
func (ix Index) IsCompleted(habitID string, day time.Time) bool {
	return ix.done[dayKey{habitID: habitID, date: utils.FormatDate(day)}]
}

// CompletedOn counts the habits completed on day
func (ix Index) CompletedOn(day time.Time) int {
	return ix.perDay[utils.FormatDate(day)]
}

// CountIn counts the habit's completed days inside the window
func (ix Index) CountIn(habitID string, w Window) int {
	n := 0
	for _, d := range w.Days() {
		if ix.IsCompleted(habitID, d) {
			n++
		}
	}
	return n
}
