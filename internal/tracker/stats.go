package tracker

import (
	"sort"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// Percentage returns round(100*completed/total) rounding halves up, clamped
// to [0,100]. A zero total yields 0.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return (200*completed + total) / (2 * total)
}

// Streak counts consecutive days, ending today, on which at least one habit
// was completed. Today without a completion does not break the streak.
func Streak(ix Index, today time.Time) int {
	streak := 0
	for i := 0; i < constants.StreakLookbackDays; i++ {
		day := utils.AddDays(today, -i)
		if ix.CompletedOn(day) > 0 {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// Score is a habit's completion over a window
type Score struct {
	Habit      models.Habit
	Completed  int
	Total      int
	Percentage int
}

// ScoreIn scores a habit over the window intersected with its applicable range
func ScoreIn(h models.Habit, ix Index, window Window, today time.Time) Score {
	s := Score{Habit: h}
	w, ok := window.Intersect(HabitWindow(h, today))
	if !ok {
		return s
	}
	s.Total = w.Len()
	s.Completed = ix.CountIn(h.ID, w)
	s.Percentage = Percentage(s.Completed, s.Total)
	return s
}

// Rank scores every habit over the window and returns the top ten by
// percentage. Ties keep the habits' input order.
func Rank(habits []models.Habit, ix Index, window Window, today time.Time) []Score {
	scores := make([]Score, 0, len(habits))
	for _, h := range habits {
		scores = append(scores, ScoreIn(h, ix, window, today))
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Percentage > scores[j].Percentage
	})
	if len(scores) > constants.TopHabitsLimit {
		scores = scores[:constants.TopHabitsLimit]
	}
	return scores
}
