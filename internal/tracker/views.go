package tracker

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// TodayItem is one habit on the dashboard
type TodayItem struct {
	Habit models.Habit
	Done  bool
}

// TodaySummary holds the dashboard figures
type TodaySummary struct {
	Items      []TodayItem
	Total      int
	Completed  int
	Percentage int
	Streak     int
}

// Quote picks the motivational quote for a day. The same day always gets the same quote.
func Quote(today time.Time) string {
	return constants.MotivationQuotes[today.YearDay()%len(constants.MotivationQuotes)]
}

// Today lists the habits whose applicable range contains today and counts
// how many of them are done
func Today(habits []models.Habit, ix Index, today time.Time) TodaySummary {
	s := TodaySummary{Items: []TodayItem{}}
	for _, h := range habits {
		if !HabitWindow(h, today).Contains(today) {
			continue
		}
		done := ix.IsCompleted(h.ID, today)
		s.Items = append(s.Items, TodayItem{Habit: h, Done: done})
		if done {
			s.Completed++
		}
	}
	s.Total = len(s.Items)
	s.Percentage = Percentage(s.Completed, s.Total)
	s.Streak = Streak(ix, today)
	return s
}

// Cell is one day of one habit in the tracking grid
type Cell struct {
	Day       time.Time
	State     constants.CellState
	Completed bool
}

// Toggleable reports whether the cell accepts a check mark
func (c Cell) Toggleable() bool {
	return c.State == constants.CellPast || c.State == constants.CellToday
}

// Row is a habit's line in the tracking grid
type Row struct {
	Habit      models.Habit
	Cells      []Cell
	Completed  int
	Percentage int
}

// GridView is the tracking grid: one shared column per calendar day
type GridView struct {
	Days []time.Time
	Rows []Row
}

func cellState(inRange bool, day, today time.Time) constants.CellState {
	switch {
	case !inRange:
		return constants.CellOutOfRange
	case utils.SameDay(day, today):
		return constants.CellToday
	case day.After(today):
		return constants.CellFuture
	default:
		return constants.CellPast
	}
}

// Grid lays out every habit against the union calendar. Each row's
// percentage is measured against the habit's goal days.
func Grid(habits []models.Habit, ix Index, today time.Time) GridView {
	g := GridView{Days: UnionCalendar(habits, today), Rows: make([]Row, 0, len(habits))}
	for _, h := range habits {
		w := HabitWindow(h, today)
		row := Row{Habit: h, Cells: make([]Cell, 0, len(g.Days))}
		for _, d := range g.Days {
			inRange := w.Contains(d)
			c := Cell{Day: d, State: cellState(inRange, d, today)}
			if inRange && ix.IsCompleted(h.ID, d) {
				c.Completed = true
				row.Completed++
			}
			row.Cells = append(row.Cells, c)
		}
		row.Percentage = Percentage(row.Completed, h.GoalDays)
		g.Rows = append(g.Rows, row)
	}
	return g
}

// Period is completion aggregated over a span of days
type Period struct {
	Label      string
	Window     Window
	Completed  int
	Possible   int
	Percentage int
}

// aggregate sums completion over the window intersected with each habit's range
func aggregate(habits []models.Habit, ix Index, window Window, today time.Time) (completed, possible int) {
	for _, h := range habits {
		s := ScoreIn(h, ix, window, today)
		completed += s.Completed
		possible += s.Total
	}
	return completed, possible
}

// Weekly reports completion per Sunday-start week covering the last 28 days
func Weekly(habits []models.Habit, ix Index, today time.Time) []Period {
	first := utils.StartOfWeek(utils.AddDays(today, -constants.WeeklyLookbackDays))
	last := utils.StartOfWeek(today)

	var weeks []Period
	for start, n := first, 1; !start.After(last); start, n = utils.AddDays(start, 7), n+1 {
		w := NewWindow(start, utils.AddDays(start, 6))
		completed, possible := aggregate(habits, ix, w, today)
		weeks = append(weeks, Period{
			Label:      fmt.Sprintf("Week %d", n),
			Window:     w,
			Completed:  completed,
			Possible:   possible,
			Percentage: Percentage(completed, possible),
		})
	}
	return weeks
}

// MonthlyTrend reports per-day completion for the current month
func MonthlyTrend(habits []models.Habit, ix Index, today time.Time) []Period {
	days := Month(today).Days()
	trend := make([]Period, 0, len(days))
	for _, d := range days {
		w := NewWindow(d, d)
		completed, possible := aggregate(habits, ix, w, today)
		trend = append(trend, Period{
			Label:      d.Format("Jan 2"),
			Window:     w,
			Completed:  completed,
			Possible:   possible,
			Percentage: Percentage(completed, possible),
		})
	}
	return trend
}

// Overview splits the month into completed and remaining percentages
type Overview struct {
	Completed int
	Remaining int
	Period    Period
}

// MonthlyOverview reports the current month's completed versus remaining share
func MonthlyOverview(habits []models.Habit, ix Index, today time.Time) Overview {
	w := Month(today)
	completed, possible := aggregate(habits, ix, w, today)
	pct := Percentage(completed, possible)
	return Overview{
		Completed: pct,
		Remaining: 100 - pct,
		Period: Period{
			Label:      today.Format("January 2006"),
			Window:     w,
			Completed:  completed,
			Possible:   possible,
			Percentage: pct,
		},
	}
}
