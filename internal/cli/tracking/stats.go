package tracking

import (
	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/tracker"
)

type StatsCmd struct {
	Trend bool `short:"t" help:"Also show the per-day trend for this month."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	habits, ix, err := ctx.Tracking(u.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits yet, so there are no statistics to show.")
		return nil
	}
	today := ctx.Today()

	ctx.Println("Weekly progress:")
	for _, w := range tracker.Weekly(habits, ix, today) {
		ctx.Printf("  %-7s %s - %s  %s %3d%%  (%d/%d)\n",
			w.Label, w.Window.Start.Format("Jan 02"), w.Window.End.Format("Jan 02"),
			cli.Bar(w.Percentage, 20), w.Percentage, w.Completed, w.Possible)
	}

	ctx.Println()
	ctx.Println("Top habits this month:")
	for i, s := range tracker.Rank(habits, ix, tracker.Month(today), today) {
		ctx.Printf("  %2d. %s %-20s %3d%%  (%d/%d)\n", i+1, s.Habit.Icon, s.Habit.Name, s.Percentage, s.Completed, s.Total)
	}

	o := tracker.MonthlyOverview(habits, ix, today)
	ctx.Println()
	ctx.Printf("%s: %d%% completed, %d%% remaining (%d of %d habit-days)\n",
		o.Period.Label, o.Completed, o.Remaining, o.Period.Completed, o.Period.Possible)

	if c.Trend {
		ctx.Println()
		ctx.Println("Daily trend:")
		for _, p := range tracker.MonthlyTrend(habits, ix, today) {
			if p.Window.Start.After(today) {
				break
			}
			ctx.Printf("  %-6s %s %3d%%\n", p.Label, cli.Bar(p.Percentage, 20), p.Percentage)
		}
	}
	return nil
}
