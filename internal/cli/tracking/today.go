package tracking

import (
	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/tracker"
)

type TodayCmd struct {
	NoQuote bool `help:"Hide the motivational quote."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	habits, ix, err := ctx.Tracking(u.ID)
	if err != nil {
		return err
	}

	today := ctx.Today()
	s := tracker.Today(habits, ix, today)

	ctx.Printf("Hello, %s! %s\n", u.Name, today.Format("Monday, January 2"))
	if !c.NoQuote {
		ctx.Printf("%s\n", tracker.Quote(today))
	}
	ctx.Println()
	ctx.Printf("Today:  %d/%d completed  %s %d%%\n", s.Completed, s.Total, cli.Bar(s.Percentage, 20), s.Percentage)
	ctx.Printf("Streak: 🔥 %d day(s)\n", s.Streak)
	ctx.Println()

	if len(s.Items) == 0 {
		ctx.Println("No habits are active today.")
		return nil
	}
	for _, item := range s.Items {
		ctx.Printf("  %s %s %s\n", cli.Check(item.Done), item.Habit.Icon, item.Habit.Name)
	}
	return nil
}
