package tracking

import (
	"time"

	"github.com/julianstephens/habitrackr/internal/cli"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/utils"
)

type MarkCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Date  string `short:"d" help:"Day to toggle (YYYY-MM-DD, today, yesterday or -N). Defaults to today."`
	Set   string `help:"Mark several days done: a comma list or a FROM..TO range."`
	Unset string `help:"Mark several days not done: a comma list or a FROM..TO range."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	h, err := ctx.Registry.Resolve(u.ID, c.Habit)
	if err != nil {
		return err
	}
	today := ctx.Today()

	if c.Set != "" || c.Unset != "" {
		if c.Set != "" && c.Unset != "" {
			return apperrors.Invalid("dates", "use either --set or --unset, not both")
		}
		spec, completed := c.Set, true
		if c.Unset != "" {
			spec, completed = c.Unset, false
		}
		days, err := cli.ParseDays(spec, today)
		if err != nil {
			return err
		}
		for _, d := range days {
			day, _ := utils.ParseDateInLocation(d, today.Location())
			if err := checkDay(h, day, today); err != nil {
				return err
			}
		}
		n, err := ctx.Ledger.SetForDates(u.ID, h.ID, days, completed)
		if err != nil {
			return err
		}
		verb := "done"
		if !completed {
			verb = "not done"
		}
		ctx.Printf("Marked %s %s on %d day(s)\n", h.Name, verb, n)
		return nil
	}

	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}
	if err := checkDay(h, day, today); err != nil {
		return err
	}
	entry, err := ctx.Ledger.Toggle(u.ID, h.ID, utils.FormatDate(day), today)
	if err != nil {
		return err
	}
	if entry.Completed {
		ctx.Printf("✓ %s %s done for %s\n", h.Icon, h.Name, entry.Date)
	} else {
		ctx.Printf("✗ %s %s unmarked for %s\n", h.Icon, h.Name, entry.Date)
	}
	return nil
}

// checkDay refuses days after today and days outside the habit's range
func checkDay(h models.Habit, day, today time.Time) error {
	if day.After(utils.StartOfDay(today)) {
		return apperrors.Wrapf(apperrors.ErrFutureDate, "%s", utils.FormatDate(day))
	}
	w := tracker.HabitWindow(h, today)
	if !w.Contains(day) {
		return apperrors.Invalid("date", "%s is outside the range of %s (%s to %s)",
			utils.FormatDate(day), h.Name, utils.FormatDate(w.Start), utils.FormatDate(w.End))
	}
	return nil
}
