package habits

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List your habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

// checkChoice accepts a value from a fixed vocabulary, matching case-insensitively
func checkChoice(field, value string, choices []string) (string, error) {
	for _, c := range choices {
		if strings.EqualFold(c, strings.TrimSpace(value)) {
			return c, nil
		}
	}
	return "", apperrors.Invalid(field, "%q is not one of: %s", value, strings.Join(choices, ", "))
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Icon     string `short:"i" help:"Icon (one of the built-in icons)." default:"📝"`
	Category string `short:"c" help:"Category (Health|Study|Finance|Personal|Fitness|Work)." default:"Personal"`
	Goal     int    `short:"g" help:"Goal length in days (1-365)." default:"30"`
	Start    string `short:"s" help:"Start date (YYYY-MM-DD, today, yesterday or -N). Defaults to today."`
	Reminder string `short:"r" help:"Reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	icon, err := checkChoice("icon", c.Icon, constants.Icons)
	if err != nil {
		return err
	}
	category, err := checkChoice("category", c.Category, constants.Categories)
	if err != nil {
		return err
	}
	start, err := cli.ParseDay(c.Start, ctx.Clock())
	if err != nil {
		return err
	}

	h, err := ctx.Registry.SaveHabit(models.Habit{
		UserID:       u.ID,
		Name:         c.Name,
		Icon:         icon,
		Category:     category,
		GoalDays:     c.Goal,
		StartDate:    utils.FormatDate(start),
		ReminderTime: c.Reminder,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s %s (ID: %s)\n", h.Icon, h.Name, cli.ShortID(h.ID))
	return nil
}

type HabitListCmd struct {
	Category string `short:"c" help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	habits, ix, err := ctx.Tracking(u.ID)
	if err != nil {
		return err
	}
	if c.Category != "" {
		habits = slices.DeleteFunc(habits, func(h models.Habit) bool {
			return !strings.EqualFold(h.Category, c.Category)
		})
	}

	if len(habits) == 0 {
		ctx.Println("No habits found. Add one with 'habitrackr habit add <name>'.")
		return nil
	}

	today := ctx.Today()
	for _, h := range habits {
		s := tracker.ScoreIn(h, ix, tracker.HabitWindow(h, today), today)
		ctx.Printf("%s  %s\n", cli.ShortID(h.ID), cli.HabitLine(h))
		ctx.Printf("          %s %3d%%  %d/%d days\n", cli.Bar(s.Percentage, 20), s.Percentage, s.Completed, h.GoalDays)
	}
	return nil
}

type HabitEditCmd struct {
	Habit    string  `arg:"" help:"Habit id, id prefix or name."`
	Name     *string `short:"n" help:"New habit name."`
	Icon     *string `short:"i" help:"New icon."`
	Category *string `short:"c" help:"New category."`
	Goal     *int    `short:"g" help:"New goal length in days."`
	Reminder *string `short:"r" help:"New reminder time (HH:MM), or empty to clear."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	h, err := ctx.Registry.Resolve(u.ID, c.Habit)
	if err != nil {
		return err
	}

	if c.Name != nil {
		h.Name = *c.Name
	}
	if c.Icon != nil {
		if h.Icon, err = checkChoice("icon", *c.Icon, constants.Icons); err != nil {
			return err
		}
	}
	if c.Category != nil {
		if h.Category, err = checkChoice("category", *c.Category, constants.Categories); err != nil {
			return err
		}
	}
	if c.Goal != nil {
		h.GoalDays = *c.Goal
	}
	if c.Reminder != nil {
		h.ReminderTime = strings.TrimSpace(*c.Reminder)
	}

	saved, err := ctx.Registry.SaveHabit(h)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", cli.HabitLine(saved))
	return nil
}

type HabitDeleteCmd struct {
	Habit       string `arg:"" help:"Habit id, id prefix or name."`
	KeepEntries bool   `help:"Keep the habit's tracking entries instead of deleting them."`
	Yes         bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	h, err := ctx.Registry.Resolve(u.ID, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete habit %q?", h.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	policy := ctx.Config.DeletePolicy
	if c.KeepEntries {
		policy = constants.DeletePolicyOrphan
	}
	if err := ctx.Registry.DeleteHabit(h.ID, policy); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
