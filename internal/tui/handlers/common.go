package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/tui/state"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// FormTheme picks the huh theme that matches the UI theme
func FormTheme(theme constants.Theme) *huh.Theme {
	if theme == constants.ThemeDark {
		return huh.ThemeDracula()
	}
	return huh.ThemeCharm()
}

func validateGoal(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("goal must be a number of days")
	}
	if i < constants.MinGoalDays || i > constants.MaxGoalDays {
		return fmt.Errorf("goal must be between %d and %d days", constants.MinGoalDays, constants.MaxGoalDays)
	}
	return nil
}

func validateReminder(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid time format, use HH:MM")
	}
	return nil
}

func options(values []string) []huh.Option[string] {
	out := make([]huh.Option[string], len(values))
	for i, v := range values {
		out[i] = huh.NewOption(v, v)
	}
	return out
}

// NewHabitForm creates a form for adding or editing a habit. The start date
// is only asked for when adding, since it is fixed once the habit exists.
func NewHabitForm(fm *state.HabitFormModel, adding bool, today time.Time, theme constants.Theme) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Habit Name").
			Value(&fm.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("habit name cannot be empty")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Icon").
			Options(options(constants.Icons)...).
			Value(&fm.Icon),
		huh.NewSelect[string]().
			Title("Category").
			Options(options(constants.Categories)...).
			Value(&fm.Category),
		huh.NewInput().
			Title("Goal (days)").
			Value(&fm.Goal).
			Validate(validateGoal),
	}
	if adding {
		fields = append(fields, huh.NewInput().
			Title("Start date").
			Description("YYYY-MM-DD, today, yesterday or -N").
			Value(&fm.Start).
			Validate(func(s string) error {
				_, err := cli.ParseDay(s, today)
				return err
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Reminder (HH:MM)").
		Description("Optional").
		Value(&fm.Reminder).
		Validate(validateReminder))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(FormTheme(theme))
}

// NewHabitFormModel fills a form model with the defaults for a new habit
func NewHabitFormModel(today time.Time) *state.HabitFormModel {
	return &state.HabitFormModel{
		Icon:     constants.DefaultIcon,
		Category: constants.DefaultCategory,
		Goal:     strconv.Itoa(constants.DefaultGoalDays),
		Start:    utils.FormatDate(today),
	}
}

// HabitFormModelFor fills a form model from an existing habit
func HabitFormModelFor(h models.Habit) *state.HabitFormModel {
	return &state.HabitFormModel{
		Name:     h.Name,
		Icon:     h.Icon,
		Category: h.Category,
		Goal:     strconv.Itoa(h.GoalDays),
		Start:    h.StartDate,
		Reminder: h.ReminderTime,
	}
}

// ApplyHabitForm copies the form values onto a habit
func ApplyHabitForm(h *models.Habit, fm *state.HabitFormModel, today time.Time) error {
	goal, err := strconv.Atoi(strings.TrimSpace(fm.Goal))
	if err != nil {
		return validateGoal(fm.Goal)
	}
	h.Name = strings.TrimSpace(fm.Name)
	h.Icon = fm.Icon
	h.Category = fm.Category
	h.GoalDays = goal
	h.ReminderTime = strings.TrimSpace(fm.Reminder)
	if h.ID == "" {
		start, err := cli.ParseDay(fm.Start, today)
		if err != nil {
			return err
		}
		h.StartDate = utils.FormatDate(start)
	}
	return nil
}
