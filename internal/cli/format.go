package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// ParseDay reads a day given as YYYY-MM-DD, "today", "yesterday" or a
// negative offset such as "-3". An empty string means today.
func ParseDay(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "today":
		return utils.StartOfDay(today), nil
	case "yesterday":
		return utils.AddDays(today, -1), nil
	}
	if strings.HasPrefix(s, "-") {
		n, err := strconv.Atoi(s[1:])
		if err == nil && n >= 0 {
			return utils.AddDays(today, -n), nil
		}
	}
	day, err := utils.ParseDateInLocation(s, today.Location())
	if err != nil {
		return time.Time{}, apperrors.Invalid("date", "invalid date %q (expected YYYY-MM-DD, today, yesterday or -N)", s)
	}
	return day, nil
}

// ParseDays reads a comma-separated list of days or a FROM..TO range
func ParseDays(s string, today time.Time) ([]string, error) {
	if from, to, ok := strings.Cut(s, ".."); ok {
		start, err := ParseDay(from, today)
		if err != nil {
			return nil, err
		}
		end, err := ParseDay(to, today)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, apperrors.Invalid("dates", "range end %s is before start %s", utils.FormatDate(end), utils.FormatDate(start))
		}
		var days []string
		for d := start; !d.After(end); d = utils.AddDays(d, 1) {
			days = append(days, utils.FormatDate(d))
		}
		return days, nil
	}

	var days []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseDay(part, today)
		if err != nil {
			return nil, err
		}
		days = append(days, utils.FormatDate(d))
	}
	if len(days) == 0 {
		return nil, apperrors.Invalid("dates", "no dates given")
	}
	return days, nil
}

// Bar renders a percentage as a fixed-width bar
func Bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := (pct*width + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Check renders a completion box
func Check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// CellGlyph renders one tracking grid cell
func CellGlyph(state constants.CellState, completed bool) string {
	switch state {
	case constants.CellOutOfRange:
		return " "
	case constants.CellFuture:
		return "·"
	}
	if completed {
		return "✓"
	}
	if state == constants.CellToday {
		return "○"
	}
	return "✗"
}

// HabitLine renders a habit for listings
func HabitLine(h models.Habit) string {
	line := fmt.Sprintf("%s %s  (%s, %d days from %s)", h.Icon, h.Name, h.Category, h.GoalDays, h.StartDate)
	if h.ReminderTime != "" {
		line += " ⏰ " + h.ReminderTime
	}
	return line
}

// ShortID returns the first eight characters of an id
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
