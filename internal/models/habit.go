package models

import (
	"strings"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/utils"
	"github.com/julianstephens/habitrackr/internal/validation"
)

// Habit is a user-defined daily action tracked against a fixed-length goal
type Habit struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId" validate:"required"`
	Name         string    `json:"name" validate:"required,max=100"`
	Icon         string    `json:"icon"`
	Category     string    `json:"category" validate:"max=40"`
	GoalDays     int       `json:"goalDays" validate:"min=1,max=365"`
	StartDate    string    `json:"startDate" validate:"omitempty,day"`              // YYYY-MM-DD, fixed at creation
	ReminderTime string    `json:"reminderTime,omitempty" validate:"omitempty,hhmm"` // HH:MM
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate checks the habit's fields, returning a ValidationError on the first failure
func (h *Habit) Validate() error {
	return validation.Struct(h)
}

// ApplyDefaults fills the optional presentation fields. GoalDays is left alone
// so a zero goal is still rejected by Validate.
func (h *Habit) ApplyDefaults() {
	h.Name = strings.TrimSpace(h.Name)
	if h.Icon == "" {
		h.Icon = constants.DefaultIcon
	}
	if h.Category == "" {
		h.Category = constants.DefaultCategory
	}
}

// Start returns the habit's start date at midnight in loc.
// A missing or unparseable start date is treated as fallback.
func (h Habit) Start(loc *time.Location, fallback time.Time) time.Time {
	if h.StartDate == "" {
		return utils.StartOfDay(fallback)
	}
	t, err := utils.ParseDayOrTimestamp(h.StartDate, loc)
	if err != nil {
		return utils.StartOfDay(fallback)
	}
	return t
}
