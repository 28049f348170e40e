package storage

import (
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
)

// Provider persists the user, habit and tracking collections plus the theme
// and session preferences. Collections are read and written whole.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	ListUsers() ([]models.User, error)
	ReplaceUsers([]models.User) error

	// Habits
	ListHabits() ([]models.Habit, error)
	ReplaceHabits([]models.Habit) error

	// Tracking entries
	ListEntries() ([]models.TrackingEntry, error)
	ReplaceEntries([]models.TrackingEntry) error

	// Preferences
	GetTheme() (constants.Theme, error)
	SetTheme(constants.Theme) error
	// GetCurrentUserID returns the logged-in user's id, or "" when nobody is logged in.
	GetCurrentUserID() (string, error)
	SetCurrentUserID(id string) error

	// Utils
	GetConfigPath() string
}
