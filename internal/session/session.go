// Package session holds the logged-in user and the theme for one process.
// It is loaded once at startup and passed explicitly to commands and the TUI.
package session

import (
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
)

// UserLookup resolves the persisted session pointer to a user
type UserLookup interface {
	Get(id string) (models.User, error)
}

type Session struct {
	store storage.Provider
	user  *models.User
	theme constants.Theme
}

// Load reads the current user and theme from the store. A pointer to a user
// that no longer exists is cleared.
func Load(store storage.Provider, users UserLookup) (*Session, error) {
	s := &Session{store: store, theme: constants.ThemeLight}

	theme, err := store.GetTheme()
	if err != nil {
		return nil, err
	}
	s.theme = theme

	id, err := store.GetCurrentUserID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return s, nil
	}

	u, err := users.Get(id)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Warn("Clearing session for missing user", "id", id)
		if err := store.SetCurrentUserID(""); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.user = &u
	return s, nil
}

// User returns the logged-in user, or ErrNotLoggedIn
func (s *Session) User() (models.User, error) {
	if s.user == nil {
		return models.User{}, apperrors.ErrNotLoggedIn
	}
	return *s.user, nil
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}

func (s *Session) Theme() constants.Theme {
	return s.theme
}

func (s *Session) SetTheme(theme constants.Theme) error {
	if err := s.store.SetTheme(theme); err != nil {
		return err
	}
	s.theme = theme
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme
func (s *Session) ToggleTheme() (constants.Theme, error) {
	next := models.ToggleTheme(s.theme)
	if err := s.SetTheme(next); err != nil {
		return s.theme, err
	}
	return next, nil
}

// Begin starts a session for the user
func (s *Session) Begin(u models.User) error {
	if err := s.store.SetCurrentUserID(u.ID); err != nil {
		return err
	}
	s.user = &u
	logger.Debug("Session started", "user", u.ID)
	return nil
}

// Refresh replaces the cached user after a profile change
func (s *Session) Refresh(u models.User) {
	if s.user != nil && s.user.ID == u.ID {
		s.user = &u
	}
}

// End logs out and clears the persisted pointer
func (s *Session) End() error {
	if err := s.store.SetCurrentUserID(""); err != nil {
		return err
	}
	s.user = nil
	logger.Debug("Session ended")
	return nil
}
