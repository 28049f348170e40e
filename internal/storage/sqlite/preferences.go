package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/storage"
)

func (s *Store) getPreference(key string) (string, error) {
	if s.db == nil {
		return "", apperrors.Unavailable("read "+key, errors.New("storage not loaded"))
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", apperrors.Unavailable("read "+key, err)
	}
	return value, nil
}

func (s *Store) setPreference(key, value string) error {
	if s.db == nil {
		return apperrors.Unavailable("write "+key, errors.New("storage not loaded"))
	}
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return apperrors.Unavailable("write "+key, err)
	}
	return nil
}

func (s *Store) GetTheme() (constants.Theme, error) {
	value, err := s.getPreference(constants.PreferenceTheme)
	if err != nil {
		return "", err
	}
	theme, err := storage.DecodeTheme(value)
	if err != nil {
		return "", apperrors.Unavailable("read theme", err)
	}
	return theme, nil
}

func (s *Store) SetTheme(theme constants.Theme) error {
	return s.setPreference(constants.PreferenceTheme, string(theme))
}

func (s *Store) GetCurrentUserID() (string, error) {
	return s.getPreference(constants.PreferenceCurrentUser)
}

// SetCurrentUserID stores the session pointer. An empty id logs out.
func (s *Store) SetCurrentUserID(id string) error {
	if id == "" {
		if s.db == nil {
			return apperrors.Unavailable("write session", errors.New("storage not loaded"))
		}
		if _, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", constants.PreferenceCurrentUser); err != nil {
			return apperrors.Unavailable("write session", err)
		}
		return nil
	}
	return s.setPreference(constants.PreferenceCurrentUser, id)
}
