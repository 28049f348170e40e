package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
)

// document is the on-disk layout of a JSON store, one key per collection
type document struct {
	Version     int                    `json:"version"`
	Users       []models.User          `json:"users"`
	Habits      []models.Habit         `json:"habits"`
	Tracking    []models.TrackingEntry `json:"tracking"`
	Theme       constants.Theme        `json:"theme,omitempty"`
	CurrentUser string                 `json:"current_user,omitempty"`
}

// JSONStore keeps every collection in a single JSON file
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// An existing store is kept as is
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	doc := &document{Version: 1, Theme: constants.ThemeLight}
	if err := s.save(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return apperrors.Unavailable("read storage", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		logger.Error("JSON store is corrupt", "path", s.path, "error", err)
		return apperrors.Unavailable("parse storage", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return apperrors.Unavailable("access storage", fmt.Errorf("storage not loaded"))
	}
	return nil
}

// update applies change to a copy of the document and keeps the copy only
// once it is on disk
func (s *JSONStore) update(change func(d *document)) error {
	if err := s.loaded(); err != nil {
		return err
	}
	next := *s.doc
	change(&next)
	if err := s.save(&next); err != nil {
		return err
	}
	s.doc = &next
	return nil
}

// save writes doc to a temp file and renames it over the store
func (s *JSONStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperrors.Unavailable("write storage", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Unavailable("write storage", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return apperrors.Unavailable("write storage", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Unavailable("write storage", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return apperrors.Unavailable("write storage", err)
	}
	return nil
}

func (s *JSONStore) ListUsers() ([]models.User, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.User{}, s.doc.Users...), nil
}

func (s *JSONStore) ReplaceUsers(users []models.User) error {
	logger.Debug("Replacing collection", "collection", constants.CollectionUsers, "count", len(users))
	return s.update(func(d *document) {
		d.Users = append([]models.User{}, users...)
	})
}

func (s *JSONStore) ListHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Habit{}, s.doc.Habits...), nil
}

func (s *JSONStore) ReplaceHabits(habits []models.Habit) error {
	logger.Debug("Replacing collection", "collection", constants.CollectionHabits, "count", len(habits))
	return s.update(func(d *document) {
		d.Habits = append([]models.Habit{}, habits...)
	})
}

func (s *JSONStore) ListEntries() ([]models.TrackingEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.TrackingEntry{}, s.doc.Tracking...), nil
}

func (s *JSONStore) ReplaceEntries(entries []models.TrackingEntry) error {
	logger.Debug("Replacing collection", "collection", constants.CollectionEntries, "count", len(entries))
	return s.update(func(d *document) {
		d.Tracking = append([]models.TrackingEntry{}, entries...)
	})
}

func (s *JSONStore) GetTheme() (constants.Theme, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	theme, err := DecodeTheme(string(s.doc.Theme))
	if err != nil {
		return "", apperrors.Unavailable("read theme", err)
	}
	return theme, nil
}

func (s *JSONStore) SetTheme(theme constants.Theme) error {
	return s.update(func(d *document) { d.Theme = theme })
}

func (s *JSONStore) GetCurrentUserID() (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	return s.doc.CurrentUser, nil
}

func (s *JSONStore) SetCurrentUserID(id string) error {
	return s.update(func(d *document) { d.CurrentUser = id })
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
