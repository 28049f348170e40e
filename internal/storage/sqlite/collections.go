package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
)

func (s *Store) readCollection(name string) ([]byte, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("read "+name, errors.New("storage not loaded"))
	}
	var payload string
	err := s.db.QueryRow("SELECT payload FROM collections WHERE name = ?", name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Unavailable("read "+name, err)
	}
	return []byte(payload), nil
}

func (s *Store) writeCollection(name string, payload []byte, count int) error {
	if s.db == nil {
		return apperrors.Unavailable("write "+name, errors.New("storage not loaded"))
	}
	_, err := s.db.Exec(`
		INSERT INTO collections (name, payload, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			revision = collections.revision + 1`,
		name, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		logger.Error("Failed to write collection", "collection", name, "error", err)
		return apperrors.Unavailable("write "+name, err)
	}
	logger.Debug("Replaced collection", "collection", name, "count", count)
	return nil
}

func listCollection[T any](s *Store, name string) ([]T, error) {
	payload, err := s.readCollection(name)
	if err != nil {
		return nil, err
	}
	items, err := storage.DecodeCollection[T](name, payload)
	if err != nil {
		return nil, apperrors.Unavailable("read "+name, err)
	}
	return items, nil
}

func replaceCollection[T any](s *Store, name string, items []T) error {
	payload, err := storage.EncodeCollection(items)
	if err != nil {
		return err
	}
	return s.writeCollection(name, payload, len(items))
}

func (s *Store) ListUsers() ([]models.User, error) {
	return listCollection[models.User](s, constants.CollectionUsers)
}

func (s *Store) ReplaceUsers(users []models.User) error {
	return replaceCollection(s, constants.CollectionUsers, users)
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	return listCollection[models.Habit](s, constants.CollectionHabits)
}

func (s *Store) ReplaceHabits(habits []models.Habit) error {
	return replaceCollection(s, constants.CollectionHabits, habits)
}

func (s *Store) ListEntries() ([]models.TrackingEntry, error) {
	return listCollection[models.TrackingEntry](s, constants.CollectionEntries)
}

func (s *Store) ReplaceEntries(entries []models.TrackingEntry) error {
	return replaceCollection(s, constants.CollectionEntries, entries)
}

// Revision returns how many times a collection has been replaced
func (s *Store) Revision(name string) (int, error) {
	if s.db == nil {
		return 0, apperrors.Unavailable("read "+name, errors.New("storage not loaded"))
	}
	var revision int
	err := s.db.QueryRow("SELECT revision FROM collections WHERE name = ?", name).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Unavailable("read "+name, err)
	}
	return revision, nil
}
