// Package registry manages habit definitions scoped to their owning user.
package registry

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// EntryPurger removes the tracking entries of a deleted habit
type EntryPurger interface {
	DeleteForHabit(habitID string) (int, error)
}

type Registry struct {
	store  storage.Provider
	clock  utils.Clock
	purger EntryPurger
	newID  func() string
}

// New creates a registry. purger may be nil, in which case deletes always orphan entries.
func New(store storage.Provider, clock utils.Clock, purger EntryPurger) *Registry {
	return &Registry{
		store:  store,
		clock:  clock,
		purger: purger,
		newID:  uuid.NewString,
	}
}

// ListHabits returns the user's habits in insertion order
func (r *Registry) ListHabits(userID string) ([]models.Habit, error) {
	all, err := r.store.ListHabits()
	if err != nil {
		return nil, err
	}
	habits := []models.Habit{}
	for _, h := range all {
		if h.UserID == userID {
			habits = append(habits, h)
		}
	}
	return habits, nil
}

// Owners maps every stored habit id to its owning user
func (r *Registry) Owners() (map[string]string, error) {
	all, err := r.store.ListHabits()
	if err != nil {
		return nil, err
	}
	owners := make(map[string]string, len(all))
	for _, h := range all {
		owners[h.ID] = h.UserID
	}
	return owners, nil
}

// GetHabit returns one of the user's habits by id
func (r *Registry) GetHabit(userID, id string) (models.Habit, error) {
	habits, err := r.ListHabits(userID)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, apperrors.Wrapf(apperrors.ErrNotFound, "habit %s", id)
}

// Resolve finds a habit by exact id, unique id prefix, or case-insensitive name
func (r *Registry) Resolve(userID, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	habits, err := r.ListHabits(userID)
	if err != nil {
		return models.Habit{}, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(h.ID, ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, apperrors.Wrapf(apperrors.ErrNotFound, "habit %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, apperrors.Invalid("habit", "%q matches %d habits, use the habit id", ref, len(matches))
	}
}

// SaveHabit creates a habit when its id is empty, otherwise fully replaces the
// stored habit with the same id. The owner, start date and creation time of an
// existing habit are never changed by an update, and a habit owned by another
// user is reported as not found.
func (r *Registry) SaveHabit(h models.Habit) (models.Habit, error) {
	h.ApplyDefaults()

	all, err := r.store.ListHabits()
	if err != nil {
		return models.Habit{}, err
	}

	if h.ID == "" {
		now := r.clock()
		h.ID = r.newID()
		h.CreatedAt = now.UTC()
		if h.StartDate == "" {
			h.StartDate = utils.FormatDate(now)
		} else if start, err := utils.ParseDayOrTimestamp(h.StartDate, now.Location()); err == nil {
			h.StartDate = utils.FormatDate(start)
		}
		if err := h.Validate(); err != nil {
			return models.Habit{}, err
		}

		all = append(all, h)
		if err := r.store.ReplaceHabits(all); err != nil {
			return models.Habit{}, err
		}
		logger.Debug("Created habit", "id", h.ID, "name", h.Name, "goalDays", h.GoalDays)
		return h, nil
	}

	for i, existing := range all {
		if existing.ID != h.ID {
			continue
		}
		if h.UserID != "" && h.UserID != existing.UserID {
			break
		}
		h.UserID = existing.UserID
		h.StartDate = existing.StartDate
		h.CreatedAt = existing.CreatedAt
		if err := h.Validate(); err != nil {
			return models.Habit{}, err
		}

		all[i] = h
		if err := r.store.ReplaceHabits(all); err != nil {
			return models.Habit{}, err
		}
		logger.Debug("Updated habit", "id", h.ID, "name", h.Name)
		return h, nil
	}

	logger.Warn("Habit update for unknown id", "id", h.ID)
	return models.Habit{}, apperrors.Wrapf(apperrors.ErrNotFound, "habit %s", h.ID)
}

// DeleteHabit removes a habit. With the cascade policy its tracking entries are
// removed too; with the orphan policy they are left in place.
func (r *Registry) DeleteHabit(habitID string, policy constants.DeletePolicy) error {
	if policy == "" {
		policy = constants.DeletePolicyCascade
	}
	if policy != constants.DeletePolicyCascade && policy != constants.DeletePolicyOrphan {
		return apperrors.Invalid("policy", "unknown delete policy %q", policy)
	}

	all, err := r.store.ListHabits()
	if err != nil {
		return err
	}

	kept := make([]models.Habit, 0, len(all))
	found := false
	for _, h := range all {
		if h.ID == habitID {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return apperrors.Wrapf(apperrors.ErrNotFound, "habit %s", habitID)
	}

	if err := r.store.ReplaceHabits(kept); err != nil {
		return err
	}

	if policy == constants.DeletePolicyCascade && r.purger != nil {
		removed, err := r.purger.DeleteForHabit(habitID)
		if err != nil {
			return err
		}
		logger.Debug("Deleted habit entries", "habitId", habitID, "entries", removed)
	}
	logger.Debug("Deleted habit", "id", habitID, "policy", policy)
	return nil
}

// Restore re-inserts habits from a snapshot under userID, keeping their ids.
// Habits whose id already exists are skipped. It returns how many were added.
func (r *Registry) Restore(userID string, habits []models.Habit) (int, error) {
	all, err := r.store.ListHabits()
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(all))
	for _, h := range all {
		known[h.ID] = true
	}

	added := 0
	for _, h := range habits {
		if h.ID == "" || known[h.ID] {
			continue
		}
		h.UserID = userID
		h.ApplyDefaults()
		if h.CreatedAt.IsZero() {
			h.CreatedAt = r.clock().UTC()
		}
		if start, err := utils.ParseDayOrTimestamp(h.StartDate, time.UTC); err == nil {
			h.StartDate = utils.FormatDate(start)
		}
		if err := h.Validate(); err != nil {
			return 0, err
		}
		all = append(all, h)
		known[h.ID] = true
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := r.store.ReplaceHabits(all); err != nil {
		return 0, err
	}
	logger.Info("Restored habits", "count", added)
	return added, nil
}
