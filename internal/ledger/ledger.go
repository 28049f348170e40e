// Package ledger records per-habit, per-day completion. Each (user, habit, day)
// has at most one entry and every write goes through Upsert semantics.
//
// The ledger reads, modifies and replaces the whole collection, so two
// processes toggling at the same time resolve as last writer wins.
package ledger

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/utils"
)

type Ledger struct {
	store storage.Provider
	clock utils.Clock
	newID func() string
}

// New creates a ledger. Timestamps passed as dates are read in the clock's location.
func New(store storage.Provider, clock utils.Clock) *Ledger {
	return &Ledger{
		store: store,
		clock: clock,
		newID: uuid.NewString,
	}
}

func (l *Ledger) location() *time.Location {
	if l.clock == nil {
		return time.UTC
	}
	return l.clock().Location()
}

func (l *Ledger) load() (*book, error) {
	stored, err := l.store.ListEntries()
	if err != nil {
		return nil, err
	}
	return newBook(stored), nil
}

func (l *Ledger) save(b *book) error {
	return l.store.ReplaceEntries(b.entries)
}

// normalizeDate validates a calendar day and returns it as YYYY-MM-DD
func normalizeDate(date string, loc *time.Location) (string, error) {
	day, err := utils.ParseDayOrTimestamp(date, loc)
	if err != nil {
		return "", apperrors.Invalid("date", "%v", err)
	}
	return utils.FormatDate(day), nil
}

func (l *Ledger) validateKey(userID, habitID, date string) (models.EntryKey, error) {
	if userID == "" {
		return models.EntryKey{}, apperrors.Invalid("userId", "user is required")
	}
	if habitID == "" {
		return models.EntryKey{}, apperrors.Invalid("habitId", "habit is required")
	}
	day, err := normalizeDate(date, l.location())
	if err != nil {
		return models.EntryKey{}, err
	}
	return models.EntryKey{UserID: userID, HabitID: habitID, Date: day}, nil
}

// GetEntries returns the user's entries, optionally only those of one habit.
// An empty habitID returns every habit's entries.
func (l *Ledger) GetEntries(userID, habitID string) ([]models.TrackingEntry, error) {
	all, err := l.store.ListEntries()
	if err != nil {
		return nil, err
	}
	entries := []models.TrackingEntry{}
	for _, e := range all {
		if e.UserID != userID {
			continue
		}
		if habitID != "" && e.HabitID != habitID {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// IsCompleted reports whether the triple has a completed entry
func (l *Ledger) IsCompleted(userID, habitID, date string) (bool, error) {
	key, err := l.validateKey(userID, habitID, date)
	if err != nil {
		return false, err
	}
	b, err := l.load()
	if err != nil {
		return false, err
	}
	e, ok := b.get(key)
	return ok && e.Completed, nil
}

// Upsert sets the completion of a (user, habit, day) triple, creating the
// entry on first write
func (l *Ledger) Upsert(userID, habitID, date string, completed bool) (models.TrackingEntry, error) {
	key, err := l.validateKey(userID, habitID, date)
	if err != nil {
		return models.TrackingEntry{}, err
	}

	b, err := l.load()
	if err != nil {
		return models.TrackingEntry{}, err
	}
	entry := b.put(key, completed, l.newID)
	if err := l.save(b); err != nil {
		return models.TrackingEntry{}, err
	}
	logger.Debug("Upserted tracking entry", "habitId", habitID, "date", key.Date, "completed", completed)
	return entry, nil
}

// Toggle inverts the completion of a day. Days after today are refused.
func (l *Ledger) Toggle(userID, habitID, date string, today time.Time) (models.TrackingEntry, error) {
	key, err := l.validateKey(userID, habitID, date)
	if err != nil {
		return models.TrackingEntry{}, err
	}

	day, _ := utils.ParseDateInLocation(key.Date, today.Location())
	if day.After(utils.StartOfDay(today)) {
		return models.TrackingEntry{}, apperrors.Wrapf(apperrors.ErrFutureDate, "%s", key.Date)
	}

	b, err := l.load()
	if err != nil {
		return models.TrackingEntry{}, err
	}
	current, _ := b.get(key)
	entry := b.put(key, !current.Completed, l.newID)
	if err := l.save(b); err != nil {
		return models.TrackingEntry{}, err
	}
	logger.Debug("Toggled tracking entry", "habitId", habitID, "date", key.Date, "completed", entry.Completed)
	return entry, nil
}

// SetForDates sets the same completion on several days of one habit in a single write
func (l *Ledger) SetForDates(userID, habitID string, dates []string, completed bool) (int, error) {
	keys := make([]models.EntryKey, 0, len(dates))
	for _, d := range dates {
		key, err := l.validateKey(userID, habitID, d)
		if err != nil {
			return 0, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	b, err := l.load()
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		b.put(key, completed, l.newID)
	}
	if err := l.save(b); err != nil {
		return 0, err
	}
	logger.Debug("Set tracking for dates", "habitId", habitID, "days", len(keys), "completed", completed)
	return len(keys), nil
}

// DeleteForHabit removes every entry of a habit and returns how many were removed
func (l *Ledger) DeleteForHabit(habitID string) (int, error) {
	b, err := l.load()
	if err != nil {
		return 0, err
	}
	removed := b.removeHabit(habitID)
	if removed == 0 {
		return 0, nil
	}
	if err := l.save(b); err != nil {
		return 0, err
	}
	return removed, nil
}

// Import upserts a batch of entries, keeping each entry's completion.
// Ids of imported entries are not reused.
func (l *Ledger) Import(entries []models.TrackingEntry) (int, error) {
	keys := make([]models.EntryKey, 0, len(entries))
	for _, e := range entries {
		key, err := l.validateKey(e.UserID, e.HabitID, e.Date)
		if err != nil {
			return 0, err
		}
		keys = append(keys, key)
	}

	b, err := l.load()
	if err != nil {
		return 0, err
	}
	for i, key := range keys {
		b.put(key, entries[i].Completed, l.newID)
	}
	if err := l.save(b); err != nil {
		return 0, err
	}
	logger.Info("Imported tracking entries", "count", len(keys))
	return len(keys), nil
}
