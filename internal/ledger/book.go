package ledger

import (
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
)

// book is the tracking collection indexed by its composite key.
// entries keeps insertion order; index points each key at its single record.
type book struct {
	entries []models.TrackingEntry
	index   map[models.EntryKey]int
}

// newBook indexes a stored collection. Legacy duplicates of a key are folded
// into the first record, with the last stored value winning.
func newBook(stored []models.TrackingEntry) *book {
	b := &book{
		entries: make([]models.TrackingEntry, 0, len(stored)),
		index:   make(map[models.EntryKey]int, len(stored)),
	}
	dropped := 0
	for _, e := range stored {
		if i, ok := b.index[e.Key()]; ok {
			b.entries[i].Completed = e.Completed
			dropped++
			continue
		}
		b.index[e.Key()] = len(b.entries)
		b.entries = append(b.entries, e)
	}
	if dropped > 0 {
		logger.Warn("Folded duplicate tracking entries", "duplicates", dropped)
	}
	return b
}

func (b *book) get(key models.EntryKey) (models.TrackingEntry, bool) {
	i, ok := b.index[key]
	if !ok {
		return models.TrackingEntry{}, false
	}
	return b.entries[i], true
}

// put replaces the record for the key or appends a new one using newID
func (b *book) put(key models.EntryKey, completed bool, newID func() string) models.TrackingEntry {
	if i, ok := b.index[key]; ok {
		b.entries[i].Completed = completed
		return b.entries[i]
	}
	e := models.TrackingEntry{
		ID:        newID(),
		UserID:    key.UserID,
		HabitID:   key.HabitID,
		Date:      key.Date,
		Completed: completed,
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, e)
	return e
}

// removeHabit drops every record of the habit and rebuilds the index
func (b *book) removeHabit(habitID string) int {
	kept := b.entries[:0]
	removed := 0
	for _, e := range b.entries {
		if e.HabitID == habitID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	b.entries = kept
	b.index = make(map[models.EntryKey]int, len(kept))
	for i, e := range kept {
		b.index[e.Key()] = i
	}
	return removed
}
