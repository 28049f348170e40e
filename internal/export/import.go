package export

import (
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
)

// HabitRestorer re-creates habits from a snapshot, keeping their ids
type HabitRestorer interface {
	Restore(userID string, habits []models.Habit) (int, error)
	Owners() (map[string]string, error)
}

// EntryImporter upserts a batch of tracking entries
type EntryImporter interface {
	Import(entries []models.TrackingEntry) (int, error)
}

// Result reports what an import changed
type Result struct {
	Habits  int
	Entries int
	Skipped int
}

// Import loads a snapshot into userID's account. Missing habits are restored
// first, then entries are upserted so the completion state of each
// (habit, day) pair matches the snapshot. Entries of habits owned by another
// user are skipped.
func Import(doc Document, userID string, habits HabitRestorer, entries EntryImporter) (Result, error) {
	restored, err := habits.Restore(userID, doc.Habits)
	if err != nil {
		return Result{}, err
	}

	owners, err := habits.Owners()
	if err != nil {
		return Result{Habits: restored}, err
	}

	batch := make([]models.TrackingEntry, 0, len(doc.Tracking))
	skipped := 0
	for _, e := range doc.Tracking {
		if owner, ok := owners[e.HabitID]; ok && owner != userID {
			skipped++
			continue
		}
		e.UserID = userID
		batch = append(batch, e)
	}
	if skipped > 0 {
		logger.Warn("Skipped entries of habits owned by another user", "user", userID, "entries", skipped)
	}
	imported := 0
	if len(batch) > 0 {
		imported, err = entries.Import(batch)
		if err != nil {
			return Result{Habits: restored, Skipped: skipped}, err
		}
	}

	logger.Info("Imported snapshot", "user", userID, "habits", restored, "entries", imported)
	return Result{Habits: restored, Entries: imported, Skipped: skipped}, nil
}
