package models

// TrackingEntry is one day's completion record for one habit
type TrackingEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// EntryKey identifies the single entry allowed per user, habit and day
type EntryKey struct {
	UserID  string
	HabitID string
	Date    string
}

func (e TrackingEntry) Key() EntryKey {
	return EntryKey{UserID: e.UserID, HabitID: e.HabitID, Date: e.Date}
}
