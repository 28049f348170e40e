// Package export writes a user's habits and tracking history as a JSON
// snapshot or as a flat table (CSV or XLSX), and re-imports snapshots.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
)

// Kind is an export file format
type Kind string

const (
	KindJSON Kind = "json"
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

// Document is the full-state snapshot of one user
type Document struct {
	User       models.Profile         `json:"user"`
	Habits     []models.Habit         `json:"habits"`
	Tracking   []models.TrackingEntry `json:"tracking"`
	ExportDate time.Time              `json:"exportDate"`
}

// Snapshot builds the export document for user. Habits and entries owned by
// other users are left out.
func Snapshot(user models.User, habits []models.Habit, entries []models.TrackingEntry, now time.Time) Document {
	doc := Document{
		User:       user.Profile(),
		Habits:     []models.Habit{},
		Tracking:   []models.TrackingEntry{},
		ExportDate: now.UTC(),
	}
	for _, h := range habits {
		if h.UserID == user.ID {
			doc.Habits = append(doc.Habits, h)
		}
	}
	for _, e := range entries {
		if e.UserID == user.ID {
			doc.Tracking = append(doc.Tracking, e)
		}
	}
	return doc
}

// WriteJSON writes the document as indented JSON
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// ReadSnapshot decodes a document written by WriteJSON
func ReadSnapshot(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, apperrors.Invalid("snapshot", "invalid snapshot: %v", err)
	}
	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.Tracking == nil {
		doc.Tracking = []models.TrackingEntry{}
	}
	return doc, nil
}

// FileName returns the default file name for an export taken at now
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s%s.%s", constants.ExportFilePrefix, now.Format(constants.DateFormat), kind)
}

// ParseKind validates an export format name
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindJSON, KindCSV, KindXLSX:
		return Kind(s), nil
	default:
		return "", apperrors.Invalid("format", "unknown export format %q (expected json, csv or xlsx)", s)
	}
}
