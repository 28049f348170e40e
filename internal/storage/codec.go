package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
)

// DecodeCollection parses a stored collection payload.
// An empty or null payload is an empty collection.
func DecodeCollection[T any](name string, payload []byte) ([]T, error) {
	items := []T{}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("corrupt %s collection: %w", name, err)
	}
	return items, nil
}

// EncodeCollection serializes a collection. A nil slice encodes as [].
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// DecodeTheme reads a stored theme preference, defaulting to light
func DecodeTheme(value string) (constants.Theme, error) {
	theme, err := models.ParseTheme(value)
	if err != nil {
		return "", fmt.Errorf("corrupt theme preference: %w", err)
	}
	return theme, nil
}
