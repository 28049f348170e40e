package models

import (
	"fmt"

	"github.com/julianstephens/habitrackr/internal/constants"
)

// ParseTheme validates a theme name. An empty value means the light default.
func ParseTheme(s string) (constants.Theme, error) {
	switch constants.Theme(s) {
	case "":
		return constants.ThemeLight, nil
	case constants.ThemeLight, constants.ThemeDark:
		return constants.Theme(s), nil
	default:
		return "", fmt.Errorf("invalid theme %q (expected light or dark)", s)
	}
}

// ToggleTheme returns the opposite theme
func ToggleTheme(t constants.Theme) constants.Theme {
	if t == constants.ThemeDark {
		return constants.ThemeLight
	}
	return constants.ThemeDark
}
