package accounts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", label)
		}
		return nil
	}
}

func textInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(required(strings.ToLower(title)))
}

func passwordInput(title string, value *string) *huh.Input {
	return textInput(title, value).EchoMode(huh.EchoModePassword)
}

// prompt runs a form for the given inputs, skipping those already filled
func prompt(inputs ...*huh.Input) error {
	fields := make([]huh.Field, 0, len(inputs))
	for _, in := range inputs {
		if in != nil {
			fields = append(fields, in)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula()).Run()
}

// missing returns in when value is empty, nil otherwise
func missing(value string, in *huh.Input) *huh.Input {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return in
}
