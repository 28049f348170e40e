package settings

import (
	"strings"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/models"
)

type ThemeCmd struct {
	Theme string `arg:"" optional:"" help:"light, dark or toggle. Shows the current theme when omitted."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	if ctx.Session == nil {
		if err := ctx.LoadSession(); err != nil {
			return err
		}
	}

	value := strings.ToLower(strings.TrimSpace(c.Theme))
	switch value {
	case "":
		ctx.Printf("Current theme: %s\n", ctx.Session.Theme())
		return nil
	case "toggle":
		theme, err := ctx.Session.ToggleTheme()
		if err != nil {
			return err
		}
		ctx.Printf("Theme set to %s\n", theme)
		return nil
	}

	theme, err := models.ParseTheme(value)
	if err != nil {
		return apperrors.Invalid("theme", "%v", err)
	}
	if err := ctx.Session.SetTheme(theme); err != nil {
		return err
	}
	ctx.Printf("Theme set to %s\n", theme)
	if theme == constants.ThemeDark {
		ctx.Println("The TUI will use the dark palette.")
	}
	return nil
}
