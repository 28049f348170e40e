package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/cli/accounts"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if apperrors.Is(err, apperrors.ErrNotLoggedIn) {
		user, err = accounts.Interactive(ctx)
	}
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	m := tui.NewModel(tui.Services{
		Registry: ctx.Registry,
		Ledger:   ctx.Ledger,
		Session:  ctx.Session,
		Clock:    ctx.Clock,
		Policy:   ctx.Config.DeletePolicy,
	}, user)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
