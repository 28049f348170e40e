package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/tui/components/dashboard"
	"github.com/julianstephens/habitrackr/internal/tui/components/track"
	"github.com/julianstephens/habitrackr/internal/tui/state"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// HandleTrackingMessages handles toggles from the dashboard and the grid
func HandleTrackingMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboard.ToggleMsg:
		toggle(m, msg.HabitID, utils.FormatDate(m.Today()))
		return true, nil

	case track.ToggleCellMsg:
		toggle(m, msg.HabitID, utils.FormatDate(msg.Day))
		return true, nil

	case track.RefusedMsg:
		m.Status = "Cannot mark " + utils.FormatDate(msg.Day) + ": " + msg.Reason + "."
		return true, nil
	}
	return false, nil
}

func toggle(m *state.Model, habitID, date string) {
	entry, err := m.Ledger.Toggle(m.User.ID, habitID, date, m.Today())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrFutureDate) {
			m.Status = "Cannot mark " + date + ": in the future."
			return
		}
		m.Status = apperrors.Format(err)
		return
	}
	if entry.Completed {
		m.Status = "✓ Marked done for " + date
	} else {
		m.Status = "✗ Unmarked for " + date
	}
	if err := m.Reload(); err != nil {
		m.Status = "Could not refresh: " + err.Error()
	}
}
