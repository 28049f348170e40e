package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "y", "Y":
		if m.PendingDeleteID != "" {
			if err := m.Registry.DeleteHabit(m.PendingDeleteID, m.Policy); err != nil {
				m.Status = apperrors.Format(err)
			} else {
				m.Status = "Habit deleted."
				if err := m.Reload(); err != nil {
					m.Status = "Deleted, but could not refresh: " + err.Error()
				}
			}
			m.PendingDeleteID = ""
		}
		m.State = constants.StateHabits
	case "n", "N", "esc":
		m.PendingDeleteID = ""
		m.State = constants.StateHabits
	}
	return nil
}
