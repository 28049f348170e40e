package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/tui/state"
)

var tabs = []constants.SessionState{
	constants.StateDashboard,
	constants.StateHabits,
	constants.StateTrack,
	constants.StateStats,
}

func cycle(current constants.SessionState, step int) constants.SessionState {
	for i, t := range tabs {
		if t == current {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return current
}

// HandleGlobalKeys handles key presses shared by every tab
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Tab):
		m.State = cycle(m.State, 1)
		m.Status = ""
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		m.State = cycle(m.State, -1)
		m.Status = ""
		return true, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Theme):
		theme, err := m.Session.ToggleTheme()
		if err != nil {
			m.Status = "Could not save theme: " + err.Error()
			return true, nil
		}
		m.ApplyTheme()
		m.Status = "Theme: " + string(theme)
		return true, nil
	}
	return false, nil
}
