package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
	}

	if _, ok := msg.(dayTickMsg); ok {
		if m.DayChanged() {
			if err := m.Reload(); err != nil {
				m.Status = "Could not refresh: " + err.Error()
			}
		}
		return m, tickDay()
	}

	switch m.State {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m, handlers.HandleHabitFormState(&m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
	}

	if handled, cmd := handlers.HandleHabitMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleTrackingMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		// The habit list filter owns the keyboard while it is open
		if !(m.State == constants.StateHabits && m.HabitsModel.Filtering()) {
			if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
	case constants.StateHabits:
		m.HabitsModel, cmd = m.HabitsModel.Update(msg)
	case constants.StateTrack:
		m.Track, cmd = m.Track.Update(msg)
	case constants.StateStats:
		m.Stats, cmd = m.Stats.Update(msg)
	}
	return m, cmd
}
