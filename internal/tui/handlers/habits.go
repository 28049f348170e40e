package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/tui/components/habits"
	"github.com/julianstephens/habitrackr/internal/tui/state"
)

// HandleHabitFormState handles the add and edit habit states
func HandleHabitFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		closeForm(m)
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		saved, err := SaveHabitForm(m)
		if err != nil {
			// Reopen the form with the entered values so the user can fix them
			m.FormError = apperrors.Format(err)
			m.Form = NewHabitForm(m.HabitForm, m.EditingID == "", m.Today(), m.Styles.Theme)
			return m.Form.Init()
		}
		if err := m.Reload(); err != nil {
			m.Status = "Saved, but could not refresh: " + err.Error()
		} else {
			m.Status = "Saved " + saved.Icon + " " + saved.Name
		}
		closeForm(m)
	case huh.StateAborted:
		closeForm(m)
	}
	return tea.Batch(cmds...)
}

func closeForm(m *state.Model) {
	m.Form = nil
	m.HabitForm = nil
	m.EditingID = ""
	m.FormError = ""
	m.State = constants.StateHabits
}

// SaveHabitForm creates or updates the habit described by the open form
func SaveHabitForm(m *state.Model) (models.Habit, error) {
	today := m.Today()
	h := models.Habit{UserID: m.User.ID}
	if m.EditingID != "" {
		existing, err := m.Registry.GetHabit(m.User.ID, m.EditingID)
		if err != nil {
			return models.Habit{}, err
		}
		h = existing
	}
	if err := ApplyHabitForm(&h, m.HabitForm, today); err != nil {
		return models.Habit{}, err
	}
	saved, err := m.Registry.SaveHabit(h)
	if err != nil {
		logger.Warn("Failed to save habit from form", "id", m.EditingID, "error", err)
	}
	return saved, err
}

// HandleHabitMessages handles messages from the habits component
func HandleHabitMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		today := m.Today()
		m.HabitForm = NewHabitFormModel(today)
		m.EditingID = ""
		m.FormError = ""
		m.Form = NewHabitForm(m.HabitForm, true, today, m.Styles.Theme)
		m.State = constants.StateAddHabit
		return true, m.Form.Init()

	case habits.EditHabitMsg:
		h, err := m.Registry.GetHabit(m.User.ID, msg.ID)
		if err != nil {
			m.Status = apperrors.Format(err)
			return true, nil
		}
		m.HabitForm = HabitFormModelFor(h)
		m.EditingID = h.ID
		m.FormError = ""
		m.Form = NewHabitForm(m.HabitForm, false, m.Today(), m.Styles.Theme)
		m.State = constants.StateEditHabit
		return true, m.Form.Init()

	case habits.DeleteHabitMsg:
		m.PendingDeleteID = msg.ID
		m.State = constants.StateConfirmDelete
		return true, nil
	}
	return false, nil
}
