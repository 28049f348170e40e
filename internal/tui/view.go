package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrackr/internal/constants"
)

var tabTitles = []struct {
	state constants.SessionState
	title string
}{
	{constants.StateDashboard, "Dashboard"},
	{constants.StateHabits, "Habits"},
	{constants.StateTrack, "Track"},
	{constants.StateStats, "Stats"},
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateDashboard:
		content = m.Styles.Doc.Render(m.Dashboard.View())
	case constants.StateHabits:
		content = m.Styles.Doc.Render(m.HabitsModel.View())
	case constants.StateTrack:
		content = m.Styles.Doc.Render(m.Track.View())
	case constants.StateStats:
		content = m.Styles.Doc.Render(m.Stats.View())
	case constants.StateAddHabit, constants.StateEditHabit:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.Help.View(m),
	)
}

func (m Model) viewHeader() string {
	var tabs []string
	for _, t := range tabTitles {
		active := m.State == t.state ||
			(t.state == constants.StateHabits && (m.State == constants.StateAddHabit || m.State == constants.StateEditHabit || m.State == constants.StateConfirmDelete))
		if active {
			tabs = append(tabs, m.Styles.ActiveTab.Render(t.title))
		} else {
			tabs = append(tabs, m.Styles.InactiveTab.Render(t.title))
		}
	}
	user := m.Styles.Muted.Render(fmt.Sprintf("  %s · %s theme", m.User.Name, m.Styles.Theme))
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, user)...)
}

func (m Model) viewForm() string {
	title := "Add habit"
	if m.State == constants.StateEditHabit {
		title = "Edit habit"
	}
	parts := []string{m.Styles.Title.Render(title), ""}
	if m.FormError != "" {
		parts = append(parts, m.Styles.Danger.Render(m.FormError), "")
	}
	if m.Form != nil {
		parts = append(parts, m.Form.View())
	}
	return m.Styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	name := m.PendingDeleteID
	if h, err := m.Registry.GetHabit(m.User.ID, m.PendingDeleteID); err == nil {
		name = h.Icon + " " + h.Name
	}
	note := "Its tracking history will be deleted too."
	if m.Policy == constants.DeletePolicyOrphan {
		note = "Its tracking history will be kept."
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.Styles.Danger.Render(fmt.Sprintf("Delete habit %s?", name)),
		m.Styles.Warning.Render(note),
		"",
		"[y] Yes",
		"[n] No",
	)
	if m.Width > 0 && m.Height > 4 {
		return lipgloss.Place(m.Width, m.Height-4, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) viewStatus() string {
	if m.Status == "" {
		return ""
	}
	return m.Styles.Status.Render(m.Status)
}
