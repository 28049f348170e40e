package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/tracker"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

// Item is a habit together with its progress over its own range
type Item struct {
	Score tracker.Score
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s", i.Score.Habit.Icon, i.Score.Habit.Name)
}

func (i Item) Description() string {
	h := i.Score.Habit
	desc := fmt.Sprintf("%s · %d days from %s · %d%% (%d/%d)",
		h.Category, h.GoalDays, h.StartDate, i.Score.Percentage, i.Score.Completed, i.Score.Total)
	if h.ReminderTime != "" {
		desc += " · ⏰ " + h.ReminderTime
	}
	return desc
}

func (i Item) FilterValue() string { return i.Score.Habit.Name + " " + i.Score.Habit.Category }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(scores []tracker.Score, width, height int) Model {
	l := list.New(items(scores), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(scores []tracker.Score) []list.Item {
	out := make([]list.Item, len(scores))
	for i, s := range scores {
		out[i] = Item{Score: s}
	}
	return out
}

func (m *Model) SetHabits(scores []tracker.Score) {
	m.list.SetItems(items(scores))
}

// Selected returns the highlighted habit's id, if any
func (m Model) Selected() (string, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return "", false
	}
	return i.Score.Habit.ID, true
}

// Filtering reports whether the list is capturing keys for its filter
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: id} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: id} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
