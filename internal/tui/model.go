package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/tui/state"
)

// Services are the shared services the TUI works through
type Services = state.Services

type Model struct {
	state.Model
}

// dayTickMsg is sent every minute so the views roll over at midnight
type dayTickMsg time.Time

func tickDay() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return dayTickMsg(t)
	})
}

func NewModel(svc Services, user models.User) Model {
	return Model{Model: state.New(svc, user)}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help, m.Keys.Theme}
	switch m.State {
	case constants.StateDashboard:
		keys = append(keys, m.Keys.Toggle)
	case constants.StateHabits:
		keys = append(keys, m.Keys.Add, m.Keys.Edit, m.Keys.Delete)
	case constants.StateTrack:
		keys = append(keys, m.Keys.Left, m.Keys.Right, m.Keys.Toggle)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help, m.Keys.Theme}

	var navigation, actions []key.Binding
	switch m.State {
	case constants.StateDashboard:
		navigation = []key.Binding{m.Keys.Up, m.Keys.Down}
		actions = []key.Binding{m.Keys.Toggle}
	case constants.StateHabits:
		navigation = []key.Binding{m.Keys.Up, m.Keys.Down}
		actions = []key.Binding{m.Keys.Add, m.Keys.Edit, m.Keys.Delete}
	case constants.StateTrack:
		navigation = []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Left, m.Keys.Right}
		actions = []key.Binding{m.Keys.Toggle}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tickDay()
}
