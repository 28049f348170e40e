package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/tui/styles"
)

// ToggleMsg asks for today's completion of a habit to be flipped
type ToggleMsg struct {
	HabitID string
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle today"),
		),
	}
}

type Model struct {
	summary tracker.TodaySummary
	today   time.Time
	quote   string
	cursor  int
	keys    KeyMap
	bar     progress.Model
	styles  styles.Styles
	width   int
	height  int
}

func New(st styles.Styles) Model {
	m := Model{keys: DefaultKeyMap(), summary: tracker.TodaySummary{Items: []tracker.TodayItem{}}}
	m.SetStyles(st)
	return m
}

// SetSummary replaces the dashboard figures, keeping the cursor on a valid row
func (m *Model) SetSummary(s tracker.TodaySummary, today time.Time) {
	m.summary = s
	m.today = today
	m.quote = tracker.Quote(today)
	if m.cursor >= len(s.Items) {
		m.cursor = len(s.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) SetStyles(st styles.Styles) {
	m.styles = st
	m.bar = progress.New(progress.WithGradient(st.ProgressStart, st.ProgressEnd), progress.WithWidth(30))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(m.summary.Items)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.Toggle):
		if len(m.summary.Items) == 0 {
			return m, nil
		}
		id := m.summary.Items[m.cursor].Habit.ID
		return m, func() tea.Msg { return ToggleMsg{HabitID: id} }
	}
	return m, nil
}

func (m Model) View() string {
	s := m.summary
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.today.Format("Monday, January 2")))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.quote))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Today   %d/%d completed  %s\n", s.Completed, s.Total, m.bar.ViewAs(float64(s.Percentage)/100)))
	b.WriteString(fmt.Sprintf("Streak  🔥 %d day(s)\n\n", s.Streak))

	if len(s.Items) == 0 {
		b.WriteString(m.styles.Muted.Render("No habits are active today. Add one on the Habits tab."))
		return b.String()
	}

	for i, item := range s.Items {
		mark := m.styles.Muted.Render("[ ]")
		if item.Done {
			mark = m.styles.Done.Render("[x]")
		}
		name := fmt.Sprintf("%s %s", item.Habit.Icon, item.Habit.Name)
		if i == m.cursor {
			name = m.styles.Cursor.Render(name)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  ", mark, " ", name))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
