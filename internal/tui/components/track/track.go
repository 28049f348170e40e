package track

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/tui/styles"
	"github.com/julianstephens/habitrackr/internal/utils"
)

const (
	nameWidth    = 22
	cellWidth    = 3
	summaryWidth = 14
)

// ToggleCellMsg asks for one day of one habit to be flipped
type ToggleCellMsg struct {
	HabitID string
	Day     time.Time
}

// RefusedMsg reports a toggle on a cell that does not accept one
type RefusedMsg struct {
	Day    time.Time
	Reason string
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Today  key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev habit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next habit"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "jump to today"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	grid   tracker.GridView
	today  time.Time
	row    int
	col    int
	offset int
	placed bool
	keys   KeyMap
	styles styles.Styles
	width  int
	height int
}

func New(st styles.Styles) Model {
	return Model{keys: DefaultKeyMap(), styles: st}
}

func (m *Model) SetStyles(st styles.Styles) {
	m.styles = st
}

// SetGrid replaces the grid. The cursor starts on today and afterwards stays
// where it was, clamped to the new bounds.
func (m *Model) SetGrid(g tracker.GridView, today time.Time) {
	dayChanged := !utils.SameDay(m.today, today)
	m.grid = g
	m.today = today
	if !m.placed || dayChanged {
		m.col = m.todayColumn()
		m.placed = len(g.Days) > 0
	}
	m.clamp()
	m.fit()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.fit()
}

// Cursor returns the selected row and column
func (m Model) Cursor() (row, col int) {
	return m.row, m.col
}

// Selected returns the cell under the cursor
func (m Model) Selected() (tracker.Row, tracker.Cell, bool) {
	if len(m.grid.Rows) == 0 || len(m.grid.Days) == 0 {
		return tracker.Row{}, tracker.Cell{}, false
	}
	r := m.grid.Rows[m.row]
	return r, r.Cells[m.col], true
}

func (m Model) todayColumn() int {
	for i, d := range m.grid.Days {
		if utils.SameDay(d, m.today) {
			return i
		}
	}
	if n := len(m.grid.Days); n > 0 && m.grid.Days[n-1].Before(m.today) {
		return n - 1
	}
	return 0
}

func (m *Model) clamp() {
	if m.row >= len(m.grid.Rows) {
		m.row = len(m.grid.Rows) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= len(m.grid.Days) {
		m.col = len(m.grid.Days) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
}

// visibleColumns is how many day columns fit beside the names and totals
func (m Model) visibleColumns() int {
	if m.width <= 0 {
		return len(m.grid.Days)
	}
	n := (m.width - nameWidth - summaryWidth) / cellWidth
	if n < 1 {
		n = 1
	}
	return n
}

// fit scrolls the visible columns so the cursor stays in view
func (m *Model) fit() {
	visible := m.visibleColumns()
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+visible {
		m.offset = m.col - visible + 1
	}
	if last := len(m.grid.Days) - visible; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
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
		m.row--
	case key.Matches(km, m.keys.Down):
		m.row++
	case key.Matches(km, m.keys.Left):
		m.col--
	case key.Matches(km, m.keys.Right):
		m.col++
	case key.Matches(km, m.keys.Today):
		m.col = m.todayColumn()
	case key.Matches(km, m.keys.Toggle):
		row, cell, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if !cell.Toggleable() {
			reason := "outside the habit's range"
			if cell.State == constants.CellFuture {
				reason = "in the future"
			}
			return m, func() tea.Msg { return RefusedMsg{Day: cell.Day, Reason: reason} }
		}
		return m, func() tea.Msg { return ToggleCellMsg{HabitID: row.Habit.ID, Day: cell.Day} }
	}
	m.clamp()
	m.fit()
	return m, nil
}

func (m Model) cell(c tracker.Cell, selected bool) string {
	glyph := cli.CellGlyph(c.State, c.Completed)
	var st lipgloss.Style
	switch {
	case c.State == constants.CellFuture:
		st = m.styles.Future
	case c.Completed:
		st = m.styles.Done
	case c.State == constants.CellToday:
		st = m.styles.Today
	case c.State == constants.CellPast:
		st = m.styles.Missed
	}
	if selected {
		st = m.styles.Cursor
	}
	return " " + st.Render(" "+glyph)
}

func (m Model) View() string {
	if len(m.grid.Rows) == 0 {
		return "\n  No habits to track yet."
	}

	end := m.offset + m.visibleColumns()
	if end > len(m.grid.Days) {
		end = len(m.grid.Days)
	}
	days := m.grid.Days[m.offset:end]
	name := lipgloss.NewStyle().Width(nameWidth)

	var b strings.Builder
	b.WriteString(name.Render(m.grid.Days[m.offset].Format("Jan 2006")))
	for _, d := range days {
		label := fmt.Sprintf("%3s", d.Format("02"))
		if utils.SameDay(d, m.today) {
			label = m.styles.Today.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	for r, row := range m.grid.Rows {
		b.WriteString(name.Render(truncate(fmt.Sprintf("%s %s", row.Habit.Icon, row.Habit.Name), nameWidth-1)))
		for c := m.offset; c < end; c++ {
			b.WriteString(m.cell(row.Cells[c], r == m.row && c == m.col))
		}
		b.WriteString(fmt.Sprintf("  %d/%d %3d%%\n", row.Completed, row.Habit.GoalDays, row.Percentage))
	}

	if _, c, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(c.Day.Format("Monday, January 2, 2006")))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("✓ done  ✗ missed  ○ today  · future"))
	return b.String()
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
