package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/tui/styles"
)

// Data is everything the statistics tab shows
type Data struct {
	Weekly   []tracker.Period
	Top      []tracker.Score
	Overview tracker.Overview
	Trend    []tracker.Period
}

type Model struct {
	data   Data
	today  time.Time
	bar    progress.Model
	styles styles.Styles
	width  int
	height int
}

func New(st styles.Styles) Model {
	m := Model{}
	m.SetStyles(st)
	return m
}

func (m *Model) SetData(d Data, today time.Time) {
	m.data = d
	m.today = today
}

func (m *Model) SetStyles(st styles.Styles) {
	m.styles = st
	m.bar = progress.New(progress.WithGradient(st.ProgressStart, st.ProgressEnd), progress.WithWidth(24))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if len(m.data.Top) == 0 {
		return "\n  No habits yet, so there are no statistics to show."
	}
	d := m.data
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Weekly progress"))
	b.WriteString("\n")
	for _, w := range d.Weekly {
		b.WriteString(fmt.Sprintf("  %-7s %s - %s  %s  (%d/%d)\n",
			w.Label, w.Window.Start.Format("Jan 02"), w.Window.End.Format("Jan 02"),
			m.bar.ViewAs(float64(w.Percentage)/100), w.Completed, w.Possible))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Top habits this month"))
	b.WriteString("\n")
	for i, s := range d.Top {
		b.WriteString(fmt.Sprintf("  %2d. %s %-20s %3d%%  (%d/%d)\n", i+1, s.Habit.Icon, s.Habit.Name, s.Percentage, s.Completed, s.Total))
	}

	o := d.Overview
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(o.Period.Label))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s %d%%  %s %d%%\n",
		m.bar.ViewAs(float64(o.Completed)/100),
		m.styles.Success.Render("completed"), o.Completed,
		m.styles.Muted.Render("remaining"), o.Remaining))

	if spark := m.sparkline(); spark != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("Daily trend"))
		b.WriteString("\n  ")
		b.WriteString(spark)
	}
	return b.String()
}

var levels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders the month's per-day percentages up to today
func (m Model) sparkline() string {
	var r []rune
	for _, p := range m.data.Trend {
		if p.Window.Start.After(m.today) {
			break
		}
		r = append(r, levels[p.Percentage*(len(levels)-1)/100])
	}
	return string(r)
}
