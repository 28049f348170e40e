package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrackr/internal/constants"
	"github.com/julianstephens/habitrackr/internal/ledger"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/registry"
	"github.com/julianstephens/habitrackr/internal/session"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/tui/components/dashboard"
	"github.com/julianstephens/habitrackr/internal/tui/components/habits"
	"github.com/julianstephens/habitrackr/internal/tui/components/stats"
	"github.com/julianstephens/habitrackr/internal/tui/components/track"
	"github.com/julianstephens/habitrackr/internal/tui/styles"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// Services are the shared services the TUI reads and writes through
type Services struct {
	Registry *registry.Registry
	Ledger   *ledger.Ledger
	Session  *session.Session
	Clock    utils.Clock
	Policy   constants.DeletePolicy
}

// HabitFormModel represents the form model for habit creation and editing
type HabitFormModel struct {
	Name     string
	Icon     string
	Category string
	Goal     string
	Start    string
	Reminder string
}

// Model represents the shared state for the TUI
type Model struct {
	Services
	User            models.User
	State           constants.SessionState
	Keys            KeyMap
	Help            help.Model
	Styles          styles.Styles
	Dashboard       dashboard.Model
	HabitsModel     habits.Model
	Track           track.Model
	Stats           stats.Model
	Form            *huh.Form
	HabitForm       *HabitFormModel
	EditingID       string // empty while adding
	PendingDeleteID string
	Status          string
	FormError       string // Error message to display for form operations
	Quitting        bool
	Width           int
	Height          int
	day             time.Time
}

// New creates a new state Model and loads the user's data
func New(svc Services, user models.User) Model {
	st := styles.New(svc.Session.Theme())
	m := Model{
		Services:    svc,
		User:        user,
		State:       constants.StateDashboard,
		Keys:        DefaultKeyMap(),
		Help:        help.New(),
		Styles:      st,
		Dashboard:   dashboard.New(st),
		HabitsModel: habits.New(nil, 0, 0),
		Track:       track.New(st),
		Stats:       stats.New(st),
	}
	if err := m.Reload(); err != nil {
		m.Status = "Could not load habits: " + err.Error()
	}
	return m
}

// Today is the start of the current day in the configured timezone
func (m *Model) Today() time.Time {
	return utils.StartOfDay(m.Clock())
}

// DayChanged reports whether the calendar day moved on since the last reload
func (m *Model) DayChanged() bool {
	return !utils.SameDay(m.day, m.Today())
}

// Reload recomputes every tab from the registry and ledger
func (m *Model) Reload() error {
	today := m.Today()
	m.day = today

	list, err := m.Registry.ListHabits(m.User.ID)
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		return err
	}
	entries, err := m.Ledger.GetEntries(m.User.ID, "")
	if err != nil {
		logger.Error("Failed to load tracking entries", "error", err)
		return err
	}
	ix := tracker.NewIndex(entries)

	scores := make([]tracker.Score, len(list))
	for i, h := range list {
		scores[i] = tracker.ScoreIn(h, ix, tracker.HabitWindow(h, today), today)
	}

	m.Dashboard.SetSummary(tracker.Today(list, ix, today), today)
	m.HabitsModel.SetHabits(scores)
	m.Track.SetGrid(tracker.Grid(list, ix, today), today)
	m.Stats.SetData(stats.Data{
		Weekly:   tracker.Weekly(list, ix, today),
		Top:      tracker.Rank(list, ix, tracker.Month(today), today),
		Overview: tracker.MonthlyOverview(list, ix, today),
		Trend:    tracker.MonthlyTrend(list, ix, today),
	}, today)
	return nil
}

// ApplyTheme rebuilds the styles from the session's theme
func (m *Model) ApplyTheme() {
	m.Styles = styles.New(m.Session.Theme())
	m.Dashboard.SetStyles(m.Styles)
	m.Track.SetStyles(m.Styles)
	m.Stats.SetStyles(m.Styles)
}

// SetSize sizes every tab to the space below the tabs and above the help line
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width

	w, h := width-4, height-8
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m.Dashboard.SetSize(w, h)
	m.HabitsModel.SetSize(w, h)
	m.Track.SetSize(w, h)
	m.Stats.SetSize(w, h)
}
