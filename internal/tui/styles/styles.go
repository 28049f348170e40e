package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrackr/internal/constants"
)

// Styles holds every style the TUI renders with
type Styles struct {
	Theme       constants.Theme
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Success     lipgloss.Style
	Doc         lipgloss.Style
	Status      lipgloss.Style
	Done        lipgloss.Style
	Missed      lipgloss.Style
	Today       lipgloss.Style
	Future      lipgloss.Style
	Cursor      lipgloss.Style
	// ProgressStart and ProgressEnd are the gradient ends for progress bars
	ProgressStart string
	ProgressEnd   string
}

type palette struct {
	fg, muted, accent, tabBg string
	danger, warning, success string
	cursorFg, cursorBg       string
	progressStart            string
	progressEnd              string
}

var (
	light = palette{
		fg:            "235",
		muted:         "245",
		accent:        "63",
		tabBg:         "254",
		danger:        "160",
		warning:       "172",
		success:       "28",
		cursorFg:      "231",
		cursorBg:      "63",
		progressStart: "#5A56E0",
		progressEnd:   "#EE6FF8",
	}
	dark = palette{
		fg:            "252",
		muted:         "240",
		accent:        "205",
		tabBg:         "236",
		danger:        "196",
		warning:       "214",
		success:       "42",
		cursorFg:      "235",
		cursorBg:      "205",
		progressStart: "#FF7CCB",
		progressEnd:   "#FDFF8C",
	}
)

// New builds the styles for a theme. Anything other than dark gets the light palette.
func New(theme constants.Theme) Styles {
	p := light
	if theme == constants.ThemeDark {
		p = dark
	} else {
		theme = constants.ThemeLight
	}

	return Styles{
		Theme: theme,
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)).
			Background(lipgloss.Color(p.tabBg)).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)).
			Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(p.warning)).Italic(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)),
		Doc:     lipgloss.NewStyle().Padding(1, 2),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)).
			Padding(0, 1),
		Done:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)).Bold(true),
		Missed: lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)),
		Today:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.warning)).Bold(true),
		Future: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.cursorFg)).
			Background(lipgloss.Color(p.cursorBg)),
		ProgressStart: p.progressStart,
		ProgressEnd:   p.progressEnd,
	}
}
