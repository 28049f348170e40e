package constants

// Theme represents the UI color scheme
type Theme string

// DeletePolicy controls what happens to tracking entries when their habit is deleted
type DeletePolicy string

// CellState represents how a tracking grid cell is presented
type CellState string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitrackr"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitrackr"
	DefaultConfigPath  = "~/.config/habitrackr/habitrackr.db"
	ConfigFileName     = "config.yaml"
	EnvPrefix          = "HABITRACKR_"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitrackr-"

	// Export constants
	ExportFilePrefix = "habit-tracker-export-"

	// Record store collection names
	CollectionUsers   = "users"
	CollectionHabits  = "habits"
	CollectionEntries = "tracking"

	// Preference keys
	PreferenceTheme       = "theme"
	PreferenceCurrentUser = "current_user"

	// Habit defaults and limits
	DefaultGoalDays = 30
	MinGoalDays     = 1
	MaxGoalDays     = 365
	DefaultIcon     = "📝"
	DefaultCategory = "Personal"

	// Account limits
	MinPasswordLength = 6

	// Aggregation constants
	StreakLookbackDays = 365
	TopHabitsLimit     = 10
	WeeklyLookbackDays = 28

	// Theme constants
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// Delete policies
	DeletePolicyCascade DeletePolicy = "cascade"
	DeletePolicyOrphan  DeletePolicy = "orphan"

	// Tracking grid cell states
	CellOutOfRange CellState = "out-of-range"
	CellPast       CellState = "past"
	CellToday      CellState = "today"
	CellFuture     CellState = "future"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateHabits
	StateTrack
	StateStats
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)

// Categories lists the habit categories offered by the habit form
var Categories = []string{"Health", "Study", "Finance", "Personal", "Fitness", "Work"}

// Icons lists the habit icons offered by the habit form
var Icons = []string{"🔥", "☕", "📚", "🧘", "🏋️", "💧", "🌅", "📖", "🎯", "💪", "🧠", "❤️", "📝", "🎨", "🎵"}

// MotivationQuotes are shown on the dashboard
var MotivationQuotes = []string{
	"Every day is a fresh start! 🌟",
	"Small steps lead to big changes! 💪",
	"You're doing great! Keep it up! 🔥",
	"Progress, not perfection! ✨",
	"Today is the perfect day to start! 🚀",
}
