package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/cli/accounts"
	"github.com/julianstephens/habitrackr/internal/cli/backups"
	"github.com/julianstephens/habitrackr/internal/cli/habits"
	"github.com/julianstephens/habitrackr/internal/cli/settings"
	"github.com/julianstephens/habitrackr/internal/cli/system"
	"github.com/julianstephens/habitrackr/internal/cli/tracking"
	"github.com/julianstephens/habitrackr/internal/cli/transfer"
	"github.com/julianstephens/habitrackr/internal/config"
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/keyring"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path to the YAML config file." type:"path" placeholder:"FILE"`
	Store    string `help:"Store location: a .db (SQLite) or .json file, a PostgreSQL connection string, or 'keyring'. Overrides the config file. For PostgreSQL, credentials must NOT be embedded in the connection string." placeholder:"LOCATION"`
	Timezone string `help:"IANA timezone used to decide what 'today' is. Overrides the config file."`
	Debug    bool   `help:"Write debug logs to stderr as well as the log file."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitrackr storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Register accounts.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Login    accounts.LoginCmd    `cmd:"" help:"Log in to an existing account."`
	Logout   accounts.LogoutCmd   `cmd:"" help:"Log out."`
	Whoami   accounts.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`
	Profile  accounts.ProfileCmd  `cmd:"" help:"Show or update your profile."`
	Password accounts.PasswordCmd `cmd:"" help:"Change your password."`

	Habit habits.HabitCmd   `cmd:"" help:"Manage habits."`
	Today tracking.TodayCmd `cmd:"" help:"Show today's dashboard."`
	Mark  tracking.MarkCmd  `cmd:"" help:"Toggle a habit for a day, or set several days at once."`
	Track tracking.TrackCmd `cmd:"" help:"Show the tracking grid."`
	Stats tracking.StatsCmd `cmd:"" help:"Show weekly, ranking and monthly statistics."`

	Theme      settings.ThemeCmd `cmd:"" help:"Show or change the color theme."`
	ConfigInfo struct {
		Show settings.ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
		Save settings.ConfigSaveCmd `cmd:"" help:"Write the effective configuration to the config file."`
	} `cmd:"" name:"config" help:"Inspect the configuration."`

	Export transfer.ExportCmd `cmd:"" help:"Export your habits and tracking data."`
	Import transfer.ImportCmd `cmd:"" help:"Import a JSON snapshot into your account."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

// skipsLoad lists the commands that handle the store on their own
var skipsLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
	"config":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits against fixed-length goals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = config.ExpandHome(CLI.Store)
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: config.ExpandHome(constants.DefaultConfigDir),
		Level:     cfg.LogLevel,
	}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	location, fromKeyring, err := keyring.Resolve(cfg.Store)
	if err != nil {
		apperrors.Fatal(err)
	}
	store, err := cli.OpenStore(location, fromKeyring)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}
	appCtx := cli.NewContext(store, cfg, utils.SystemClock(loc))
	appCtx.ConfigPath = CLI.Config

	command := ""
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		command = fields[0]
	}
	if !skipsLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if err := appCtx.LoadSession(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
