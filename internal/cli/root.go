package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitrackr/internal/account"
	"github.com/julianstephens/habitrackr/internal/backup"
	"github.com/julianstephens/habitrackr/internal/config"
	"github.com/julianstephens/habitrackr/internal/ledger"
	"github.com/julianstephens/habitrackr/internal/logger"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/registry"
	"github.com/julianstephens/habitrackr/internal/session"
	"github.com/julianstephens/habitrackr/internal/storage"
	"github.com/julianstephens/habitrackr/internal/tracker"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// Context carries the services every command runs against
type Context struct {
	Store    storage.Provider
	Registry *registry.Registry
	Ledger   *ledger.Ledger
	Accounts *account.Service
	// Session is nil until LoadSession runs
	Session *session.Session
	Clock   utils.Clock
	Config  config.Config
	// ConfigPath is the YAML file given with --config, empty for the default
	ConfigPath string

	Out io.Writer
	In  io.Reader
}

// NewContext wires the services over store
func NewContext(store storage.Provider, cfg config.Config, clock utils.Clock) *Context {
	l := ledger.New(store, clock)
	return &Context{
		Store:    store,
		Registry: registry.New(store, clock, l),
		Ledger:   l,
		Accounts: account.New(store),
		Clock:    clock,
		Config:   cfg,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

// LoadSession reads the current user and theme. The store must be loaded.
func (c *Context) LoadSession() error {
	s, err := session.Load(c.Store, c.Accounts)
	if err != nil {
		return err
	}
	c.Session = s
	return nil
}

// RequireUser returns the logged-in user or ErrNotLoggedIn
func (c *Context) RequireUser() (models.User, error) {
	if c.Session == nil {
		if err := c.LoadSession(); err != nil {
			return models.User{}, err
		}
	}
	return c.Session.User()
}

// Today returns midnight of the current day in the configured timezone
func (c *Context) Today() time.Time {
	return utils.StartOfDay(c.Clock())
}

// Tracking loads a user's habits and an index over their entries
func (c *Context) Tracking(userID string) ([]models.Habit, tracker.Index, error) {
	habits, err := c.Registry.ListHabits(userID)
	if err != nil {
		return nil, tracker.Index{}, err
	}
	entries, err := c.Ledger.GetEntries(userID, "")
	if err != nil {
		return nil, tracker.Index{}, err
	}
	return habits, tracker.NewIndex(entries), nil
}

// BackupManager returns the backup manager for file-backed stores
func (c *Context) BackupManager() (*backup.Manager, error) {
	path := c.Store.GetConfigPath()
	if !IsFileStore(path) {
		return nil, errors.New("backups are only available for SQLite and JSON stores")
	}
	return backup.NewManager(path), nil
}

// PerformAutomaticBackup creates a backup when enabled and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Printf writes formatted output for the user
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line of output for the user
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In. Anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
