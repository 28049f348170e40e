// Package clitest builds command contexts over temporary stores for tests.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitrackr/internal/cli"
	"github.com/julianstephens/habitrackr/internal/config"
	"github.com/julianstephens/habitrackr/internal/models"
	"github.com/julianstephens/habitrackr/internal/utils"
)

// Now is the fixed instant every test context runs at
var Now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

// Env is a command context plus the pieces tests inspect
type Env struct {
	*cli.Context
	Path string
	Buf  *bytes.Buffer
}

// Output returns everything printed so far and resets the buffer
func (e *Env) Output() string {
	s := e.Buf.String()
	e.Buf.Reset()
	return s
}

// Input replaces what Confirm reads
func (e *Env) Input(s string) {
	e.In = strings.NewReader(s)
}

// New returns a context over an uninitialized store named file in a temp dir
func New(t *testing.T, file string) *Env {
	t.Helper()
	path := filepath.Join(t.TempDir(), file)
	store, err := cli.OpenStore(path, false)
	if err != nil {
		t.Fatalf("OpenStore(%s) failed: %v", path, err)
	}

	cfg := config.Defaults()
	cfg.Store = path
	cfg.Timezone = "UTC"
	ctx := cli.NewContext(store, cfg, utils.FixedClock(Now))
	buf := &bytes.Buffer{}
	ctx.Out = buf
	ctx.In = strings.NewReader("")

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &Env{Context: ctx, Path: path, Buf: buf}
}

// Initialized is New followed by Init and LoadSession
func Initialized(t *testing.T, file string) *Env {
	t.Helper()
	env := New(t, file)
	if err := env.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := env.LoadSession(); err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return env
}

// LoggedIn is Initialized with a registered user holding the session
func LoggedIn(t *testing.T, file string) (*Env, models.User) {
	t.Helper()
	env := Initialized(t, file)
	u, err := env.Accounts.Register("Ada", "ada@example.com", "secret1", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := env.Session.Begin(u); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	return env, u
}

// AddHabit saves a habit for userID starting on start
func AddHabit(t *testing.T, env *Env, userID, name, start string, goal int) models.Habit {
	t.Helper()
	h, err := env.Registry.SaveHabit(models.Habit{UserID: userID, Name: name, StartDate: start, GoalDays: goal})
	if err != nil {
		t.Fatalf("SaveHabit(%s) failed: %v", name, err)
	}
	return h
}
