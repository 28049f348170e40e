package accounts

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitrackr/internal/cli/clitest"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
)

func TestRegisterCmd_StartsSession(t *testing.T) {
	env := clitest.Initialized(t, "test.db")

	cmd := &RegisterCmd{Name: "Grace", Email: "Grace@Example.com", Password: "secret1"}
	if err := cmd.Run(env.Context); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !strings.Contains(env.Output(), "Welcome, Grace") {
		t.Error("expected welcome message")
	}

	if err := (&WhoamiCmd{}).Run(env.Context); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Grace <grace@example.com>") {
		t.Errorf("unexpected whoami output: %s", out)
	}

	current, _ := env.Store.GetCurrentUserID()
	if current == "" {
		t.Error("session pointer was not persisted")
	}
}

func TestRegisterCmd_DuplicateEmail(t *testing.T) {
	env, _ := clitest.LoggedIn(t, "test.db")

	cmd := &RegisterCmd{Name: "Imposter", Email: "ADA@example.com", Password: "secret1"}
	err := cmd.Run(env.Context)
	if !apperrors.Is(err, apperrors.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.json")

	if err := (&LogoutCmd{}).Run(env.Context); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := (&WhoamiCmd{}).Run(env.Context); !apperrors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn after logout, got %v", err)
	}
	if err := (&LogoutCmd{}).Run(env.Context); !apperrors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Errorf("logout twice should report ErrNotLoggedIn, got %v", err)
	}

	bad := &LoginCmd{Email: u.Email, Password: "wrong-password"}
	if err := bad.Run(env.Context); !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	env.Output()
	good := &LoginCmd{Email: u.Email, Password: "secret1"}
	if err := good.Run(env.Context); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Logged in as Ada") {
		t.Errorf("unexpected login output: %s", out)
	}
}

func TestProfileCmd(t *testing.T) {
	env, _ := clitest.LoggedIn(t, "test.db")

	if err := (&ProfileCmd{}).Run(env.Context); err != nil {
		t.Fatalf("profile show failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "ada@example.com") {
		t.Errorf("unexpected profile output: %s", out)
	}

	name := "Ada Lovelace"
	if err := (&ProfileCmd{Name: &name}).Run(env.Context); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	u, err := env.Session.User()
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != name || u.Email != "ada@example.com" {
		t.Errorf("session not refreshed: %+v", u)
	}

	empty := ""
	err = (&ProfileCmd{Name: &empty}).Run(env.Context)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestPasswordCmd(t *testing.T) {
	env, u := clitest.LoggedIn(t, "test.db")

	err := (&PasswordCmd{Current: "nope", New: "another1"}).Run(env.Context)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for wrong current password, got %v", err)
	}

	if err := (&PasswordCmd{Current: "secret1", New: "another1"}).Run(env.Context); err != nil {
		t.Fatalf("password change failed: %v", err)
	}
	if _, err := env.Accounts.Login(u.Email, "another1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	env := clitest.Initialized(t, "test.db")

	for name, run := range map[string]func() error{
		"whoami":   func() error { return (&WhoamiCmd{}).Run(env.Context) },
		"profile":  func() error { return (&ProfileCmd{}).Run(env.Context) },
		"password": func() error { return (&PasswordCmd{Current: "a", New: "b"}).Run(env.Context) },
	} {
		if err := run(); !apperrors.Is(err, apperrors.ErrNotLoggedIn) {
			t.Errorf("%s: expected ErrNotLoggedIn, got %v", name, err)
		}
	}
}
