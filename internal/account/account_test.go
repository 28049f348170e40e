package account

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, store.Init())
	return New(store)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)

	u, err := s.Register(" Ada ", "Ada@Example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)

	got, err := s.Login("ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.Login("  ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = s.Login("nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name                     string
		uname, email, pw, confirm string
		wantMsg                   string
	}{
		{"mismatch", "Ada", "ada@example.com", "secret1", "secret2", "Passwords do not match"},
		{"short password", "Ada", "ada@example.com", "abc", "abc", "Password must be at least 6 characters"},
		{"bad email", "Ada", "ada.example.com", "secret1", "secret1", `invalid email address "ada.example.com"`},
		{"empty name", "  ", "ada@example.com", "secret1", "secret1", "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(tt.uname, tt.email, tt.pw, tt.confirm)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestService(t)

	_, err := s.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	_, err = s.Register("Other Ada", "ADA@example.com", "secret2", "secret2")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestService(t)

	ada, err := s.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, err = s.Register("Grace", "grace@example.com", "secret2", "secret2")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(ada.ID, "Ada Lovelace", "lovelace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "lovelace@example.com", updated.Email)
	assert.Equal(t, "secret1", updated.Password, "profile update keeps the password")

	// Keeping one's own email is fine
	_, err = s.UpdateProfile(ada.ID, "Ada", "lovelace@example.com")
	require.NoError(t, err)

	_, err = s.UpdateProfile(ada.ID, "Ada", "grace@example.com")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	_, err = s.UpdateProfile("missing", "X", "x@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	s := newTestService(t)
	ada, err := s.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name                   string
		current, next, confirm string
		wantMsg                string
	}{
		{"mismatch", "secret1", "newpass1", "newpass2", "New passwords do not match"},
		{"too short", "secret1", "abc", "abc", "Password must be at least 6 characters"},
		{"wrong current", "nope", "newpass1", "newpass1", "Current password is incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ChangePassword(ada.ID, tt.current, tt.next, tt.confirm)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	require.NoError(t, s.ChangePassword(ada.ID, "secret1", "newpass1", "newpass1"))
	_, err = s.Login("ada@example.com", "newpass1")
	assert.NoError(t, err)
	_, err = s.Login("ada@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGet(t *testing.T) {
	s := newTestService(t)
	ada, err := s.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	got, err := s.Get(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
