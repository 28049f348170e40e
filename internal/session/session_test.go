package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitrackr/internal/account"
	"github.com/julianstephens/habitrackr/internal/constants"
	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/storage"
)

func newStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, store.Init())
	return store
}

func TestLoad_Fresh(t *testing.T) {
	store := newStore(t)
	s, err := Load(store, account.New(store))
	require.NoError(t, err)

	assert.False(t, s.LoggedIn())
	_, err = s.User()
	assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	assert.Equal(t, constants.ThemeLight, s.Theme())
}

func TestBeginPersistsAcrossLoads(t *testing.T) {
	store := newStore(t)
	accounts := account.New(store)
	ada, err := accounts.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	s, err := Load(store, accounts)
	require.NoError(t, err)
	require.NoError(t, s.Begin(ada))

	again, err := Load(store, accounts)
	require.NoError(t, err)
	u, err := again.User()
	require.NoError(t, err)
	assert.Equal(t, ada.ID, u.ID)

	require.NoError(t, again.End())
	assert.False(t, again.LoggedIn())

	third, err := Load(store, accounts)
	require.NoError(t, err)
	assert.False(t, third.LoggedIn(), "logout clears the persisted pointer")
}

func TestLoad_ClearsDanglingUser(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetCurrentUserID("ghost"))

	s, err := Load(store, account.New(store))
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	id, err := store.GetCurrentUserID()
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestThemeToggle(t *testing.T) {
	store := newStore(t)
	s, err := Load(store, account.New(store))
	require.NoError(t, err)

	next, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeDark, next)
	assert.Equal(t, constants.ThemeDark, s.Theme())

	stored, err := store.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeDark, stored)

	next, err = s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, constants.ThemeLight, next)
}

func TestRefresh(t *testing.T) {
	store := newStore(t)
	accounts := account.New(store)
	ada, err := accounts.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	s, err := Load(store, accounts)
	require.NoError(t, err)
	require.NoError(t, s.Begin(ada))

	renamed, err := accounts.UpdateProfile(ada.ID, "Ada Lovelace", ada.Email)
	require.NoError(t, err)
	s.Refresh(renamed)

	u, err := s.User()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
}
