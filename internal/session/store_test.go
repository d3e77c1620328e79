package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/pkg/models"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "session.json")
}

func TestRoundTrip(t *testing.T) {
	path := tempPath(t)
	store, err := Open(path)
	require.NoError(t, err)
	require.False(t, store.Authenticated())

	user := &models.User{ID: "1", Name: "Dayane Paz", Email: "dayane_paz@gmail.com", Systems: []string{"finance"}}
	require.NoError(t, store.Save(State{Token: "tok-1", RefreshToken: "ref-1", User: user}))

	reopened, err := Open(path)
	require.NoError(t, err)
	require.True(t, reopened.Authenticated())
	require.Equal(t, "tok-1", reopened.Token())
	require.Equal(t, "ref-1", reopened.RefreshToken())
	require.Equal(t, "Dayane Paz", reopened.User().Name)
}

func TestCorruptFileYieldsEmptySession(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := Open(path)
	require.NoError(t, err)
	require.False(t, store.Authenticated())
	require.Nil(t, store.User())
}

func TestClearRemovesFile(t *testing.T) {
	path := tempPath(t)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(State{Token: "tok"}))
	require.NoError(t, store.Clear())

	require.False(t, store.Authenticated())
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestSetUserKeepsTokens(t *testing.T) {
	store, err := Open(tempPath(t))
	require.NoError(t, err)
	user := &models.User{ID: "1", Systems: []string{"finance"}}
	require.NoError(t, store.Save(State{Token: "tok", User: user}))

	user.CurrentSystem = "finance"
	require.NoError(t, store.SetUser(user))
	require.Equal(t, "tok", store.Token())
	require.Equal(t, "finance", store.User().CurrentSystem)
}

func TestUserReturnsCopy(t *testing.T) {
	store, err := Open(tempPath(t))
	require.NoError(t, err)
	require.NoError(t, store.Save(State{Token: "tok", User: &models.User{ID: "1", Name: "A"}}))

	u := store.User()
	u.Name = "mutated"
	require.Equal(t, "A", store.User().Name)
}
