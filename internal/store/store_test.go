package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetDelete(t *testing.T) {
	s := open(t)

	val, err := s.Get("missing")
	require.NoError(t, err)
	assert.Empty(t, val, "missing keys read as empty")

	require.NoError(t, s.Set("color", "blue"))
	val, err = s.Get("color")
	require.NoError(t, err)
	assert.Equal(t, "blue", val)

	require.NoError(t, s.Set("color", "red"))
	val, err = s.Get("color")
	require.NoError(t, err)
	assert.Equal(t, "red", val, "set replaces")

	require.NoError(t, s.Delete("color"))
	require.NoError(t, s.Delete("color"), "deleting a missing key is fine")
	val, err = s.Get("color")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestTokenSource(t *testing.T) {
	s := open(t)
	assert.Empty(t, s.Token())

	require.NoError(t, s.Set(KeyToken, "jwt-abc"))
	assert.Equal(t, "jwt-abc", s.Token())

	require.NoError(t, s.Delete(KeyToken))
	assert.Empty(t, s.Token())
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyLastProject, "42"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	val, err := s.Get(KeyLastProject)
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}
