package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fitlearned.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreGetAbsentKey(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	value, ok, err := s.Get("fitlearned_cms_projects")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestStoreSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Set("fitlearned_cms_projects", `[{"id":"1"}]`))

	value, ok, err := s.Get("fitlearned_cms_projects")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, value)

	require.NoError(t, s.Set("fitlearned_cms_projects", `[]`))
	value, ok, err = s.Get("fitlearned_cms_projects")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, value)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	require.NoError(t, s.Set("fitlearned_session", `{"token":"x"}`))
	require.NoError(t, s.Delete("fitlearned_session"))

	_, ok, err := s.Get("fitlearned_session")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreRevisionBumpsOnEveryWrite(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	start, err := s.Revision()
	require.NoError(t, err)

	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("a", "2"))
	require.NoError(t, s.Delete("a"))

	end, err := s.Revision()
	require.NoError(t, err)
	require.Equal(t, start+3, end)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fitlearned.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("fitlearned_files", `[{"id":"f1"}]`))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	value, ok, err := reopened.Get("fitlearned_files")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"f1"}]`, value)
}

func TestMemoryMatchesStoreContract(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	value, ok, err := m.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	rev, err := m.Revision()
	require.NoError(t, err)
	require.Equal(t, uint64(1), rev)

	require.NoError(t, m.Delete("k"))
	_, ok, _ = m.Get("k")
	require.False(t, ok)
}
