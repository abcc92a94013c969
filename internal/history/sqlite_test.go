package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	entries := []Entry{
		{ID: uuid.New(), Expression: "1+2", Exact: "3", Approx: "3", CreatedAt: base},
		{ID: uuid.New(), Expression: "1/0", Error: "division by zero", CreatedAt: base.Add(time.Second)},
		{ID: uuid.New(), Expression: "2pi", Exact: "pi * 2", Approx: "6.283185307", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, s.Append(e))
	}

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, "2pi", got[0].Expression)
	assert.Equal(t, "1/0", got[1].Expression)
	assert.Equal(t, "1+2", got[2].Expression)

	assert.Equal(t, entries[2].ID, got[0].ID)
	assert.Equal(t, "pi * 2", got[0].Exact)
	assert.Equal(t, "division by zero", got[1].Error)
	assert.Empty(t, got[1].Exact)
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(Entry{
			ID:         uuid.New(),
			Expression: "1",
			Exact:      "1",
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClear(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Append(Entry{ID: uuid.New(), Expression: "1", Exact: "1"}))
	require.NoError(t, s.Clear())

	got, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(Entry{ID: uuid.New(), Expression: "1", Exact: "1"}))
}
