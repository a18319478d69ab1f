package badgerdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/store/storetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory(nil)
	require.NoError(t, err)
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return setupTestStore(t)
	})
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")

	s, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.CreateGoal(ctx, "alice", &domain.Goal{Title: "first"}))
	require.NoError(t, s.CreateGoal(ctx, "alice", &domain.Goal{Title: "second"}))
	require.NoError(t, s.Close())

	s, err = New(path, nil)
	require.NoError(t, err)
	defer s.Close()

	// New records after reopen must still sort after the old ones.
	require.NoError(t, s.CreateGoal(ctx, "alice", &domain.Goal{Title: "third"}))

	goals, err := s.ListGoals(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "first", goals[0].Title)
	assert.Equal(t, "third", goals[2].Title)
}

func TestIdentityFromKey(t *testing.T) {
	identity, ok := identityFromKey(prefixGoal, recordKey(prefixGoal, "a:b c", "title"))
	require.True(t, ok)
	assert.Equal(t, "a:b c", identity)

	identity, ok = identityFromKey(prefixRole, singletonKey(prefixRole, "x%y"))
	require.True(t, ok)
	assert.Equal(t, "x%y", identity)

	_, ok = identityFromKey(prefixRole, []byte("goal:abc"))
	assert.False(t, ok)
}

func TestUpdate_RejectsKeyChange(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	defer s.Close()

	require.NoError(t, s.CreateGoal(ctx, "alice", &domain.Goal{Title: "Learn Go"}))

	_, err := s.UpdateGoal(ctx, "alice", "Learn Go", func(g *domain.Goal) error {
		g.Title = "Learn Rust"
		return nil
	})
	require.Error(t, err)

	_, err = s.GetGoal(ctx, "alice", "Learn Go")
	assert.NoError(t, err)
}
