package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/search"
)

func hitTitles(result *search.SearchResult) []string {
	out := make([]string, 0, len(result.Hits))
	for _, h := range result.Hits {
		out = append(out, h.Title)
	}
	return out
}

func TestSearch_FollowsWrites(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Learn Algebra", Category: "math"})
	require.NoError(t, err)
	_, err = env.resources.AddResource(ctx, "alice", ResourceInput{Title: "Algebra Videos", URL: "https://example.com", Category: "math"})
	require.NoError(t, err)
	_, err = env.goals.AddGoal(ctx, "bob", GoalInput{Title: "Algebra for Bob"})
	require.NoError(t, err)

	result, err := env.search.Search(ctx, "alice", SearchQuery{Query: "algebra"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Learn Algebra", "Algebra Videos"}, hitTitles(result))

	result, err = env.search.Search(ctx, "alice", SearchQuery{Types: []string{"goal"}, Category: "MATHS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Learn Algebra"}, hitTitles(result))

	require.NoError(t, env.goals.DeleteGoal(ctx, "alice", "Learn Algebra"))
	result, err = env.search.Search(ctx, "alice", SearchQuery{Query: "algebra"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra Videos"}, hitTitles(result))
}

func TestSearch_InvalidType(t *testing.T) {
	env := setupServices(t)

	_, err := env.search.Search(context.Background(), "alice", SearchQuery{Types: []string{"book"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestReindex_RebuildsFromStore(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Learn Algebra"})
	require.NoError(t, err)
	_, err = env.resources.AddResource(ctx, "bob", ResourceInput{Title: "Chemistry Notes", URL: "https://example.com"})
	require.NoError(t, err)

	// Drop everything, then rebuild from persisted data.
	require.NoError(t, env.index.Rebuild(nil))
	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, env.search.Reindex(ctx))

	count, err = env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := env.search.Search(ctx, "bob", SearchQuery{Query: "chemistry"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chemistry Notes"}, hitTitles(result))
}
