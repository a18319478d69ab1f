package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/sse"
)

func TestAddGoal(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	goal, err := env.goals.AddGoal(ctx, "alice", GoalInput{
		Title:      "  Learn   Algebra ",
		Category:   "maths",
		TargetDate: "2024-12-31",
		Completed:  ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Learn Algebra", goal.Title)
	assert.Equal(t, "Math", goal.Category)
	assert.Equal(t, domain.PriorityMedium, goal.Priority)
	assert.False(t, goal.Completed, "goals always start incomplete")
	assert.Equal(t, testNow, goal.CreatedAt)
	assert.Equal(t, []sse.EventType{sse.EventGoalCreated}, env.events.types())
}

func TestAddGoal_DuplicateTitle(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Café"})
	require.NoError(t, err)

	// Decomposed e + combining acute normalizes to the same key.
	_, err = env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Cafe\u0301 "})
	require.ErrorIs(t, err, domainerrors.ErrDuplicateKey)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "addGoal", domainErr.Op)
	assert.Equal(t, "Café", domainErr.Key)

	// Another identity may reuse the title.
	_, err = env.goals.AddGoal(ctx, "bob", GoalInput{Title: "Café"})
	require.NoError(t, err)
}

func TestAddGoal_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   GoalInput
	}{
		{"blank title", GoalInput{Title: "   "}},
		{"bad priority", GoalInput{Title: "x", Priority: "urgent"}},
		{"bad date", GoalInput{Title: "x", TargetDate: "2024-02-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.goals.AddGoal(ctx, "alice", tt.in)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}

	goals, err := env.goals.GetGoals(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestUpdateGoal_FullReplace(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{
		Title:       "Algebra",
		Description: "chapter 1",
		Priority:    domain.PriorityHigh,
	})
	require.NoError(t, err)

	goal, err := env.goals.UpdateGoal(ctx, "alice", "Algebra", GoalInput{Description: "chapter 2"})
	require.NoError(t, err)
	assert.Equal(t, "Algebra", goal.Title)
	assert.Equal(t, "chapter 2", goal.Description)
	assert.Equal(t, domain.PriorityMedium, goal.Priority, "omitted priority resets to the default")
	assert.False(t, goal.Completed)

	goal, err = env.goals.UpdateGoal(ctx, "alice", "Algebra", GoalInput{Title: "Algebra", Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, goal.Completed)
	assert.Equal(t, sse.EventGoalCompleted, env.events.last().Type)

	// Nil Completed keeps the stored value.
	goal, err = env.goals.UpdateGoal(ctx, "alice", "Algebra", GoalInput{Description: "done"})
	require.NoError(t, err)
	assert.True(t, goal.Completed)
	assert.Equal(t, sse.EventGoalUpdated, env.events.last().Type)
}

func TestUpdateGoal_RenameRejected(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Algebra", Description: "original"})
	require.NoError(t, err)

	_, err = env.goals.UpdateGoal(ctx, "alice", "Algebra", GoalInput{Title: "Geometry", Description: "changed"})
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	goals, err := env.goals.GetGoals(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Algebra", goals[0].Title)
	assert.Equal(t, "original", goals[0].Description)
}

func TestUpdateGoal_NotFound(t *testing.T) {
	env := setupServices(t)

	_, err := env.goals.UpdateGoal(context.Background(), "alice", "Missing", GoalInput{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestMarkGoalComplete_Idempotent(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Algebra"})
	require.NoError(t, err)

	goal, err := env.goals.MarkGoalComplete(ctx, "alice", "Algebra")
	require.NoError(t, err)
	assert.True(t, goal.Completed)

	goal, err = env.goals.MarkGoalComplete(ctx, "alice", " Algebra")
	require.NoError(t, err)
	assert.True(t, goal.Completed)

	assert.Equal(t, []sse.EventType{sse.EventGoalCreated, sse.EventGoalCompleted}, env.events.types())

	_, err = env.goals.MarkGoalComplete(ctx, "alice", "Missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteGoal(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Algebra"})
	require.NoError(t, err)

	require.NoError(t, env.goals.DeleteGoal(ctx, "alice", "Algebra"))
	assert.ErrorIs(t, env.goals.DeleteGoal(ctx, "alice", "Algebra"), domainerrors.ErrNotFound)

	goals, err := env.goals.GetGoals(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}

func TestGetGoals_InsertionOrder(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	for _, title := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: title})
		require.NoError(t, err)
	}
	_, err := env.goals.UpdateGoal(ctx, "alice", "Zeta", GoalInput{Description: "edited"})
	require.NoError(t, err)

	goals, err := env.goals.GetGoals(ctx, "alice")
	require.NoError(t, err)
	var titles []string
	for _, g := range goals {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, titles)
}

func TestGoals_GuestCanReadNotWrite(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.goals.AddGoal(ctx, "guest", GoalInput{Title: "Before demotion"})
	require.NoError(t, err)
	env.makeGuest(t, "guest")

	_, err = env.goals.AddGoal(ctx, "guest", GoalInput{Title: "Algebra"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	_, err = env.goals.MarkGoalComplete(ctx, "guest", "Before demotion")
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	assert.ErrorIs(t, env.goals.DeleteGoal(ctx, "guest", "Before demotion"), domainerrors.ErrPermissionDenied)

	goals, err := env.goals.GetGoals(ctx, "guest")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.False(t, goals[0].Completed)
}

func TestGoals_Unauthenticated(t *testing.T) {
	env := setupServices(t)

	_, err := env.goals.GetGoals(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAddGoal_ConcurrentSameTitle(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: "Algebra"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case domainerrors.Is(err, domainerrors.ErrDuplicateKey):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 9, dupes)
}
