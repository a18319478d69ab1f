package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

func TestGetProgressStats(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	for _, title := range []string{"Algebra", "Biology"} {
		_, err := env.goals.AddGoal(ctx, "alice", GoalInput{Title: title})
		require.NoError(t, err)
	}
	_, err := env.goals.MarkGoalComplete(ctx, "alice", "Algebra")
	require.NoError(t, err)

	for _, s := range []StudySessionInput{
		{Subject: "Algebra", Date: "2024-06-10", DurationMinutes: 30},
		{Subject: "Biology", Date: "2024-06-10", DurationMinutes: 15},
		{Subject: "Algebra", Date: "2024-06-09", DurationMinutes: 60},
		{Subject: "Algebra", Date: "2024-06-07", DurationMinutes: 10},
	} {
		_, err := env.sessions.AddStudySession(ctx, "alice", s)
		require.NoError(t, err)
	}

	stats, err := env.stats.GetProgressStats(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 115, stats.TotalStudyMinutes)
	assert.Equal(t, 2, stats.TotalGoals)
	assert.Equal(t, 1, stats.CompletedGoals)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 3, stats.DistinctStudyDays)
	assert.Equal(t, "2024-06-10", stats.AsOf)

	// Partition isolation
	bob, err := env.stats.GetProgressStats(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, bob.TotalStudyMinutes)
	assert.Zero(t, bob.CurrentStreak)
}

func TestGetProgressStats_UsesConfiguredTimezone(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	env.stats.location = tokyo
	// 2024-06-10 20:00 UTC is already 2024-06-11 in Tokyo.
	env.stats.now = func() time.Time { return time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC) }

	_, err = env.sessions.AddStudySession(ctx, "alice", StudySessionInput{Subject: "Kanji", Date: "2024-06-11", DurationMinutes: 20})
	require.NoError(t, err)

	stats, err := env.stats.GetProgressStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", stats.AsOf)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestGetProgressStats_RequiresIdentity(t *testing.T) {
	env := setupServices(t)

	_, err := env.stats.GetProgressStats(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestGetProgressStats_FutureSessionEndsCurrentStreak(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-12", "2024-06-10", "2024-06-09"} {
		_, err := env.sessions.AddStudySession(ctx, "alice", StudySessionInput{Subject: "Go", Date: date, DurationMinutes: 20})
		require.NoError(t, err)
	}

	stats, err := env.stats.GetProgressStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 3, stats.DistinctStudyDays)
	assert.Equal(t, 60, stats.TotalStudyMinutes)
}
