// Package storetest is a contract suite every store.Store implementation must pass.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) store.Store

var baseTime = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"Ping", testPing},
		{"GoalLifecycle", testGoalLifecycle},
		{"GoalDuplicate", testGoalDuplicate},
		{"GoalMissing", testGoalMissing},
		{"GoalListOrder", testGoalListOrder},
		{"GoalUpdateAborts", testGoalUpdateAborts},
		{"PartitionIsolation", testPartitionIsolation},
		{"PartitionKeyEscaping", testPartitionKeyEscaping},
		{"SessionLifecycle", testSessionLifecycle},
		{"SessionDeleteBySubject", testSessionDeleteBySubject},
		{"ResourceLifecycle", testResourceLifecycle},
		{"ProfileUpsert", testProfileUpsert},
		{"SettingsUpsert", testSettingsUpsert},
		{"Roles", testRoles},
		{"ListIdentities", testListIdentities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func newGoal(title string) *domain.Goal {
	return &domain.Goal{
		Title:     title,
		Category:  "Other",
		Priority:  domain.PriorityMedium,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

func titles(goals []*domain.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.Title
	}
	return out
}

func testPing(t *testing.T, s store.Store) {
	assert.NoError(t, s.Ping(context.Background()))
}

func testGoalLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	g := newGoal("Learn Go")
	g.Description = "Finish the tour"
	g.TargetDate = "2024-12-31"
	require.NoError(t, s.CreateGoal(ctx, "alice", g))

	got, err := s.GetGoal(ctx, "alice", "Learn Go")
	require.NoError(t, err)
	assert.Equal(t, "Finish the tour", got.Description)
	assert.Equal(t, "2024-12-31", got.TargetDate)
	assert.True(t, got.CreatedAt.Equal(baseTime))
	assert.False(t, got.Completed)

	updated, err := s.UpdateGoal(ctx, "alice", "Learn Go", func(g *domain.Goal) error {
		g.Completed = true
		g.Priority = domain.PriorityHigh
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	got, err = s.GetGoal(ctx, "alice", "Learn Go")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, domain.PriorityHigh, got.Priority)

	require.NoError(t, s.DeleteGoal(ctx, "alice", "Learn Go"))
	_, err = s.GetGoal(ctx, "alice", "Learn Go")
	assert.ErrorIs(t, err, store.ErrNotFound)

	goals, err := s.ListGoals(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func testGoalDuplicate(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateGoal(ctx, "alice", newGoal("Learn Go")))

	dup := newGoal("Learn Go")
	dup.Description = "second"
	assert.ErrorIs(t, s.CreateGoal(ctx, "alice", dup), store.ErrAlreadyExists)

	got, err := s.GetGoal(ctx, "alice", "Learn Go")
	require.NoError(t, err)
	assert.Empty(t, got.Description, "failed create must not overwrite")
}

func testGoalMissing(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetGoal(ctx, "alice", "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateGoal(ctx, "alice", "nope", func(*domain.Goal) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteGoal(ctx, "alice", "nope"), store.ErrNotFound)
}

func testGoalListOrder(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, title := range []string{"zeta", "alpha", "Mid", "beta"} {
		require.NoError(t, s.CreateGoal(ctx, "alice", newGoal(title)))
	}

	_, err := s.UpdateGoal(ctx, "alice", "alpha", func(g *domain.Goal) error {
		g.Description = "edited"
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGoal(ctx, "alice", "Mid"))
	require.NoError(t, s.CreateGoal(ctx, "alice", newGoal("Mid")))

	goals, err := s.ListGoals(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "beta", "Mid"}, titles(goals))
}

func testGoalUpdateAborts(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateGoal(ctx, "alice", newGoal("Learn Go")))

	boom := errors.New("rejected")
	_, err := s.UpdateGoal(ctx, "alice", "Learn Go", func(g *domain.Goal) error {
		g.Description = "half-applied"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetGoal(ctx, "alice", "Learn Go")
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func testPartitionIsolation(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateGoal(ctx, "alice", newGoal("Learn Go")))
	require.NoError(t, s.CreateGoal(ctx, "bob", newGoal("Learn Go")), "same title in another partition")

	require.NoError(t, s.DeleteGoal(ctx, "bob", "Learn Go"))

	_, err := s.GetGoal(ctx, "alice", "Learn Go")
	assert.NoError(t, err)

	goals, err := s.ListGoals(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func testPartitionKeyEscaping(t *testing.T, s store.Store) {
	ctx := context.Background()

	// "a" + "b:c" and "a:b" + "c" must not collide.
	require.NoError(t, s.CreateGoal(ctx, "a", newGoal("b:c")))
	require.NoError(t, s.CreateGoal(ctx, "a:b", newGoal("c")))

	goals, err := s.ListGoals(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b:c"}, titles(goals))

	goals, err = s.ListGoals(ctx, "a:b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, titles(goals))
}

func newSession(id, subject, date string, minutes int) *domain.StudySession {
	return &domain.StudySession{
		ID:              id,
		Subject:         subject,
		Date:            date,
		DurationMinutes: minutes,
		CreatedAt:       baseTime,
	}
}

func testSessionLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	notes := ""
	first := newSession("ses-1", "Go", "2024-06-09", 30)
	first.Notes = &notes
	require.NoError(t, s.CreateStudySession(ctx, "alice", first))
	require.NoError(t, s.CreateStudySession(ctx, "alice", newSession("ses-2", "Go", "2024-06-10", 45)))

	sessions, err := s.ListStudySessions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "ses-1", sessions[0].ID)
	require.NotNil(t, sessions[0].Notes, "empty notes must stay distinct from absent notes")
	assert.Empty(t, *sessions[0].Notes)
	assert.Nil(t, sessions[1].Notes)
	assert.Equal(t, 45, sessions[1].DurationMinutes)

	require.NoError(t, s.DeleteStudySession(ctx, "alice", "ses-1"))
	assert.ErrorIs(t, s.DeleteStudySession(ctx, "alice", "ses-1"), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteStudySession(ctx, "bob", "ses-2"), store.ErrNotFound)

	sessions, err = s.ListStudySessions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ses-2", sessions[0].ID)
}

func testSessionDeleteBySubject(t *testing.T, s store.Store) {
	ctx := context.Background()

	for i, subject := range []string{"Go", "Math", "Go", "Go"} {
		require.NoError(t, s.CreateStudySession(ctx, "alice",
			newSession(fmt.Sprintf("ses-%d", i), subject, "2024-06-10", 10)))
	}
	require.NoError(t, s.CreateStudySession(ctx, "bob", newSession("ses-b", "Go", "2024-06-10", 10)))

	n, err := s.DeleteStudySessionsBySubject(ctx, "alice", "Go")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.DeleteStudySessionsBySubject(ctx, "alice", "Go")
	require.NoError(t, err)
	assert.Zero(t, n)

	sessions, err := s.ListStudySessions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Math", sessions[0].Subject)

	sessions, err = s.ListStudySessions(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func testResourceLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	r := &domain.Resource{
		Title:     "Go Tour",
		URL:       "https://go.dev/tour",
		Category:  "Career",
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	require.NoError(t, s.CreateResource(ctx, "alice", r))
	assert.ErrorIs(t, s.CreateResource(ctx, "alice", r), store.ErrAlreadyExists)

	notes := "bookmark"
	_, err := s.UpdateResource(ctx, "alice", "Go Tour", func(r *domain.Resource) error {
		r.URL = "https://go.dev/tour/welcome"
		r.Notes = &notes
		return nil
	})
	require.NoError(t, err)

	got, err := s.GetResource(ctx, "alice", "Go Tour")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/tour/welcome", got.URL)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "bookmark", *got.Notes)

	list, err := s.ListResources(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteResource(ctx, "alice", "Go Tour"))
	assert.ErrorIs(t, s.DeleteResource(ctx, "alice", "Go Tour"), store.ErrNotFound)
	_, err = s.UpdateResource(ctx, "alice", "Go Tour", func(*domain.Resource) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testProfileUpsert(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveProfile(ctx, &domain.Profile{Identity: "alice", Name: "Alice", UpdatedAt: baseTime}))
	require.NoError(t, s.SaveProfile(ctx, &domain.Profile{Identity: "alice", Name: "Alice L.", UpdatedAt: baseTime}))

	p, err := s.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", p.Name)
	assert.Equal(t, "alice", p.Identity)

	_, err = s.GetProfile(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testSettingsUpsert(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetSettings(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	us := domain.NewUserSettings("alice")
	us.FontSize = domain.FontSizeXL
	us.HighContrast = true
	us.UpdatedAt = baseTime
	require.NoError(t, s.SaveSettings(ctx, us))

	got, err := s.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.FontSizeXL, got.FontSize)
	assert.True(t, got.HighContrast)
	assert.False(t, got.ReducedMotion)
}

func testRoles(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetRole(ctx, "carol")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetRole(ctx, &domain.RoleAssignment{Identity: "carol", Role: domain.RoleGuest, UpdatedAt: baseTime}))
	require.NoError(t, s.SetRole(ctx, &domain.RoleAssignment{Identity: "alice", Role: domain.RoleAdmin, UpdatedAt: baseTime}))
	require.NoError(t, s.SetRole(ctx, &domain.RoleAssignment{Identity: "carol", Role: domain.RoleUser, UpdatedAt: baseTime}))

	a, err := s.GetRole(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, a.Role)

	roles, err := s.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "alice", roles[0].Identity)
	assert.Equal(t, "carol", roles[1].Identity)
}

func testListIdentities(t *testing.T, s store.Store) {
	ctx := context.Background()

	ids, err := s.ListIdentities(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.CreateGoal(ctx, "bob", newGoal("One")))
	require.NoError(t, s.CreateGoal(ctx, "bob", newGoal("Two")))
	require.NoError(t, s.CreateResource(ctx, "a:lice", &domain.Resource{Title: "Docs", URL: "https://go.dev", Category: "Other"}))
	require.NoError(t, s.SaveProfile(ctx, &domain.Profile{Identity: "dave", Name: "Dave"}))

	ids, err = s.ListIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:lice", "bob"}, ids)
}
