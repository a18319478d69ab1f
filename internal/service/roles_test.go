package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/sse"
)

func TestRoleOf_DefaultsToUser(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	role, err := env.roles.RoleOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	admin, err := env.roles.IsAdmin(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, admin)

	// Nothing is persisted for a lazily defaulted identity.
	assignments, err := env.store.ListRoles(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestAssignRole_RequiresAdmin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.roles.AssignRole(ctx, "alice", "bob", domain.RoleGuest)
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	role, err := env.roles.RoleOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}

func TestAssignRole_ByAdmin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{"root"}))

	assignment, err := env.roles.AssignRole(ctx, "root", "bob", domain.RoleGuest)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, assignment.Role)

	role, err := env.roles.RoleOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, role)

	evt := env.events.last()
	assert.Equal(t, sse.EventRoleChanged, evt.Type)
	assert.Equal(t, "bob", evt.Identity)

	// Overwrite
	_, err = env.roles.AssignRole(ctx, "root", "bob", domain.RoleAdmin)
	require.NoError(t, err)
	admin, err := env.roles.IsAdmin(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestAssignRole_SelfDemotion(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{"root"}))

	_, err := env.roles.AssignRole(ctx, "root", "root", domain.RoleUser)
	require.NoError(t, err)

	_, err = env.roles.AssignRole(ctx, "root", "bob", domain.RoleAdmin)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestAssignRole_Invalid(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{"root"}))

	_, err := env.roles.AssignRole(ctx, "root", "bob", domain.Role("owner"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.roles.AssignRole(ctx, "root", "  ", domain.RoleGuest)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.roles.AssignRole(ctx, "", "bob", domain.RoleGuest)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAssignRole_IdentityUsedAsGiven(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{"root"}))

	assignment, err := env.roles.AssignRole(ctx, "root", " alice", domain.RoleGuest)
	require.NoError(t, err)
	assert.Equal(t, " alice", assignment.Identity)

	role, err := env.roles.RoleOf(ctx, " alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, role)

	role, err = env.roles.RoleOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}

func TestBootstrap_IdentityUsedAsGiven(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{" root"}))

	admin, err := env.roles.IsAdmin(ctx, "root")
	require.NoError(t, err)
	assert.False(t, admin)

	admin, err = env.roles.IsAdmin(ctx, " root")
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestListAssignments(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	require.NoError(t, env.roles.Bootstrap(ctx, []string{"root", "", "root"}))
	_, err := env.roles.AssignRole(ctx, "root", "bob", domain.RoleGuest)
	require.NoError(t, err)

	assignments, err := env.roles.ListAssignments(ctx, "root")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "bob", assignments[0].Identity)
	assert.Equal(t, "root", assignments[1].Identity)

	_, err = env.roles.ListAssignments(ctx, "bob")
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestGate(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	env.makeGuest(t, "guest")
	gate := env.roles.Gate()

	tests := []struct {
		name     string
		identity string
		action   Action
		wantErr  error
	}{
		{"anonymous read", "", ActionRead, domainerrors.ErrUnauthorized},
		{"user read", "alice", ActionRead, nil},
		{"user write", "alice", ActionWrite, nil},
		{"user admin", "alice", ActionAdmin, domainerrors.ErrPermissionDenied},
		{"guest read", "guest", ActionRead, nil},
		{"guest write", "guest", ActionWrite, domainerrors.ErrPermissionDenied},
		{"admin admin", "root", ActionAdmin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Authorize(ctx, tt.identity, tt.action, "test")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGate_CanceledContext(t *testing.T) {
	env := setupServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.roles.Gate().Authorize(ctx, "alice", ActionRead, "test")
	assert.ErrorIs(t, err, context.Canceled)
}
