package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
)

// RoleService is the identity and role registry. Identities never assigned a
// role are users; nothing is written for them until an admin acts.
type RoleService struct {
	store  store.Store
	locks  *PartitionLocks
	events store.EventEmitter
	gate   *Gate
	logger *slog.Logger
	now    func() time.Time
}

// NewRoleService creates a role registry.
func NewRoleService(st store.Store, locks *PartitionLocks, events store.EventEmitter, logger *slog.Logger) *RoleService {
	s := &RoleService{
		store:  st,
		locks:  locks,
		events: events,
		logger: logger,
		now:    time.Now,
	}
	s.gate = NewGate(s)
	return s
}

// Gate returns the access gate that resolves roles through this registry.
func (s *RoleService) Gate() *Gate {
	return s.gate
}

// RoleOf returns identity's role, or domain.DefaultRole if none was assigned.
func (s *RoleService) RoleOf(ctx context.Context, identity string) (domain.Role, error) {
	assignment, err := s.store.GetRole(ctx, identity)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DefaultRole, nil
	}
	if err != nil {
		return "", fmt.Errorf("get role: %w", err)
	}
	return assignment.Role, nil
}

// IsAdmin reports whether identity holds the admin role.
func (s *RoleService) IsAdmin(ctx context.Context, identity string) (bool, error) {
	role, err := s.RoleOf(ctx, identity)
	if err != nil {
		return false, err
	}
	return role.IsAdmin(), nil
}

// CallerRole returns the authenticated caller's role.
func (s *RoleService) CallerRole(ctx context.Context, caller string) (domain.Role, error) {
	return s.gate.Authorize(ctx, caller, ActionRead, "getCallerUserRole")
}

// AssignRole sets target's role. Only admins may call it; an admin may demote itself.
//
// The caller's role is read without a lock and only the target's partition is
// locked for the write.
func (s *RoleService) AssignRole(ctx context.Context, caller, target string, role domain.Role) (*domain.RoleAssignment, error) {
	const op = "assignRole"

	if _, err := s.gate.Authorize(ctx, caller, ActionAdmin, op); err != nil {
		return nil, err
	}

	// Identities are opaque; " alice" and "alice" are different callers.
	if target == "" {
		return nil, domainerrors.Validation("target identity required").WithOp(op)
	}
	if !role.Valid() {
		return nil, domainerrors.Validationf("invalid role %q (must be admin, user, or guest)", role).WithOp(op)
	}

	unlock := s.locks.Lock(target)
	defer unlock()

	assignment := &domain.RoleAssignment{
		Identity:  target,
		Role:      role,
		UpdatedAt: s.now(),
	}
	if err := s.store.SetRole(ctx, assignment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.events.Emit(sse.NewRoleChangedEvent(target, role, caller))

	s.logger.Info("role assigned",
		"caller", caller,
		"identity", target,
		"role", role,
	)

	return assignment, nil
}

// ListAssignments returns every explicit role assignment, ordered by identity.
// Admin only.
func (s *RoleService) ListAssignments(ctx context.Context, caller string) ([]*domain.RoleAssignment, error) {
	if _, err := s.gate.Authorize(ctx, caller, ActionAdmin, "listRoles"); err != nil {
		return nil, err
	}

	assignments, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if assignments == nil {
		assignments = []*domain.RoleAssignment{}
	}
	return assignments, nil
}

// Bootstrap makes each identity an admin without an admin check. An empty
// registry has no admin to grant the first one, so this runs once at startup
// from configuration. Identities that are already admins are left untouched.
func (s *RoleService) Bootstrap(ctx context.Context, identities []string) error {
	for _, identity := range identities {
		if identity == "" {
			continue
		}

		admin, err := s.IsAdmin(ctx, identity)
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", identity, err)
		}
		if admin {
			continue
		}

		unlock := s.locks.Lock(identity)
		err = s.store.SetRole(ctx, &domain.RoleAssignment{
			Identity:  identity,
			Role:      domain.RoleAdmin,
			UpdatedAt: s.now(),
		})
		unlock()
		if err != nil {
			return fmt.Errorf("bootstrap %s: %w", identity, err)
		}

		s.logger.Info("bootstrap admin assigned", "identity", identity)
	}
	return nil
}
