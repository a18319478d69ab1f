package service

import (
	"context"
	"fmt"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

// Action classifies an operation for the access gate.
type Action int

const (
	// ActionRead needs only an authenticated identity.
	ActionRead Action = iota
	// ActionWrite mutates the caller's own partition. Guests are refused.
	ActionWrite
	// ActionAdmin is reserved for admins.
	ActionAdmin
)

// RoleResolver resolves an identity's effective role.
type RoleResolver interface {
	RoleOf(ctx context.Context, identity string) (domain.Role, error)
}

// Gate checks a caller's role before an operation runs.
type Gate struct {
	roles RoleResolver
}

// NewGate creates a gate backed by roles.
func NewGate(roles RoleResolver) *Gate {
	return &Gate{roles: roles}
}

// Authorize returns the caller's role if it may perform action, and a
// domain error otherwise. op names the operation for error reporting.
func (g *Gate) Authorize(ctx context.Context, identity string, action Action, op string) (domain.Role, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if identity == "" {
		return "", domainerrors.Unauthorized("caller identity required").WithOp(op)
	}

	role, err := g.roles.RoleOf(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("%s: resolve role: %w", op, err)
	}

	switch action {
	case ActionWrite:
		if !role.CanMutate() {
			return role, domainerrors.PermissionDenied(op, "guests cannot modify data")
		}
	case ActionAdmin:
		if !role.IsAdmin() {
			return role, domainerrors.PermissionDenied(op, "admin role required")
		}
	}

	return role, nil
}
