package domain

import (
	"time"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

// Role is the permission level of a caller identity.
type Role string

const (
	// RoleAdmin may reassign any identity's role.
	RoleAdmin Role = "admin"
	// RoleUser may read and write its own partition. Default for unseen identities.
	RoleUser Role = "user"
	// RoleGuest may only read.
	RoleGuest Role = "guest"
)

// DefaultRole is the role of an identity that has never been assigned one.
const DefaultRole = RoleUser

// ParseRole converts a string into a Role, rejecting anything outside the enum.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", domainerrors.Validationf("invalid role %q (must be admin, user, or guest)", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	default:
		return false
	}
}

// CanMutate reports whether the role may write to its own partition.
func (r Role) CanMutate() bool {
	return r == RoleAdmin || r == RoleUser
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// RoleAssignment is an explicitly stored role.
type RoleAssignment struct {
	Identity  string    `json:"identity"`
	Role      Role      `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}
