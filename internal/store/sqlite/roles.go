package sqlite

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

func scanRole(scanner interface{ Scan(dest ...any) error }) (*domain.RoleAssignment, error) {
	var (
		a         domain.RoleAssignment
		role      string
		updatedAt string
	)
	if err := scanner.Scan(&a.Identity, &role, &updatedAt); err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)

	var err error
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetRole returns the explicit role assignment, or store.ErrNotFound.
func (s *Store) GetRole(ctx context.Context, identity string) (*domain.RoleAssignment, error) {
	a, err := scanRole(s.db.QueryRowContext(ctx,
		`SELECT identity, role, updated_at FROM role_assignments WHERE identity = ?`, identity))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// SetRole creates or replaces a role assignment.
func (s *Store) SetRole(ctx context.Context, a *domain.RoleAssignment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_assignments (identity, role, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET role = excluded.role, updated_at = excluded.updated_at`,
		a.Identity, string(a.Role), formatTime(a.UpdatedAt),
	)
	return err
}

// ListRoles returns every explicit assignment ordered by identity.
func (s *Store) ListRoles(ctx context.Context) ([]*domain.RoleAssignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identity, role, updated_at FROM role_assignments ORDER BY identity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.RoleAssignment
	for rows.Next() {
		a, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
