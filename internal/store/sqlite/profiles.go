package sqlite

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// GetProfile returns the identity's profile, or store.ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, identity string) (*domain.Profile, error) {
	var (
		p         domain.Profile
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT identity, name, updated_at FROM profiles WHERE identity = ?`, identity,
	).Scan(&p.Identity, &p.Name, &updatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile creates or replaces the profile.
func (s *Store) SaveProfile(ctx context.Context, p *domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (identity, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		p.Identity, p.Name, formatTime(p.UpdatedAt),
	)
	return err
}
