package sqlite

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// GetSettings returns the identity's saved settings, or store.ErrNotFound.
func (s *Store) GetSettings(ctx context.Context, identity string) (*domain.UserSettings, error) {
	var (
		us            domain.UserSettings
		fontSize      string
		highContrast  int
		reducedMotion int
		updatedAt     string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT identity, font_size, high_contrast, reduced_motion, updated_at
		FROM user_settings WHERE identity = ?`, identity,
	).Scan(&us.Identity, &fontSize, &highContrast, &reducedMotion, &updatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	us.FontSize = domain.FontSize(fontSize)
	us.HighContrast = highContrast != 0
	us.ReducedMotion = reducedMotion != 0
	if us.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &us, nil
}

// SaveSettings creates or replaces the settings.
func (s *Store) SaveSettings(ctx context.Context, us *domain.UserSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (identity, font_size, high_contrast, reduced_motion, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			font_size = excluded.font_size,
			high_contrast = excluded.high_contrast,
			reduced_motion = excluded.reduced_motion,
			updated_at = excluded.updated_at`,
		us.Identity, string(us.FontSize), boolToInt(us.HighContrast), boolToInt(us.ReducedMotion), formatTime(us.UpdatedAt),
	)
	return err
}
