package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// SettingsInput replaces a caller's accessibility settings. An empty font
// size means the default.
type SettingsInput struct {
	FontSize      domain.FontSize `json:"font_size" validate:"omitempty,oneof=normal large xl"`
	HighContrast  bool            `json:"high_contrast"`
	ReducedMotion bool            `json:"reduced_motion"`
}

// SettingsService manages per-identity accessibility settings.
type SettingsService struct {
	store     store.Store
	gate      *Gate
	locks     *PartitionLocks
	events    store.EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	st store.Store,
	gate *Gate,
	locks *PartitionLocks,
	events store.EventEmitter,
	v *validation.Validator,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		store:     st,
		gate:      gate,
		locks:     locks,
		events:    events,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// GetSettings returns the caller's settings, or the defaults if none were saved.
func (s *SettingsService) GetSettings(ctx context.Context, identity string) (*domain.UserSettings, error) {
	const op = "getSettings"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return nil, err
	}

	settings, err := s.store.GetSettings(ctx, identity)
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewUserSettings(identity), nil
	}
	if err != nil {
		return nil, storeError(err, op, identity)
	}
	return settings, nil
}

// SaveSettings replaces the caller's settings.
func (s *SettingsService) SaveSettings(ctx context.Context, identity string, in SettingsInput) (*domain.UserSettings, error) {
	const op = "saveSettings"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	settings := domain.NewUserSettings(identity)
	if in.FontSize != "" {
		settings.FontSize = in.FontSize
	}
	settings.HighContrast = in.HighContrast
	settings.ReducedMotion = in.ReducedMotion
	settings.UpdatedAt = s.now()

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return nil, storeError(err, op, identity)
	}

	s.events.Emit(sse.NewSettingsUpdatedEvent(settings))

	s.logger.Info("settings saved",
		"identity", identity,
		"font_size", settings.FontSize,
		"high_contrast", settings.HighContrast,
		"reduced_motion", settings.ReducedMotion,
	)
	return settings, nil
}
