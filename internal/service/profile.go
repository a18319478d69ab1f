package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/normalize"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// ProfileInput is the caller-supplied profile.
type ProfileInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// ProfileService manages display-name profiles.
type ProfileService struct {
	store     store.Store
	gate      *Gate
	locks     *PartitionLocks
	events    store.EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(
	st store.Store,
	gate *Gate,
	locks *PartitionLocks,
	events store.EventEmitter,
	v *validation.Validator,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		store:     st,
		gate:      gate,
		locks:     locks,
		events:    events,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveCallerProfile creates or replaces the caller's profile.
func (s *ProfileService) SaveCallerProfile(ctx context.Context, identity string, in ProfileInput) (*domain.Profile, error) {
	const op = "saveCallerUserProfile"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Identity:  identity,
		Name:      normalize.Key(in.Name),
		UpdatedAt: s.now(),
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, storeError(err, op, identity)
	}

	s.events.Emit(sse.NewProfileUpdatedEvent(profile))

	s.logger.Info("profile saved", "identity", identity)
	return profile, nil
}

// GetCallerProfile returns the caller's profile, or nil if none was saved.
func (s *ProfileService) GetCallerProfile(ctx context.Context, identity string) (*domain.Profile, error) {
	if _, err := s.gate.Authorize(ctx, identity, ActionRead, "getCallerUserProfile"); err != nil {
		return nil, err
	}
	return s.load(ctx, identity, "getCallerUserProfile")
}

// GetUserProfile returns target's profile to any authenticated caller, or nil
// if target has none.
func (s *ProfileService) GetUserProfile(ctx context.Context, caller, target string) (*domain.Profile, error) {
	if _, err := s.gate.Authorize(ctx, caller, ActionRead, "getUserProfile"); err != nil {
		return nil, err
	}
	return s.load(ctx, target, "getUserProfile")
}

func (s *ProfileService) load(ctx context.Context, identity, op string) (*domain.Profile, error) {
	profile, err := s.store.GetProfile(ctx, identity)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, op, identity)
	}
	return profile, nil
}
