package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/id"
	"github.com/studytrack/studytrack-server/internal/normalize"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// StudySessionInput is the caller-supplied content of a study session.
type StudySessionInput struct {
	Subject         string  `json:"subject" validate:"notblank,max=200"`
	Date            string  `json:"date" validate:"required,isodate"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0,lte=1440"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// StudySessionService manages study sessions.
type StudySessionService struct {
	store     store.Store
	gate      *Gate
	locks     *PartitionLocks
	events    store.EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewStudySessionService creates a new study session service.
func NewStudySessionService(
	st store.Store,
	gate *Gate,
	locks *PartitionLocks,
	events store.EventEmitter,
	v *validation.Validator,
	logger *slog.Logger,
) *StudySessionService {
	return &StudySessionService{
		store:     st,
		gate:      gate,
		locks:     locks,
		events:    events,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// AddStudySession records a session. Subjects are not unique, so there is no
// duplicate check; the returned session carries its generated ID.
func (s *StudySessionService) AddStudySession(ctx context.Context, identity string, in StudySessionInput) (*domain.StudySession, error) {
	const op = "addStudySession"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	sessionID, err := id.Generate(id.PrefixSession)
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	session := &domain.StudySession{
		ID:              sessionID,
		Subject:         normalize.Key(in.Subject),
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Notes:           normalize.OptionalText(in.Notes),
		CreatedAt:       s.now(),
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.CreateStudySession(ctx, identity, session); err != nil {
		return nil, storeError(err, op, session.ID)
	}

	s.events.Emit(sse.NewSessionCreatedEvent(identity, session))

	s.logger.Info("study session recorded",
		"identity", identity,
		"session_id", session.ID,
		"subject", session.Subject,
		"minutes", session.DurationMinutes,
	)

	return session, nil
}

// DeleteStudySession removes every session recorded under subject and
// returns how many were removed. It fails with NotFound when none matched.
func (s *StudySessionService) DeleteStudySession(ctx context.Context, identity, subject string) (int, error) {
	const op = "deleteStudySession"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return 0, err
	}

	key := normalize.Key(subject)
	if key == "" {
		return 0, domainerrors.Validation("subject is required").WithOp(op)
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	n, err := s.store.DeleteStudySessionsBySubject(ctx, identity, key)
	if err != nil {
		return 0, storeError(err, op, key)
	}
	if n == 0 {
		return 0, domainerrors.NotFound(op, key)
	}

	s.events.Emit(sse.NewSessionsDeletedEvent(identity, key, nil, n))

	s.logger.Info("study sessions deleted",
		"identity", identity,
		"subject", key,
		"count", n,
	)

	return n, nil
}

// DeleteStudySessionByID removes exactly one session.
func (s *StudySessionService) DeleteStudySessionByID(ctx context.Context, identity, sessionID string) error {
	const op = "deleteStudySessionById"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return err
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.DeleteStudySession(ctx, identity, sessionID); err != nil {
		return storeError(err, op, sessionID)
	}

	s.events.Emit(sse.NewSessionsDeletedEvent(identity, "", []string{sessionID}, 1))

	s.logger.Info("study session deleted", "identity", identity, "session_id", sessionID)
	return nil
}

// GetStudySessions returns identity's sessions in insertion order, or an empty slice.
func (s *StudySessionService) GetStudySessions(ctx context.Context, identity string) ([]*domain.StudySession, error) {
	const op = "getStudySessions"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return nil, err
	}

	sessions, err := s.store.ListStudySessions(ctx, identity)
	if err != nil {
		return nil, storeError(err, op, "")
	}
	if sessions == nil {
		sessions = []*domain.StudySession{}
	}
	return sessions, nil
}
