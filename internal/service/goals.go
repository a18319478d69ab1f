package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/normalize"
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// GoalInput is the caller-supplied content of a goal.
type GoalInput struct {
	Title       string          `json:"title" validate:"notblank,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Category    string          `json:"category" validate:"max=100"`
	Priority    domain.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	TargetDate  string          `json:"target_date" validate:"omitempty,isodate"`
	// Completed is honored by UpdateGoal only. Nil keeps the stored value.
	Completed *bool `json:"completed,omitempty"`
}

// GoalService manages goals.
type GoalService struct {
	store     store.Store
	gate      *Gate
	locks     *PartitionLocks
	indexer   Indexer
	events    store.EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewGoalService creates a new goal service. indexer may be nil.
func NewGoalService(
	st store.Store,
	gate *Gate,
	locks *PartitionLocks,
	indexer Indexer,
	events store.EventEmitter,
	v *validation.Validator,
	logger *slog.Logger,
) *GoalService {
	return &GoalService{
		store:     st,
		gate:      gate,
		locks:     locks,
		indexer:   indexer,
		events:    events,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// AddGoal creates a goal in identity's partition. Goals always start incomplete.
func (s *GoalService) AddGoal(ctx context.Context, identity string, in GoalInput) (*domain.Goal, error) {
	const op = "addGoal"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	goal := &domain.Goal{
		Title:     normalize.Key(in.Title),
		CreatedAt: now,
	}
	applyGoalInput(goal, in, now)
	goal.Completed = false

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.CreateGoal(ctx, identity, goal); err != nil {
		return nil, storeError(err, op, goal.Title)
	}

	reindex(s.logger, s.indexer, search.GoalToSearchDocument(identity, goal))
	s.events.Emit(sse.NewGoalEvent(sse.EventGoalCreated, identity, goal))

	s.logger.Info("goal created",
		"identity", identity,
		"title", goal.Title,
		"priority", goal.Priority,
	)

	return goal, nil
}

// UpdateGoal replaces the goal stored under title with in.
//
// in.Title may be empty or repeat the stored title; any other title is
// rejected because renaming would change the natural key.
func (s *GoalService) UpdateGoal(ctx context.Context, identity, title string, in GoalInput) (*domain.Goal, error) {
	const op = "updateGoal"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}

	key := normalize.Key(title)
	if in.Title == "" {
		in.Title = key
	}
	if normalize.Key(in.Title) != key {
		return nil, domainerrors.Validation("rename requires delete and create").WithOp(op).WithKey(key)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(identity)
	defer unlock()

	var completedNow bool
	goal, err := s.store.UpdateGoal(ctx, identity, key, func(g *domain.Goal) error {
		wasCompleted := g.Completed
		applyGoalInput(g, in, s.now())
		if in.Completed != nil {
			g.Completed = *in.Completed
		}
		completedNow = !wasCompleted && g.Completed
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, key)
	}

	eventType := sse.EventGoalUpdated
	if completedNow {
		eventType = sse.EventGoalCompleted
	}
	reindex(s.logger, s.indexer, search.GoalToSearchDocument(identity, goal))
	s.events.Emit(sse.NewGoalEvent(eventType, identity, goal))

	s.logger.Info("goal updated",
		"identity", identity,
		"title", goal.Title,
	)

	return goal, nil
}

// MarkGoalComplete marks the goal completed. Completing a completed goal
// succeeds without writing or emitting anything.
func (s *GoalService) MarkGoalComplete(ctx context.Context, identity, title string) (*domain.Goal, error) {
	const op = "markGoalComplete"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}

	key := normalize.Key(title)

	unlock := s.locks.Lock(identity)
	defer unlock()

	var changed bool
	goal, err := s.store.UpdateGoal(ctx, identity, key, func(g *domain.Goal) error {
		changed = g.MarkComplete(s.now())
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, key)
	}

	if changed {
		reindex(s.logger, s.indexer, search.GoalToSearchDocument(identity, goal))
		s.events.Emit(sse.NewGoalEvent(sse.EventGoalCompleted, identity, goal))
		s.logger.Info("goal completed", "identity", identity, "title", key)
	}

	return goal, nil
}

// DeleteGoal removes the goal stored under title.
func (s *GoalService) DeleteGoal(ctx context.Context, identity, title string) error {
	const op = "deleteGoal"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return err
	}

	key := normalize.Key(title)

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.DeleteGoal(ctx, identity, key); err != nil {
		return storeError(err, op, key)
	}

	unindex(s.logger, s.indexer, search.DocumentID(identity, search.DocTypeGoal, key))
	s.events.Emit(sse.NewGoalDeletedEvent(identity, key))

	s.logger.Info("goal deleted", "identity", identity, "title", key)
	return nil
}

// GetGoals returns identity's goals in insertion order, or an empty slice.
func (s *GoalService) GetGoals(ctx context.Context, identity string) ([]*domain.Goal, error) {
	const op = "getGoals"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return nil, err
	}

	goals, err := s.store.ListGoals(ctx, identity)
	if err != nil {
		return nil, storeError(err, op, "")
	}
	if goals == nil {
		goals = []*domain.Goal{}
	}
	return goals, nil
}

// applyGoalInput overwrites g's mutable fields with in. Completed is left to the caller.
func applyGoalInput(g *domain.Goal, in GoalInput, now time.Time) {
	g.Description = normalize.Text(in.Description)
	g.Category = normalize.Category(in.Category)
	g.Priority = in.Priority
	if g.Priority == "" {
		g.Priority = domain.DefaultPriority
	}
	g.TargetDate = normalize.Text(in.TargetDate)
	g.UpdatedAt = now
}
