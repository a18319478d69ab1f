package badgerdb

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// CreateGoal stores a new goal. Returns store.ErrAlreadyExists if the title is taken.
func (s *Store) CreateGoal(ctx context.Context, identity string, goal *domain.Goal) error {
	return s.goals.Create(ctx, identity, goal)
}

// GetGoal returns the goal with the title, or store.ErrNotFound.
func (s *Store) GetGoal(ctx context.Context, identity, title string) (*domain.Goal, error) {
	return s.goals.Get(ctx, identity, title)
}

// UpdateGoal applies mutate to the stored goal in one transaction.
func (s *Store) UpdateGoal(ctx context.Context, identity, title string, mutate func(*domain.Goal) error) (*domain.Goal, error) {
	return s.goals.Update(ctx, identity, title, mutate)
}

// DeleteGoal removes the goal with the title, or returns store.ErrNotFound.
func (s *Store) DeleteGoal(ctx context.Context, identity, title string) error {
	return s.goals.Delete(ctx, identity, title)
}

// ListGoals returns the identity's goals in insertion order.
func (s *Store) ListGoals(ctx context.Context, identity string) ([]*domain.Goal, error) {
	return s.goals.List(ctx, identity)
}
