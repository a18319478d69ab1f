package badgerdb

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// CreateResource stores a new resource. Returns store.ErrAlreadyExists if the title is taken.
func (s *Store) CreateResource(ctx context.Context, identity string, resource *domain.Resource) error {
	return s.resources.Create(ctx, identity, resource)
}

// GetResource returns the resource with the title, or store.ErrNotFound.
func (s *Store) GetResource(ctx context.Context, identity, title string) (*domain.Resource, error) {
	return s.resources.Get(ctx, identity, title)
}

// UpdateResource applies mutate to the stored resource in one transaction.
func (s *Store) UpdateResource(ctx context.Context, identity, title string, mutate func(*domain.Resource) error) (*domain.Resource, error) {
	return s.resources.Update(ctx, identity, title, mutate)
}

// DeleteResource removes the resource with the title, or returns store.ErrNotFound.
func (s *Store) DeleteResource(ctx context.Context, identity, title string) error {
	return s.resources.Delete(ctx, identity, title)
}

// ListResources returns the identity's resources in insertion order.
func (s *Store) ListResources(ctx context.Context, identity string) ([]*domain.Resource, error) {
	return s.resources.List(ctx, identity)
}
