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

// ResourceInput is the caller-supplied content of a resource.
type ResourceInput struct {
	Title    string  `json:"title" validate:"notblank,max=200"`
	URL      string  `json:"url" validate:"required,max=2048,httpurl"`
	Category string  `json:"category" validate:"max=100"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ResourceService manages saved learning resources.
type ResourceService struct {
	store     store.Store
	gate      *Gate
	locks     *PartitionLocks
	indexer   Indexer
	events    store.EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewResourceService creates a new resource service. indexer may be nil.
func NewResourceService(
	st store.Store,
	gate *Gate,
	locks *PartitionLocks,
	indexer Indexer,
	events store.EventEmitter,
	v *validation.Validator,
	logger *slog.Logger,
) *ResourceService {
	return &ResourceService{
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

// AddResource saves a resource in identity's partition.
func (s *ResourceService) AddResource(ctx context.Context, identity string, in ResourceInput) (*domain.Resource, error) {
	const op = "addResource"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	now := s.now()
	resource := &domain.Resource{
		Title:     normalize.Key(in.Title),
		CreatedAt: now,
	}
	applyResourceInput(resource, in, now)

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.CreateResource(ctx, identity, resource); err != nil {
		return nil, storeError(err, op, resource.Title)
	}

	reindex(s.logger, s.indexer, search.ResourceToSearchDocument(identity, resource))
	s.events.Emit(sse.NewResourceEvent(sse.EventResourceCreated, identity, resource))

	s.logger.Info("resource created",
		"identity", identity,
		"title", resource.Title,
		"category", resource.Category,
	)

	return resource, nil
}

// UpdateResource replaces the resource stored under title. The same title
// policy as UpdateGoal applies.
func (s *ResourceService) UpdateResource(ctx context.Context, identity, title string, in ResourceInput) (*domain.Resource, error) {
	const op = "updateResource"

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

	resource, err := s.store.UpdateResource(ctx, identity, key, func(r *domain.Resource) error {
		applyResourceInput(r, in, s.now())
		return nil
	})
	if err != nil {
		return nil, storeError(err, op, key)
	}

	reindex(s.logger, s.indexer, search.ResourceToSearchDocument(identity, resource))
	s.events.Emit(sse.NewResourceEvent(sse.EventResourceUpdated, identity, resource))

	s.logger.Info("resource updated", "identity", identity, "title", key)
	return resource, nil
}

// DeleteResource removes the resource stored under title.
func (s *ResourceService) DeleteResource(ctx context.Context, identity, title string) error {
	const op = "deleteResource"

	if _, err := s.gate.Authorize(ctx, identity, ActionWrite, op); err != nil {
		return err
	}

	key := normalize.Key(title)

	unlock := s.locks.Lock(identity)
	defer unlock()

	if err := s.store.DeleteResource(ctx, identity, key); err != nil {
		return storeError(err, op, key)
	}

	unindex(s.logger, s.indexer, search.DocumentID(identity, search.DocTypeResource, key))
	s.events.Emit(sse.NewResourceDeletedEvent(identity, key))

	s.logger.Info("resource deleted", "identity", identity, "title", key)
	return nil
}

// GetResources returns identity's resources in insertion order, or an empty slice.
func (s *ResourceService) GetResources(ctx context.Context, identity string) ([]*domain.Resource, error) {
	const op = "getResources"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return nil, err
	}

	resources, err := s.store.ListResources(ctx, identity)
	if err != nil {
		return nil, storeError(err, op, "")
	}
	if resources == nil {
		resources = []*domain.Resource{}
	}
	return resources, nil
}

func applyResourceInput(r *domain.Resource, in ResourceInput, now time.Time) {
	r.URL = normalize.Text(in.URL)
	r.Category = normalize.Category(in.Category)
	r.Notes = normalize.OptionalText(in.Notes)
	r.UpdatedAt = now
}
