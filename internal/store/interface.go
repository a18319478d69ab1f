// Package store defines persistence for per-identity StudyTrack data.
//
// Every record except role assignments lives in the partition of the identity
// that owns it. Implementations live in the badgerdb and sqlite subpackages and
// both satisfy the contract suite in storetest.
package store

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Keys are compared exactly; callers normalize titles and subjects before
// calling. List methods return records in insertion order, and replacing a
// record keeps its position. Each call either applies fully or not at all.
type Store interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Goals, keyed by title.
	CreateGoal(ctx context.Context, identity string, goal *domain.Goal) error
	GetGoal(ctx context.Context, identity, title string) (*domain.Goal, error)
	// UpdateGoal loads the goal, applies mutate and writes the result back in
	// one transaction. mutate must not change the title. An error from mutate
	// aborts the update and is returned unchanged.
	UpdateGoal(ctx context.Context, identity, title string, mutate func(*domain.Goal) error) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, identity, title string) error
	ListGoals(ctx context.Context, identity string) ([]*domain.Goal, error)

	// Study sessions, keyed by generated ID.
	CreateStudySession(ctx context.Context, identity string, session *domain.StudySession) error
	DeleteStudySession(ctx context.Context, identity, id string) error
	// DeleteStudySessionsBySubject removes every session with the subject and
	// returns how many were removed. Zero matches is not an error here.
	DeleteStudySessionsBySubject(ctx context.Context, identity, subject string) (int, error)
	ListStudySessions(ctx context.Context, identity string) ([]*domain.StudySession, error)

	// Resources, keyed by title.
	CreateResource(ctx context.Context, identity string, resource *domain.Resource) error
	GetResource(ctx context.Context, identity, title string) (*domain.Resource, error)
	UpdateResource(ctx context.Context, identity, title string, mutate func(*domain.Resource) error) (*domain.Resource, error)
	DeleteResource(ctx context.Context, identity, title string) error
	ListResources(ctx context.Context, identity string) ([]*domain.Resource, error)

	// Profiles and settings: at most one per identity, saved by upsert.
	GetProfile(ctx context.Context, identity string) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	GetSettings(ctx context.Context, identity string) (*domain.UserSettings, error)
	SaveSettings(ctx context.Context, settings *domain.UserSettings) error

	// Role registry. Only explicit assignments are stored.
	GetRole(ctx context.Context, identity string) (*domain.RoleAssignment, error)
	SetRole(ctx context.Context, assignment *domain.RoleAssignment) error
	ListRoles(ctx context.Context) ([]*domain.RoleAssignment, error)

	// ListIdentities returns, sorted, every identity owning at least one goal or resource.
	ListIdentities(ctx context.Context) ([]string, error)
}

// EventEmitter broadcasts change events. Services use it to publish store
// changes without depending on the SSE implementation.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}
