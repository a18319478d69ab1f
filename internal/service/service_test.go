package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/store/badgerdb"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// recordingEmitter captures emitted SSE events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if evt, ok := event.(sse.Event); ok {
		r.events = append(r.events, evt)
	}
}

func (r *recordingEmitter) types() []sse.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recordingEmitter) last() sse.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func (r *recordingEmitter) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type testEnv struct {
	store     store.Store
	events    *recordingEmitter
	index     *search.SearchIndex
	roles     *RoleService
	goals     *GoalService
	sessions  *StudySessionService
	resources *ResourceService
	profiles  *ProfileService
	settings  *SettingsService
	stats     *StatsService
	search    *SearchService
}

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := badgerdb.NewInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewSearchIndex(search.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	events := &recordingEmitter{}
	locks := NewPartitionLocks()
	v := validation.New()
	clock := func() time.Time { return testNow }

	roles := NewRoleService(st, locks, events, logger)
	roles.now = clock
	gate := roles.Gate()

	env := &testEnv{
		store:     st,
		events:    events,
		index:     index,
		roles:     roles,
		goals:     NewGoalService(st, gate, locks, index, events, v, logger),
		sessions:  NewStudySessionService(st, gate, locks, events, v, logger),
		resources: NewResourceService(st, gate, locks, index, events, v, logger),
		profiles:  NewProfileService(st, gate, locks, events, v, logger),
		settings:  NewSettingsService(st, gate, locks, events, v, logger),
		stats:     NewStatsService(st, gate, time.UTC),
		search:    NewSearchService(index, st, gate, logger),
	}
	env.goals.now = clock
	env.sessions.now = clock
	env.resources.now = clock
	env.profiles.now = clock
	env.settings.now = clock
	env.stats.now = clock

	return env
}

// makeGuest assigns identity the guest role through a bootstrap admin.
func (e *testEnv) makeGuest(t *testing.T, identity string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.roles.Bootstrap(ctx, []string{"root"}))
	_, err := e.roles.AssignRole(ctx, "root", identity, domain.RoleGuest)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }
