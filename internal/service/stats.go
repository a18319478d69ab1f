package service

import (
	"context"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/progress"
	"github.com/studytrack/studytrack-server/internal/store"
)

// StatsService derives progress statistics on demand. Nothing is cached.
type StatsService struct {
	store    store.Store
	gate     *Gate
	location *time.Location
	now      func() time.Time
}

// NewStatsService creates a stats service. "Today" is taken in loc; nil means time.Local.
func NewStatsService(st store.Store, gate *Gate, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		store:    st,
		gate:     gate,
		location: loc,
		now:      time.Now,
	}
}

// GetProgressStats computes identity's statistics as of today.
func (s *StatsService) GetProgressStats(ctx context.Context, identity string) (domain.ProgressStats, error) {
	const op = "getProgressStats"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return domain.ProgressStats{}, err
	}

	goals, err := s.store.ListGoals(ctx, identity)
	if err != nil {
		return domain.ProgressStats{}, storeError(err, op, "")
	}
	sessions, err := s.store.ListStudySessions(ctx, identity)
	if err != nil {
		return domain.ProgressStats{}, storeError(err, op, "")
	}

	return progress.Compute(goals, sessions, s.now().In(s.location)), nil
}
