package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProgressStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get progress stats",
		Description: "Totals and study streaks computed from the caller's goals and sessions",
		Tags:        []string{"Stats"},
		Security:    bearerAuth,
	}, s.handleGetProgressStats)
}

// StatsOutput wraps progress stats for Huma.
type StatsOutput struct {
	Body domain.ProgressStats
}

func (s *Server) handleGetProgressStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.services.Stats.GetProgressStats(ctx, identity)
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &StatsOutput{Body: stats}, nil
}
