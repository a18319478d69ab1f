package api

import (
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Roles     *service.RoleService
	Goals     *service.GoalService
	Sessions  *service.StudySessionService
	Resources *service.ResourceService
	Profiles  *service.ProfileService
	Settings  *service.SettingsService
	Stats     *service.StatsService
	Search    *service.SearchService

	// SearchIndex is only read by the health check.
	SearchIndex *search.SearchIndex
}
