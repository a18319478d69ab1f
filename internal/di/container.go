// Package di provides dependency injection configuration for the StudyTrack server.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/auth"
	"github.com/studytrack/studytrack-server/internal/config"
	"github.com/studytrack/studytrack-server/internal/di/providers"
	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/service"
	"github.com/studytrack/studytrack-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideRoleService)
	do.Provide(injector, providers.ProvideBootstrap)

	// Business services
	do.Provide(injector, providers.ProvidePartitionLocks)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideGoalService)
	do.Provide(injector, providers.ProvideStudySessionService)
	do.Provide(injector, providers.ProvideResourceService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvideStatsService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes every service in dependency order, rebuilds the
// search index and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	steps := []struct {
		name   string
		invoke func() error
	}{
		{"config", invoke[*config.Config](injector)},
		{"logger", invoke[*logger.Logger](injector)},
		{"sse manager", invoke[*providers.SSEManagerHandle](injector)},
		{"store", invoke[*providers.StoreHandle](injector)},
		{"search index", invoke[*providers.SearchIndexHandle](injector)},
		{"token service", invoke[*auth.TokenService](injector)},
		{"partition locks", invoke[*service.PartitionLocks](injector)},
		{"validator", invoke[*validation.Validator](injector)},
		{"role service", invoke[*service.RoleService](injector)},
		{"admin bootstrap", invoke[*providers.Bootstrap](injector)},
		{"goal service", invoke[*service.GoalService](injector)},
		{"study session service", invoke[*service.StudySessionService](injector)},
		{"resource service", invoke[*service.ResourceService](injector)},
		{"profile service", invoke[*service.ProfileService](injector)},
		{"settings service", invoke[*service.SettingsService](injector)},
		{"stats service", invoke[*service.StatsService](injector)},
		{"search service", invoke[*service.SearchService](injector)},
		{"search reindex", func() error { return providers.ReindexSearch(injector) }},
		{"rate limiter", invoke[*providers.RateLimiterHandle](injector)},
		{"http server", invoke[*providers.HTTPServerHandle](injector)},
	}

	for _, step := range steps {
		if err := step.invoke(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func invoke[T any](injector *do.RootScope) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
