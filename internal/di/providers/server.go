package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/api"
	"github.com/studytrack/studytrack-server/internal/auth"
	"github.com/studytrack/studytrack-server/internal/config"
	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/ratelimit"
	"github.com/studytrack/studytrack-server/internal/service"
)

// RateLimiterHandle wraps the keyed rate limiter with Shutdownable.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-caller request limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &RateLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Roles:       do.MustInvoke[*service.RoleService](i),
		Goals:       do.MustInvoke[*service.GoalService](i),
		Sessions:    do.MustInvoke[*service.StudySessionService](i),
		Resources:   do.MustInvoke[*service.ResourceService](i),
		Profiles:    do.MustInvoke[*service.ProfileService](i),
		Settings:    do.MustInvoke[*service.SettingsService](i),
		Stats:       do.MustInvoke[*service.StatsService](i),
		Search:      do.MustInvoke[*service.SearchService](i),
		SearchIndex: indexHandle.SearchIndex,
	}

	handler := api.NewServer(storeHandle.Store, services, tokens, sseHandle.Manager, api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limiter:     limiter.KeyedRateLimiter,
	}, log.Logger)

	// The SSE handler moves its write deadline forward on every event, so
	// WriteTimeout does not end event streams.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
