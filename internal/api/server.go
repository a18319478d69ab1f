// Package api provides the HTTP API server and handlers for StudyTrack.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/studytrack/studytrack-server/internal/auth"
	"github.com/studytrack/studytrack-server/internal/ratelimit"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
)

// APIVersion is reported in the OpenAPI document.
const APIVersion = "1.0.0"

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
	// Limiter may be nil to disable rate limiting.
	Limiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      store.Store
	services   *Services
	sseManager *sse.Manager
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	st store.Store,
	services *Services,
	tokens *auth.TokenService,
	sseManager *sse.Manager,
	opts Options,
	logger *slog.Logger,
) *Server {
	router := chi.NewRouter()

	router.Use(escapedRoutePath)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(tokens))
	if opts.Limiter != nil {
		router.Use(rateLimitMiddleware(opts.Limiter, logger))
	}

	humaConfig := huma.DefaultConfig("StudyTrack API", APIVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:      st,
		services:   services,
		sseManager: sseManager,
		router:     router,
		api:        api,
		logger:     logger,
	}

	s.registerHealthRoutes()
	s.registerGoalRoutes()
	s.registerSessionRoutes()
	s.registerResourceRoutes()
	s.registerProfileRoutes()
	s.registerRoleRoutes()
	s.registerStatsRoutes()
	s.registerSettingsRoutes()
	s.registerSearchRoutes()

	if sseManager != nil {
		router.Get("/api/v1/events", sse.NewHandler(sseManager, IdentityFromContext, logger).ServeHTTP)
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

var bearerAuth = []map[string][]string{{"bearer": {}}}
