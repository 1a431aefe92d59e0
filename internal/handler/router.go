package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/eventos/internal/metrics"
	"github.com/Shivanand-hulikatti/eventos/internal/service"
	"github.com/Shivanand-hulikatti/eventos/internal/telemetry"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RouterConfig carries the HTTP-layer settings.
type RouterConfig struct {
	AllowedOrigins  []string
	WritesPerMinute int
	// CSRFKey enables CSRF protection of POST routes when non-empty.
	CSRFKey    []byte
	CSRFSecure bool
}

// NewRouter builds the chi router with the global middleware stack and all
// catalog routes.
func NewRouter(svc *service.EventService, logger zerolog.Logger, cfg RouterConfig) http.Handler {
	eventHandler := NewEventHandler(svc)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)    // recover from panics, return 500
	r.Use(chimiddleware.RequestID)    // attach request IDs
	r.Use(chimiddleware.RealIP)       // trust X-Forwarded-For
	r.Use(chimiddleware.StripSlashes) // "/events/x/" routes like "/events/x"
	r.Use(telemetry.Tracing)
	r.Use(metrics.HTTPMiddleware)
	r.Use(Logger(logger))
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(RateLimit(cfg.WritesPerMinute))
	if len(cfg.CSRFKey) > 0 {
		r.Use(CSRF(cfg.CSRFKey, cfg.CSRFSecure))
	}

	// Health and metrics
	r.Get("/health", HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/csrf", CSRFToken)

	// Catalog
	r.Get("/", eventHandler.Home)
	r.Get("/categories", eventHandler.Categories)
	r.Route("/events", func(r chi.Router) {
		r.Get("/category/{category}", eventHandler.ListByCategory)
		r.Get("/{slug}", eventHandler.GetEvent)
		r.Post("/{slug}/register", eventHandler.Register)
		r.Get("/{slug}/registrations", eventHandler.ListRegistrations)
	})
	r.Post("/admin/events", eventHandler.CreateEvent)

	return r
}
