// Package router wires the HTTP surface: chat messages, health and
// Prometheus metrics.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/healthplug/pharmabot/internal/chat"
	httpmiddleware "github.com/healthplug/pharmabot/internal/http/middleware"
	"github.com/healthplug/pharmabot/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	ChatHandler    *chat.Handler
	MetricsHandler http.Handler

	// Requests/sec and burst per client IP; zero disables limiting.
	RateLimit      float64
	RateLimitBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ChatHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(api chi.Router) {
		if cfg.RateLimit > 0 {
			api.Use(httpmiddleware.RateLimit(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst))
		}
		api.Post("/chat/messages", cfg.ChatHandler.HandleMessage)
	})

	return r
}
