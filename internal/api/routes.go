package api

import (
	"log/slog"
	"net/http"

	"github.com/kaykas/alexandra-schedule/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	baseMiddleware := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	// Admin-only middleware
	adminWrap := AuthMiddleware(cfg, logger)

	// ==========================================================================
	// Public routes
	// ==========================================================================
	mux.HandleFunc("GET /health", handlers.HealthCheck)
	mux.HandleFunc("GET /api/v1/custody/today", handlers.GetToday)
	mux.HandleFunc("GET /api/v1/custody/date/{date}", handlers.GetDate)
	mux.HandleFunc("GET /api/v1/custody/range", handlers.GetRange)
	mux.HandleFunc("GET /calendar.ics", handlers.GetFeed)

	// ==========================================================================
	// Admin routes (API key only)
	// ==========================================================================
	mux.Handle("POST /api/v1/admin/revisions", adminWrap(http.HandlerFunc(handlers.CreateRevision)))

	return baseMiddleware(mux)
}
