package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finbook/internal/adapter/http/handler"
	"github.com/iho/finbook/internal/adapter/http/middleware"
	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/infrastructure/metrics"
	"github.com/iho/finbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	ReminderHandler  *handler.ReminderHandler
	ReportHandler    *handler.ReportHandler
	CategoryHandler  *handler.CategoryHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	JWTManager       *auth.JWTManager
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
	AuthEnabled      bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
		} else {
			r.Use(middleware.DevAuthMiddleware())
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/amount-suggestions", cfg.EntryHandler.AmountSuggestions)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Patch("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Reminders
		r.Route("/reminders", func(r chi.Router) {
			r.Post("/", cfg.ReminderHandler.Create)
			r.Get("/", cfg.ReminderHandler.List)
			r.Get("/summary", cfg.ReminderHandler.PendingDigest)
			r.Patch("/{id}", cfg.ReminderHandler.Update)
			r.Post("/{id}/pay", cfg.ReminderHandler.MarkPaid)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/monthly", cfg.ReportHandler.Monthly)
			r.Get("/by-category", cfg.ReportHandler.ByCategory)
			r.Get("/by-period", cfg.ReportHandler.ByPeriod)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cfg.CategoryHandler.List)
			r.Patch("/{id}", cfg.CategoryHandler.Update)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})
	})

	return r
}
