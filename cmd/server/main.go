package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finbook/internal/adapter/http"
	"github.com/iho/finbook/internal/adapter/http/handler"
	postgresRepo "github.com/iho/finbook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finbook/internal/adapter/repository/redis"
	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/infrastructure/config"
	"github.com/iho/finbook/internal/infrastructure/eventpublisher"
	"github.com/iho/finbook/internal/infrastructure/metrics"
	"github.com/iho/finbook/internal/infrastructure/postgres"
	"github.com/iho/finbook/internal/infrastructure/redis"
	"github.com/iho/finbook/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.LogFormat != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	promMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	// Initialize use cases
	sideEffects := usecase.NewSideEffectHandler(entryRepo, reminderRepo, idGen, clock)
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, categoryRepo, outboxRepo, sideEffects, cache, idGen, clock, promMetrics)
	reminderUC := usecase.NewReminderUseCase(txManager, reminderRepo, outboxRepo, sideEffects, idGen, clock, promMetrics)
	reportUC := usecase.NewReportUseCase(reportRepo, clock)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen, clock)

	// Initialize handlers
	entryHandler := handler.NewEntryHandler(entryUC)
	reminderHandler := handler.NewReminderHandler(reminderUC)
	reportHandler := handler.NewReportHandler(reportUC, promMetrics)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     entryHandler,
		ReminderHandler:  reminderHandler,
		ReportHandler:    reportHandler,
		CategoryHandler:  categoryHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		JWTManager:       jwtManager,
		Metrics:          promMetrics,
		Logger:           log.Logger,
		AuthEnabled:      cfg.AuthEnabled,
	})

	// Start the outbox publisher worker
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(slog.Default()),
		Metrics:    promMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})

	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
