package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/klinikwerk/shiftwarden/internal"
	"github.com/klinikwerk/shiftwarden/internal/ai"
	"github.com/klinikwerk/shiftwarden/internal/ai/anthropic"
	aimock "github.com/klinikwerk/shiftwarden/internal/ai/mock"
	"github.com/klinikwerk/shiftwarden/internal/compliance"
	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/handler"
	"github.com/klinikwerk/shiftwarden/internal/jobs"
	"github.com/klinikwerk/shiftwarden/internal/metrics"
	"github.com/klinikwerk/shiftwarden/internal/middleware"
	"github.com/klinikwerk/shiftwarden/internal/repository"
	"github.com/klinikwerk/shiftwarden/internal/service"
	"github.com/klinikwerk/shiftwarden/internal/storage"
	"github.com/klinikwerk/shiftwarden/internal/worker"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = time.Hour

// scanInterval is how often a full compliance scan job is enqueued. Each
// scan covers the trailing seven days.
const scanInterval = 24 * time.Hour

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	repo := repository.New(db)

	// Initialize storage for report exports
	store, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}
	logger.Info("Storage ready", "provider", cfg.StorageProvider)

	// Initialize AI provider
	provider, err := newAIProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("ai provider initialization failed: %w", err)
	}
	logger.Info("AI provider ready", "provider", cfg.AIProvider)

	// Initialize services
	checker := compliance.NewChecker(domain.DefaultRuleSet())
	userService := service.NewUserService(repo, cfg.SessionTTL, logger)
	scheduleService := service.NewScheduleService(db, repo, logger)
	complianceService := service.NewComplianceService(scheduleService, checker, logger)

	// Initialize background worker
	var jobWorker *worker.Worker
	if cfg.WorkerEnabled {
		workerCfg := worker.DefaultConfig()
		workerCfg.Concurrency = cfg.WorkerConcurrency
		workerCfg.PollInterval = cfg.WorkerPollInterval
		workerCfg.JobTimeout = cfg.WorkerJobTimeout

		jobWorker, err = worker.New(db, repo, workerCfg, logger)
		if err != nil {
			return fmt.Errorf("worker initialization failed: %w", err)
		}
		jobWorker.Register(jobs.NewComplianceScanHandler(scheduleService, complianceService, logger))
		jobWorker.Register(jobs.NewExportReportHandler(repo, scheduleService, complianceService, store, logger))
		jobWorker.Register(jobs.NewSuggestScheduleHandler(repo, scheduleService, complianceService, provider, logger))

		jobWorker.Start(ctx)
		defer jobWorker.Stop()
		logger.Info("Worker started", "concurrency", workerCfg.Concurrency)
	}

	// Purge expired sessions in the background
	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	defer cancelCleanup()
	go runSessionCleanup(cleanupCtx, userService, logger)

	// Enqueue the daily compliance scan
	if cfg.WorkerEnabled {
		go runScanScheduler(cleanupCtx, repo, logger)
	}

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(userService, logger)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, logger)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, logger)
	complianceHandler := handler.NewComplianceHandler(complianceService, logger)
	suggestionHandler := handler.NewSuggestionHandler(repo, logger)
	exportHandler := handler.NewExportHandler(repo, store, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Local storage serves export downloads directly
	if cfg.StorageProvider == storage.ProviderLocal {
		exportFS := http.FileServer(http.Dir(cfg.LocalStoragePath))
		mux.Handle("GET /exports/", http.StripPrefix("/exports/", exportFS))
	}

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Protected routes
	requireUser := middleware.Stack(authMw.RequireUser)

	protected := func(h http.HandlerFunc) http.Handler {
		return requireUser(h)
	}

	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))

	mux.Handle("PUT /api/schedules/{employeeID}", protected(scheduleHandler.Import))
	mux.Handle("GET /api/schedules/{employeeID}", protected(scheduleHandler.Get))
	mux.Handle("POST /api/schedules/{employeeID}/suggest", protected(suggestionHandler.Create))
	mux.Handle("GET /api/schedules/{employeeID}/suggestions/latest", protected(suggestionHandler.GetLatest))
	mux.Handle("GET /api/suggestions/{id}", protected(suggestionHandler.Get))

	mux.Handle("GET /api/compliance/{employeeID}", protected(complianceHandler.Get))
	mux.Handle("GET /api/compliance/{employeeID}/weekly", protected(complianceHandler.GetWeekly))
	mux.Handle("POST /api/compliance/{employeeID}/export", protected(exportHandler.Create))
	mux.Handle("GET /api/compliance/{employeeID}/exports", protected(exportHandler.List))

	mux.Handle("GET /api/rules", protected(complianceHandler.GetRules))

	// Global middleware: logging, request metrics, session resolution
	root := middleware.Stack(
		loggingMw.Handler,
		metrics.Middleware,
		authMw.WithUser,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage builds the configured storage backend.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderR2:
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
			Region:          "auto",
		}, logger)
	default:
		return storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
	}
}

// newAIProvider builds the configured AI provider.
func newAIProvider(cfg *internal.Config, logger *slog.Logger) (ai.Provider, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return anthropic.New(anthropic.Config{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
			ProviderConfig: ai.ProviderConfig{
				MaxRetries:     cfg.AIMaxRetries,
				RetryBaseDelay: cfg.AIRetryBaseDelay,
				RequestTimeout: cfg.AIRequestTimeout,
			},
		}, logger)
	default:
		return aimock.New(logger), nil
	}
}

// runScanScheduler enqueues a compliance scan over the trailing week, once
// per scanInterval, until ctx is done.
func runScanScheduler(ctx context.Context, repo *repository.Queries, logger *slog.Logger) {
	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			_, err := worker.EnqueueJob(ctx, repo, worker.JobTypeComplianceScan,
				worker.ComplianceScanPayload{
					PeriodFrom: now.AddDate(0, 0, -6).Format(domain.DateLayout),
					PeriodTo:   now.Format(domain.DateLayout),
				},
				worker.WithPriority(worker.PriorityLow),
			)
			if err != nil {
				logger.Error("Compliance scan enqueue failed", "error", err)
			}
		}
	}
}

// runSessionCleanup periodically deletes expired sessions until ctx is done.
func runSessionCleanup(ctx context.Context, users service.UserService, logger *slog.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := users.DeleteExpiredSessions(ctx); err != nil {
				logger.Error("Session cleanup failed", "error", err)
			}
		}
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
