package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grocery-detective/internal/analyzer"
	"grocery-detective/internal/config"
	"grocery-detective/internal/database"
	"grocery-detective/internal/handler"
	"grocery-detective/internal/llm"
	"grocery-detective/internal/middleware"
	"grocery-detective/internal/model"
	"grocery-detective/internal/quota"
	"grocery-detective/internal/reference"
	"grocery-detective/internal/repository"
	"grocery-detective/internal/router"
	"grocery-detective/internal/scoring"
	"grocery-detective/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	limiterSweepInterval = time.Minute
	limiterIdleTimeout   = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting grocery-detective API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	scanRepo := repository.NewScanRepository(pool, logger)
	subRepo := repository.NewSubscriptionRepository(pool, logger)

	// Load the ingredient reference table
	table, err := loadReferenceTable(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load reference table: %w", err)
	}

	// Initialize analyzers
	fallback := analyzer.NewLocalAnalyzer(scoring.NewEngine(table))

	primary, closePrimary, err := newPrimaryAnalyzer(ctx, cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize AI analyzer: %w", err)
	}
	defer closePrimary()

	if cfg.Cache.Enabled && cfg.AI.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().
				Err(err).
				Str("addr", cfg.Cache.RedisAddr).
				Msg("redis unavailable, AI analyses will not be cached")
		}
		primary = analyzer.NewCachingAnalyzer(primary, rdb, cfg.Cache.TTL, cfg.AI.Provider+":"+cfg.AI.Model, logger)
	}

	selector := analyzer.NewSelector(primary, fallback, cfg.AI.Timeout, logger)
	tracker := quota.NewTracker(cfg.Quota.FreeDailyScans, nil)

	// Initialize services
	userService := service.NewUserService(userRepo, scanRepo, logger)
	scanService := service.NewScanService(userRepo, scanRepo, selector, tracker, logger)
	subscriptionService := service.NewSubscriptionService(userRepo, subRepo, tracker, cfg.Quota.PremiumPeriod(), model.PaymentConfig{
		ClientID: cfg.Payment.PayPalClientID,
		Currency: cfg.Payment.Currency,
	}, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		User:     handler.NewUserHandler(userService, logger),
		Analysis: handler.NewAnalysisHandler(scanService, logger),
		Payment:  handler.NewPaymentHandler(subscriptionService, logger),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go sweepLimiter(ctx, limiter, logger)

	// Initialize router
	mux := router.New(handlers, cfg.Auth.APIKey, limiter, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("ai_provider", cfg.AI.Provider).
			Int("reference_entries", len(table.Harmful())).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadReferenceTable returns the built-in table unless a reference document is
// configured, in which case it is read from S3 with a local file fallback.
func loadReferenceTable(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*reference.Table, error) {
	if cfg.Reference.Path == "" {
		logger.Info().Msg("using built-in ingredient reference table")
		return reference.DefaultTable(), nil
	}

	fileLoader := reference.NewFileLoader(logger)

	var s3Loader reference.Loader
	if cfg.S3.Enabled {
		loader, err := reference.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for reference table (S3 disabled)")
	}

	loader := reference.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	return loader.Load(ctx, cfg.Reference.Path)
}

// newPrimaryAnalyzer builds the AI analyzer for the configured provider. The
// returned close function is always safe to call.
func newPrimaryAnalyzer(ctx context.Context, cfg config.AIConfig, logger zerolog.Logger) (analyzer.Analyzer, func(), error) {
	noop := func() {}

	switch cfg.Provider {
	case config.AIProviderOpenAI:
		client := llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger)
		return analyzer.NewRemoteAnalyzer(client, logger), noop, nil

	case config.AIProviderVertex:
		client, err := llm.NewVertexClient(ctx, llm.VertexConfig{
			ProjectID:       cfg.VertexProjectID,
			Location:        cfg.VertexLocation,
			CredentialsFile: cfg.VertexCredentialsFile,
			Model:           cfg.Model,
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close vertex client")
			}
		}
		return analyzer.NewRemoteAnalyzer(client, logger), closeFn, nil

	default:
		logger.Info().Msg("AI analyzer disabled, using local scoring engine only")
		return analyzer.Unavailable(), noop, nil
	}
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter, logger zerolog.Logger) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Sweep(limiterIdleTimeout); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("swept idle rate limiters")
			}
		}
	}
}
