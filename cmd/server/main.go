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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cypherlabdev/price-optimizer-service/internal/cache"
	"github.com/cypherlabdev/price-optimizer-service/internal/config"
	httpHandler "github.com/cypherlabdev/price-optimizer-service/internal/handler/http"
	"github.com/cypherlabdev/price-optimizer-service/internal/marketplace"
	"github.com/cypherlabdev/price-optimizer-service/internal/messaging"
	"github.com/cypherlabdev/price-optimizer-service/internal/metrics"
	"github.com/cypherlabdev/price-optimizer-service/internal/seasonality"
	"github.com/cypherlabdev/price-optimizer-service/internal/service"
	"github.com/cypherlabdev/price-optimizer-service/internal/store"
	"github.com/cypherlabdev/price-optimizer-service/pkg/optimizer"
)

func main() {
	// Local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	configPath := os.Getenv("PRICE_OPTIMIZER_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting price-optimizer-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Create Redis cache
	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ResultTTL:  cfg.Redis.ResultTTL,
			HistoryTTL: cfg.Redis.HistoryTTL,
		},
		logger,
	)
	defer redisCache.Close()

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Product catalog
	products, closeStore, err := setupProductStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize product store")
	}
	defer closeStore()

	seasonalTable, err := seasonality.NewTable(cfg.Seasonality, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid seasonality table")
	}

	// Marketplace feeds
	client := marketplace.NewClient(marketplace.Config{
		BaseURL:       cfg.Marketplace.BaseURL,
		APIKey:        cfg.Marketplace.APIKey,
		Timeout:       cfg.Marketplace.Timeout,
		RatePerMinute: cfg.Marketplace.RatePerMinute,
	}, logger)
	competitors := cache.NewCompetitorCache(
		redisCache,
		marketplace.NewCompetitorFeed(client),
		cfg.Redis.CompetitorTTL,
		m,
		logger,
	)

	// Create optimizer
	opt, err := optimizer.NewOptimizer(cfg.Pricing.ToOptimizationParams(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create optimizer")
	}
	logger.Info().Msg("optimizer initialized")

	// Create optimizer service layer
	optimizerService := service.NewOptimizerService(opt, service.Dependencies{
		Products:    products,
		Sales:       marketplace.NewSalesHistoryFeed(client),
		Competitors: competitors,
		Seasonality: seasonalTable,
		Cache:       redisCache,
		Metrics:     m,
	}, cfg.Marketplace.ToRetryPolicy(), logger)
	logger.Info().Msg("optimizer service initialized")

	consumerDone := make(chan struct{})
	if cfg.Kafka.Enabled {
		publisher := messaging.NewKafkaPublisher(messaging.KafkaPublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ResultTopic,
		}, logger)

		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.RequestTopic,
				GroupID: cfg.Kafka.GroupID,
			},
			optimizerService,
			publisher,
			m,
			logger,
		)

		// Start Kafka consumer in goroutine
		go func() {
			defer close(consumerDone)
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
			if err := consumer.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close Kafka consumer")
			}
			if err := publisher.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close Kafka publisher")
			}
		}()
	} else {
		close(consumerDone)
		logger.Info().Msg("Kafka disabled, serving HTTP only")
	}

	// Initialize HTTP handler
	pricingHandler := httpHandler.NewPricingHandler(optimizerService, cfg.Pricing.DefaultMinReviews, logger)

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, redisCache)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	pricingHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		logger.Warn().Msg("Kafka consumer did not stop in time")
	}

	logger.Info().Msg("shutdown complete")
}

// setupProductStore opens PostgreSQL when a DSN is configured, otherwise
// builds an in-memory catalog from the config seed
func setupProductStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.ProductStore, func(), error) {
	seed, err := cfg.Products()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Postgres.DSN == "" {
		mem := store.NewMemoryStore()
		for _, p := range seed {
			if err := mem.Add(ctx, p); err != nil {
				return nil, nil, err
			}
		}
		logger.Info().Int("products", len(seed)).Msg("using in-memory catalog")
		return mem, func() {}, nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	for _, p := range seed {
		if err := pg.Add(ctx, p); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}
	logger.Info().Int("seeded", len(seed)).Msg("connected to PostgreSQL catalog")
	return pg, pg.Close, nil
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "price-optimizer").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, cache service.Cache) {
	// Check Redis connection
	if err := cache.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
