package app

import (
	"context"
	"fmt"

	"github.com/oddsline/oddsline/internal/broadcast"
	"github.com/oddsline/oddsline/internal/circuitbreaker"
	"github.com/oddsline/oddsline/internal/engine"
	"github.com/oddsline/oddsline/internal/feed"
	"github.com/oddsline/oddsline/internal/storage"
	"github.com/oddsline/oddsline/pkg/cache"
	"github.com/oddsline/oddsline/pkg/config"
	"github.com/oddsline/oddsline/pkg/healthprobe"
	"github.com/oddsline/oddsline/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()
	latest := NewLatestResult()
	hub := broadcast.NewHub(logger)

	fetcher, err := setupFetcher(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup fetcher: %w", err)
	}

	breaker, err := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		Logger:           logger,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup circuit breaker: %w", err)
	}
	healthChecker.AddDetail("breaker_closed", func() any { return breaker.IsClosed() })

	store, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	archiver, err := storage.NewArchiver(cfg.QuotesDir, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup archiver: %w", err)
	}

	app := &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		fetcher:       fetcher,
		breaker:       breaker,
		engine:        engine.New(cfg, logger),
		store:         store,
		archiver:      archiver,
		hub:           hub,
		latest:        latest,
		ctx:           ctx,
		cancel:        cancel,
	}

	if opts.SingleSport != "" {
		app.cfg.Sports = []string{opts.SingleSport}
	}

	app.httpServer = httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Results:       latest,
		Hub:           hub,
	})

	return app, nil
}

func setupFetcher(cfg *config.Config, logger *zap.Logger) (RecordFetcher, error) {
	client := feed.NewClient(feed.Config{
		BaseURL:      cfg.OddsAPIURL,
		APIKey:       cfg.OddsAPIKey,
		Regions:      cfg.Regions,
		Timeout:      cfg.FeedTimeout,
		RateLimitRPS: cfg.FeedRateLimitRPS,
		Logger:       logger,
	})

	feedCache, err := cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000, // 10x expected max items (one entry per sport)
		MaxCost:     100,
		BufferItems: 64,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create feed cache: %w", err)
	}

	return feed.NewCachedClient(client, feedCache, cfg.FeedCacheTTL, logger), nil
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}
