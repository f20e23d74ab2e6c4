// Package app wires the feed, engine, storage and serving surfaces
// into the long-running poll loop.
package app

import (
	"context"
	"sync"

	"github.com/oddsline/oddsline/internal/broadcast"
	"github.com/oddsline/oddsline/internal/circuitbreaker"
	"github.com/oddsline/oddsline/internal/engine"
	"github.com/oddsline/oddsline/internal/storage"
	"github.com/oddsline/oddsline/pkg/config"
	"github.com/oddsline/oddsline/pkg/healthprobe"
	"github.com/oddsline/oddsline/pkg/httpserver"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// RecordFetcher fetches raw records for one sport.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, sport string) ([]types.RawRecord, error)
}

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	fetcher       RecordFetcher
	breaker       *circuitbreaker.FeedCircuitBreaker
	engine        *engine.Engine
	store         storage.Storage
	archiver      *storage.Archiver
	hub           *broadcast.Hub
	latest        *LatestResult
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	SingleSport string // For debugging: analyze only this sport key
}
