package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.Strings("sports", a.cfg.Sports),
		zap.Duration("poll-interval", a.cfg.PollInterval),
		zap.String("storage-mode", a.cfg.StorageMode),
		zap.String("log-level", a.cfg.LogLevel))

	a.startComponents()

	a.logger.Info("application-started",
		zap.String("http-addr", ":"+a.cfg.HTTPPort))

	return a.waitForShutdown()
}

func (a *App) startComponents() {
	a.wg.Add(1)
	go a.runHTTPServer()

	a.wg.Add(1)
	go a.runHub()

	a.wg.Add(1)
	go a.runPollLoop()
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

func (a *App) runHub() {
	defer a.wg.Done()
	a.hub.Run(a.ctx)
}

// runPollLoop runs one batch immediately, then one per poll interval.
func (a *App) runPollLoop() {
	defer a.wg.Done()

	a.runBatch()

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.runBatch()
		}
	}
}

func (a *App) runBatch() {
	if !a.breaker.Allow() {
		a.logger.Warn("batch-skipped-breaker-open")
		return
	}

	records := a.fetchAll()
	if records == nil {
		return
	}

	if a.archiver != nil {
		_, err := a.archiver.Archive(time.Now(), records)
		if err != nil {
			a.logger.Warn("quote-archive-failed", zap.Error(err))
		}
	}

	result := a.engine.Analyze(a.ctx, time.Now(), records)
	a.latest.Store(result)
	a.healthChecker.SetReady(true)

	err := a.store.StoreResult(a.ctx, result)
	if err != nil {
		a.logger.Error("store-result-failed", zap.Error(err))
	}

	err = a.hub.BroadcastResult(result)
	if err != nil {
		a.logger.Warn("broadcast-result-failed", zap.Error(err))
	}
}

// fetchAll fetches every configured sport. A batch proceeds with
// whatever sports succeeded; nil means nothing at all arrived.
func (a *App) fetchAll() []types.RawRecord {
	var records []types.RawRecord
	fetched := false

	for _, sport := range a.cfg.Sports {
		sportRecords, err := a.fetcher.FetchRecords(a.ctx, sport)
		if err != nil {
			a.breaker.RecordFailure()
			a.logger.Error("sport-fetch-failed",
				zap.String("sport", sport),
				zap.Error(err))
			continue
		}

		a.breaker.RecordSuccess()
		fetched = true
		records = append(records, sportRecords...)
	}

	if !fetched {
		a.logger.Warn("batch-skipped-no-feed-data")
		return nil
	}

	return records
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
