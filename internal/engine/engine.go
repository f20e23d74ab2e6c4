// Package engine runs one analysis batch: normalize the raw feed,
// estimate fair probabilities, scan for EV, detect arbitrage, and
// aggregate the results. A batch is a pure function of its input
// records, the configuration, and the supplied clock; no state
// survives between batches.
package engine

import (
	"context"
	"time"

	"github.com/oddsline/oddsline/internal/aggregate"
	"github.com/oddsline/oddsline/internal/arbitrage"
	"github.com/oddsline/oddsline/internal/ev"
	"github.com/oddsline/oddsline/internal/normalize"
	"github.com/oddsline/oddsline/internal/probability"
	"github.com/oddsline/oddsline/pkg/config"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// Result is the output of one batch. When Partial is true the caller
// cancelled mid-batch; the opportunities found up to the terminated
// game are still valid and fully ranked.
type Result struct {
	AnalyzedAt time.Time
	Games      int
	Quotes     int
	Partial    bool
	EV         []*ev.Opportunity
	Arbitrage  []*arbitrage.Opportunity
}

// Engine wires the pipeline components for repeated batches.
type Engine struct {
	normalizer  *normalize.Normalizer
	scanner     *ev.Scanner
	arbDetector *arbitrage.Detector
	aggregator  *aggregate.Aggregator
	logger      *zap.Logger
}

// New builds an engine from application configuration. The
// configuration has already been validated; the engine never revisits
// threshold sanity mid-batch.
func New(cfg *config.Config, logger *zap.Logger) *Engine {
	return &Engine{
		normalizer: normalize.New(normalize.Config{
			AllowedBookmakers: cfg.AllowedBookmakers,
			MaxDaysAhead:      cfg.MaxDaysAhead,
			Logger:            logger,
		}),
		scanner: ev.New(ev.Config{
			MinEV:  cfg.MinEVThreshold,
			MaxEV:  cfg.MaxEVThreshold,
			Logger: logger,
		}),
		arbDetector: arbitrage.New(arbitrage.Config{
			MinProfit: cfg.MinArbProfit,
			Logger:    logger,
		}),
		aggregator: aggregate.New(aggregate.Config{
			MaxPerGame: cfg.MaxOppsPerGame,
			CapOrder:   cfg.CapOrder,
		}),
		logger: logger,
	}
}

// Analyze runs one batch over the raw records with now as the window
// anchor. Cancellation is honored between games: the partial result is
// returned as-is, never corrupted.
func (e *Engine) Analyze(ctx context.Context, now time.Time, records []types.RawRecord) *Result {
	start := time.Now()
	BatchesTotal.Inc()

	quotes := e.normalizer.Normalize(now, records)

	book := types.NewBook()
	for _, q := range quotes {
		book.Add(q)
	}

	res := &Result{
		AnalyzedAt: now.UTC(),
		Games:      book.Len(),
		Quotes:     len(quotes),
	}

	var evOpps []*ev.Opportunity
	var arbOpps []*arbitrage.Opportunity

	for _, game := range book.Games() {
		if ctx.Err() != nil {
			res.Partial = true
			e.logger.Warn("batch-terminated-early",
				zap.String("game", game.Key()),
				zap.Error(ctx.Err()))
			break
		}

		evOpps = append(evOpps, e.scanGame(game)...)
		arbOpps = append(arbOpps, e.arbDetector.Detect(game)...)
		GamesAnalyzedTotal.Inc()
	}

	merged := e.aggregator.Merge(evOpps, arbOpps)
	res.EV = merged.EV
	res.Arbitrage = merged.Arbitrage

	BatchDurationSeconds.Observe(time.Since(start).Seconds())

	e.logger.Info("batch-complete",
		zap.Int("games", res.Games),
		zap.Int("quotes", res.Quotes),
		zap.Int("ev-opportunities", len(res.EV)),
		zap.Int("arb-opportunities", len(res.Arbitrage)),
		zap.Bool("partial", res.Partial),
		zap.Duration("duration", time.Since(start)))

	return res
}

// scanGame runs the EV scan for every estimable market of one game.
// The consensus estimator is the EV input; best-price selection stays
// inside the arbitrage detector.
func (e *Engine) scanGame(game *types.Game) []*ev.Opportunity {
	var opps []*ev.Opportunity
	for _, market := range types.MarketTypes {
		fair, ok := probability.Consensus(game, market)
		if !ok {
			continue
		}

		opps = append(opps, e.scanner.Scan(game, market, fair)...)
	}

	return opps
}
