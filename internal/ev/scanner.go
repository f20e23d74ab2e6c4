// Package ev scans individual quotes for positive expected value
// against a fair probability estimate.
package ev

import (
	"time"

	"github.com/google/uuid"
	"github.com/oddsline/oddsline/internal/probability"
	"github.com/oddsline/oddsline/pkg/oddsmath"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// Opportunity is a single bet whose EV clears the configured band.
type Opportunity struct {
	ID              string
	Sport           string
	GameKey         string
	Market          types.MarketType
	Bookmaker       string
	Descriptor      string
	Odds            float64
	EV              float64
	FairProbability float64
	StartTime       time.Time
}

// Config holds scanner configuration.
type Config struct {
	// MinEV and MaxEV bound the accepted EV band, both inclusive. The
	// upper bound guards against prices too good to be true (stale
	// lines, listing errors).
	MinEV  float64
	MaxEV  float64
	Logger *zap.Logger
}

// Scanner compares quotes against fair probabilities.
type Scanner struct {
	minEV  float64
	maxEV  float64
	logger *zap.Logger
}

// New creates a new EV scanner.
func New(cfg Config) *Scanner {
	return &Scanner{
		minEV:  cfg.MinEV,
		maxEV:  cfg.MaxEV,
		logger: cfg.Logger,
	}
}

// Scan evaluates every quote of one market against the fair
// probabilities, returning the quotes whose EV lies inside the band.
// Quotes are visited in insertion order, so output is deterministic
// for a given input ordering.
func (s *Scanner) Scan(game *types.Game, market types.MarketType, fair probability.Fair) []*Opportunity {
	var opps []*Opportunity
	for _, q := range game.Markets[market] {
		p, ok := fair[q.Outcome]
		if !ok {
			continue
		}

		value := oddsmath.ExpectedValue(q.Odds, p)
		EVComputedTotal.Inc()

		if value < s.minEV || value > s.maxEV {
			continue
		}

		opp := &Opportunity{
			ID:              uuid.New().String(),
			Sport:           q.Sport,
			GameKey:         q.GameKey(),
			Market:          market,
			Bookmaker:       q.Bookmaker,
			Descriptor:      q.Descriptor(),
			Odds:            q.Odds,
			EV:              value,
			FairProbability: p,
			StartTime:       q.StartTime,
		}
		opps = append(opps, opp)

		OpportunitiesDetectedTotal.Inc()
		OpportunityEVPct.Observe(value * 100)

		s.logger.Debug("positive-ev-quote",
			zap.String("game", opp.GameKey),
			zap.String("market", string(market)),
			zap.String("bookmaker", opp.Bookmaker),
			zap.String("bet", opp.Descriptor),
			zap.Float64("odds", opp.Odds),
			zap.Float64("ev", opp.EV))
	}

	return opps
}
