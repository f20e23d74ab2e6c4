package arbitrage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oddsline/oddsline/pkg/types"
)

// Kind classifies a detected combination.
type Kind string

const (
	// KindArbitrage marks guaranteed profit above the configured floor.
	KindArbitrage Kind = "arbitrage"
	// KindHedge marks positive but sub-floor guaranteed profit.
	KindHedge Kind = "hedge"
)

// Leg is one stake in a cross-bookmaker combination.
type Leg struct {
	Outcome   string
	Bookmaker string
	Odds      float64
	Line      *float64
	Stake     float64
}

// Descriptor returns the leg's outcome with its line, if any.
func (l *Leg) Descriptor() string {
	if l.Line == nil {
		return l.Outcome
	}

	return fmt.Sprintf("%s %+.1f", l.Outcome, *l.Line)
}

// Opportunity is a risk-free (or hedge) stake allocation across
// outcomes. By construction every leg pays out the same amount, so the
// profit is guaranteed regardless of result.
type Opportunity struct {
	ID         string
	Kind       Kind
	Sport      string
	GameKey    string
	Market     types.MarketType
	EventDate  string
	Legs       []Leg
	PriceSum   float64 // total implied probability, < 1 for a live combination
	Investment float64
	Payout     float64
	Profit     float64
	ProfitPct  float64
	StartTime  time.Time
	DetectedAt time.Time
}

// referenceStake is the stake assigned to the smallest leg. The value
// is a reporting convenience; profit percentage is scale-invariant.
const referenceStake = 100.0

// NewOpportunity builds an opportunity from the best quote per
// outcome. Raw stakes are proportional to each leg's implied
// probability share, then scaled so the smallest leg stakes the
// reference unit.
func NewOpportunity(game *types.Game, market types.MarketType, eventDate string, best []*types.Quote, minProfit float64) *Opportunity {
	priceSum := 0.0
	for _, q := range best {
		priceSum += q.ImpliedProbability()
	}

	raw := make([]float64, len(best))
	minRaw := 0.0
	for i, q := range best {
		raw[i] = q.ImpliedProbability() / priceSum
		if i == 0 || raw[i] < minRaw {
			minRaw = raw[i]
		}
	}

	legs := make([]Leg, len(best))
	investment := 0.0
	for i, q := range best {
		stake := raw[i] / minRaw * referenceStake
		legs[i] = Leg{
			Outcome:   q.Outcome,
			Bookmaker: q.Bookmaker,
			Odds:      q.Odds,
			Line:      q.Line,
			Stake:     stake,
		}
		investment += stake
	}

	// All legs pay out equally by construction; take the first.
	payout := legs[0].Stake * legs[0].Odds
	profit := payout - investment

	kind := KindArbitrage
	if profit <= minProfit {
		kind = KindHedge
	}

	return &Opportunity{
		ID:         uuid.New().String(),
		Kind:       kind,
		Sport:      game.Sport,
		GameKey:    game.Key(),
		Market:     market,
		EventDate:  eventDate,
		Legs:       legs,
		PriceSum:   priceSum,
		Investment: investment,
		Payout:     payout,
		Profit:     profit,
		ProfitPct:  profit / investment,
		StartTime:  best[0].StartTime,
		DetectedAt: time.Now().UTC(),
	}
}

// String returns a human-readable representation of the opportunity.
func (o *Opportunity) String() string {
	parts := make([]string, len(o.Legs))
	for i, leg := range o.Legs {
		parts[i] = fmt.Sprintf("%s@%.2f(%s, stake %.2f)", leg.Descriptor(), leg.Odds, leg.Bookmaker, leg.Stake)
	}

	return fmt.Sprintf("%s[%s] %s %s: %s profit=%.2f (%.2f%%)",
		o.Kind, o.ID[:8], o.GameKey, o.Market, strings.Join(parts, " / "), o.Profit, o.ProfitPct*100)
}
