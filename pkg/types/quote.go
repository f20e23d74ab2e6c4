package types

import (
	"fmt"
	"strings"
	"time"
)

// MarketType identifies a bet market on a game.
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
)

// MarketTypes lists all supported market types in a fixed evaluation order.
var MarketTypes = []MarketType{MarketMoneyline, MarketSpread, MarketTotal}

// Outcome labels for total markets. Moneyline and spread outcomes are
// team names (plus OutcomeDraw for three-way moneylines).
const (
	OutcomeOver  = "Over"
	OutcomeUnder = "Under"
	OutcomeDraw  = "Draw"
)

// Quote is a single bookmaker price for one outcome of one market.
// Odds are decimal odds (> 1.0). Line is nil for moneyline quotes and
// carries the spread points or total threshold otherwise.
type Quote struct {
	Sport     string
	HomeTeam  string
	AwayTeam  string
	Market    MarketType
	Outcome   string
	Bookmaker string
	Odds      float64
	Line      *float64
	StartTime time.Time
}

// GameKey returns the key identifying the fixture this quote belongs to.
func (q *Quote) GameKey() string {
	return GameKey(q.HomeTeam, q.AwayTeam)
}

// ImpliedProbability returns 1/odds for this quote.
func (q *Quote) ImpliedProbability() float64 {
	return 1.0 / q.Odds
}

// Descriptor returns a human-readable outcome descriptor, including the
// line where one applies ("Over 44.5", "Dallas Cowboys -3.5").
func (q *Quote) Descriptor() string {
	if q.Line == nil {
		return q.Outcome
	}

	if q.Market == MarketSpread {
		return fmt.Sprintf("%s %+.1f", q.Outcome, *q.Line)
	}

	return fmt.Sprintf("%s %.1f", q.Outcome, *q.Line)
}

// GameKey builds the canonical game key for a home/away pairing.
func GameKey(homeTeam, awayTeam string) string {
	return homeTeam + " vs " + awayTeam
}

// NormalizeBookmaker case-folds a bookmaker name for allow-list and
// grouping comparisons.
func NormalizeBookmaker(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
