// Package probability turns a market's quotes into fair (margin-free)
// outcome probabilities. Two strategies exist and stay separate:
// Consensus averages implied probabilities across every bookmaker
// quoting an outcome and is the default input to the EV scan;
// BestPrice takes the single highest odds per outcome and exists for
// callers that need obtainable prices, not averages.
package probability

import (
	"github.com/oddsline/oddsline/pkg/oddsmath"
	"github.com/oddsline/oddsline/pkg/types"
)

// Fair maps outcome label to fair probability. For a fully quoted
// market the values sum to 1.
type Fair map[string]float64

// Consensus estimates fair probabilities by averaging the implied
// probability of every quote per outcome, then removing the overround.
// Returns false when the market has fewer quoted outcomes than its
// type requires; that market is skipped, it is not an error.
func Consensus(game *types.Game, market types.MarketType) (Fair, bool) {
	grouped, ok := eligibleOutcomes(game, market)
	if !ok {
		return nil, false
	}

	outcomes, probs := make([]string, 0, len(grouped)), make([]float64, 0, len(grouped))
	for outcome, quotes := range grouped {
		sum := 0.0
		for _, q := range quotes {
			sum += q.ImpliedProbability()
		}
		outcomes = append(outcomes, outcome)
		probs = append(probs, sum/float64(len(quotes)))
	}

	return normalize(outcomes, probs)
}

// BestPrice estimates fair probabilities from the single best (highest)
// odds per outcome across bookmakers, then removes the overround.
func BestPrice(game *types.Game, market types.MarketType) (Fair, bool) {
	grouped, ok := eligibleOutcomes(game, market)
	if !ok {
		return nil, false
	}

	outcomes, probs := make([]string, 0, len(grouped)), make([]float64, 0, len(grouped))
	for outcome, quotes := range grouped {
		best := BestQuote(quotes)
		outcomes = append(outcomes, outcome)
		probs = append(probs, best.ImpliedProbability())
	}

	return normalize(outcomes, probs)
}

// BestQuote returns the quote with the highest odds. Ties keep the
// first seen, which is deterministic because games iterate quotes in
// insertion order.
func BestQuote(quotes []*types.Quote) *types.Quote {
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Odds > best.Odds {
			best = q
		}
	}

	return best
}

// eligibleOutcomes groups a market's quotes by outcome and checks the
// outcome set is complete for the market type.
func eligibleOutcomes(game *types.Game, market types.MarketType) (map[string][]*types.Quote, bool) {
	grouped := game.QuotesByOutcome(market)
	if !Complete(game, market, grouped) {
		return nil, false
	}

	return grouped, true
}

// Complete reports whether a grouped outcome set covers everything the
// market type requires. A three-way moneyline (draw quoted anywhere)
// is only complete once all three outcomes have at least one quote.
// Incomplete markets are skipped for both EV and arbitrage; that is a
// precondition, not an error.
func Complete(game *types.Game, market types.MarketType, grouped map[string][]*types.Quote) bool {
	if len(grouped) < 2 {
		return false
	}

	switch market {
	case types.MarketMoneyline:
		_, home := grouped[game.HomeTeam]
		_, away := grouped[game.AwayTeam]
		if !home || !away {
			return false
		}
		if _, draw := grouped[types.OutcomeDraw]; draw && len(grouped) < 3 {
			return false
		}
	case types.MarketSpread:
		_, home := grouped[game.HomeTeam]
		_, away := grouped[game.AwayTeam]
		if !home || !away {
			return false
		}
	case types.MarketTotal:
		_, over := grouped[types.OutcomeOver]
		_, under := grouped[types.OutcomeUnder]
		if !over || !under {
			return false
		}
	}

	return true
}

func normalize(outcomes []string, probs []float64) (Fair, bool) {
	fairProbs, err := oddsmath.RemoveOverround(probs)
	if err != nil {
		return nil, false
	}

	fair := make(Fair, len(outcomes))
	for i, outcome := range outcomes {
		fair[outcome] = fairProbs[i]
	}

	return fair, true
}
