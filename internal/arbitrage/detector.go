// Package arbitrage finds riskless cross-bookmaker combinations. It
// always works from the single best obtainable price per outcome,
// never from the consensus estimate the EV scan uses: arbitrage profit
// depends on prices you can actually take.
package arbitrage

import (
	"sort"

	"github.com/oddsline/oddsline/internal/probability"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// Config holds detector configuration.
type Config struct {
	// MinProfit is the currency floor above which a combination is
	// reported as arbitrage; positive profit at or below it is a hedge.
	MinProfit float64
	Logger    *zap.Logger
}

// Detector scans a game's markets for risk-free combinations.
type Detector struct {
	minProfit float64
	logger    *zap.Logger
}

// New creates a new arbitrage detector.
func New(cfg Config) *Detector {
	return &Detector{
		minProfit: cfg.MinProfit,
		logger:    cfg.Logger,
	}
}

// Detect returns every arbitrage and hedge combination found across
// the game's markets, in deterministic market-then-date order.
func (d *Detector) Detect(game *types.Game) []*Opportunity {
	var opps []*Opportunity
	for _, market := range types.MarketTypes {
		opps = append(opps, d.detectMarket(game, market)...)
	}

	return opps
}

// detectMarket groups one market's quotes by event date and tests each
// group. The date boundary keeps distinct fixtures (and re-listed
// lines) from being mixed into one combination.
func (d *Detector) detectMarket(game *types.Game, market types.MarketType) []*Opportunity {
	quotes := game.Markets[market]
	if len(quotes) == 0 {
		return nil
	}

	byDate := make(map[string][]*types.Quote)
	for _, q := range quotes {
		date := q.StartTime.Format("2006-01-02")
		byDate[date] = append(byDate[date], q)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var opps []*Opportunity
	for _, date := range dates {
		opp, ok := d.detectGroup(game, market, date, byDate[date])
		if !ok {
			continue
		}
		opps = append(opps, opp)
	}

	return opps
}

// detectGroup evaluates one date group: best price per outcome, then
// the q = sum(1/odds) < 1 test. A group with fewer outcomes than the
// market requires is silently skipped.
func (d *Detector) detectGroup(game *types.Game, market types.MarketType, date string, quotes []*types.Quote) (*Opportunity, bool) {
	grouped := make(map[string][]*types.Quote)
	for _, q := range quotes {
		grouped[q.Outcome] = append(grouped[q.Outcome], q)
	}

	if !probability.Complete(game, market, grouped) {
		MarketsSkippedTotal.Inc()
		return nil, false
	}

	best := make([]*types.Quote, 0, len(grouped))
	for _, outcome := range outcomeOrder(game, market, grouped) {
		best = append(best, probability.BestQuote(grouped[outcome]))
	}

	priceSum := 0.0
	for _, q := range best {
		priceSum += q.ImpliedProbability()
	}

	if priceSum >= 1.0 {
		// Not an error, simply no opportunity.
		CombinationsRejectedTotal.Inc()
		d.logger.Debug("combination-not-riskfree",
			zap.String("game", game.Key()),
			zap.String("market", string(market)),
			zap.Float64("price-sum", priceSum))
		return nil, false
	}

	opp := NewOpportunity(game, market, date, best, d.minProfit)

	OpportunitiesDetectedTotal.WithLabelValues(string(opp.Kind)).Inc()
	OpportunityProfitPct.Observe(opp.ProfitPct * 100)

	d.logger.Info("riskfree-combination-detected",
		zap.String("opportunity-id", opp.ID),
		zap.String("kind", string(opp.Kind)),
		zap.String("game", opp.GameKey),
		zap.String("market", string(opp.Market)),
		zap.Float64("profit", opp.Profit),
		zap.Float64("profit-pct", opp.ProfitPct))

	return opp, true
}

// outcomeOrder fixes leg order: home side first, draw in the middle
// for three-way markets, Over before Under for totals.
func outcomeOrder(game *types.Game, market types.MarketType, grouped map[string][]*types.Quote) []string {
	if market == types.MarketTotal {
		return []string{types.OutcomeOver, types.OutcomeUnder}
	}

	order := []string{game.HomeTeam}
	if _, ok := grouped[types.OutcomeDraw]; ok {
		order = append(order, types.OutcomeDraw)
	}

	return append(order, game.AwayTeam)
}
