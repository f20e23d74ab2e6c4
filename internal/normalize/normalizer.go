// Package normalize validates and filters raw odds-feed records into
// clean Quotes. Records outside the time window or from bookmakers
// not on the allow-list are dropped whole; a market with missing or
// malformed fields is dropped for that market only, so a record with
// no spread data can still contribute moneyline quotes.
package normalize

import (
	"time"

	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// Config holds normalizer configuration.
type Config struct {
	AllowedBookmakers []string
	MaxDaysAhead      int
	Logger            *zap.Logger
}

// Normalizer filters raw records into validated quotes.
type Normalizer struct {
	allowed      map[string]struct{}
	maxDaysAhead int
	logger       *zap.Logger
}

// New creates a normalizer. Bookmaker names are case-folded once here
// so per-record checks are a set lookup.
func New(cfg Config) *Normalizer {
	allowed := make(map[string]struct{}, len(cfg.AllowedBookmakers))
	for _, b := range cfg.AllowedBookmakers {
		allowed[types.NormalizeBookmaker(b)] = struct{}{}
	}

	return &Normalizer{
		allowed:      allowed,
		maxDaysAhead: cfg.MaxDaysAhead,
		logger:       cfg.Logger,
	}
}

// Normalize converts raw records into quotes, using now as the start
// of the accepted time window. A malformed record fails that record
// only; the batch always completes.
func (n *Normalizer) Normalize(now time.Time, records []types.RawRecord) []*types.Quote {
	now = now.UTC()
	deadline := now.AddDate(0, 0, n.maxDaysAhead)

	var quotes []*types.Quote
	for i := range records {
		quotes = append(quotes, n.normalizeRecord(now, deadline, &records[i])...)
	}

	return quotes
}

func (n *Normalizer) normalizeRecord(now, deadline time.Time, rec *types.RawRecord) []*types.Quote {
	bookmaker := types.NormalizeBookmaker(rec.Bookmaker)
	if _, ok := n.allowed[bookmaker]; !ok {
		RecordsRejectedTotal.WithLabelValues(types.RejectBookmakerNotListed).Inc()
		return nil
	}

	start, err := time.Parse(time.RFC3339, rec.StartTime)
	if err != nil {
		RecordsRejectedTotal.WithLabelValues(types.RejectMalformedTime).Inc()
		n.logger.Debug("record-timestamp-unparsable",
			zap.String("game", types.GameKey(rec.HomeTeam, rec.AwayTeam)),
			zap.String("start-time", rec.StartTime))
		return nil
	}
	start = start.UTC()

	if start.Before(now) || start.After(deadline) {
		RecordsRejectedTotal.WithLabelValues(types.RejectOutsideWindow).Inc()
		return nil
	}

	base := types.Quote{
		Sport:     rec.Sport,
		HomeTeam:  rec.HomeTeam,
		AwayTeam:  rec.AwayTeam,
		Bookmaker: bookmaker,
		StartTime: start,
	}

	var quotes []*types.Quote
	quotes = append(quotes, n.moneylineQuotes(base, rec)...)
	quotes = append(quotes, n.spreadQuotes(base, rec)...)
	quotes = append(quotes, n.totalQuotes(base, rec)...)

	QuotesAcceptedTotal.Add(float64(len(quotes)))

	return quotes
}

// moneylineQuotes requires both sides priced; the draw is optional and
// only present for three-way sports.
func (n *Normalizer) moneylineQuotes(base types.Quote, rec *types.RawRecord) []*types.Quote {
	if rec.HomeOdds == nil || rec.AwayOdds == nil {
		MarketsSkippedTotal.WithLabelValues(string(types.MarketMoneyline)).Inc()
		return nil
	}

	pairs := []struct {
		outcome string
		odds    float64
	}{
		{base.HomeTeam, *rec.HomeOdds},
		{base.AwayTeam, *rec.AwayOdds},
	}
	if rec.DrawOdds != nil {
		pairs = append(pairs, struct {
			outcome string
			odds    float64
		}{types.OutcomeDraw, *rec.DrawOdds})
	}

	quotes := make([]*types.Quote, 0, len(pairs))
	for _, p := range pairs {
		if !n.validOdds(base, types.MarketMoneyline, p.odds) {
			MarketsSkippedTotal.WithLabelValues(string(types.MarketMoneyline)).Inc()
			return nil
		}

		q := base
		q.Market = types.MarketMoneyline
		q.Outcome = p.outcome
		q.Odds = p.odds
		quotes = append(quotes, &q)
	}

	return quotes
}

// spreadQuotes requires both legs fully priced: point and odds each side.
func (n *Normalizer) spreadQuotes(base types.Quote, rec *types.RawRecord) []*types.Quote {
	if rec.HomeSpread == nil || rec.HomeSpreadOdds == nil ||
		rec.AwaySpread == nil || rec.AwaySpreadOdds == nil {
		MarketsSkippedTotal.WithLabelValues(string(types.MarketSpread)).Inc()
		return nil
	}

	if !n.validOdds(base, types.MarketSpread, *rec.HomeSpreadOdds) ||
		!n.validOdds(base, types.MarketSpread, *rec.AwaySpreadOdds) {
		MarketsSkippedTotal.WithLabelValues(string(types.MarketSpread)).Inc()
		return nil
	}

	home := base
	home.Market = types.MarketSpread
	home.Outcome = base.HomeTeam
	home.Odds = *rec.HomeSpreadOdds
	home.Line = rec.HomeSpread

	away := base
	away.Market = types.MarketSpread
	away.Outcome = base.AwayTeam
	away.Odds = *rec.AwaySpreadOdds
	away.Line = rec.AwaySpread

	return []*types.Quote{&home, &away}
}

// totalQuotes requires the threshold and both Over and Under prices.
func (n *Normalizer) totalQuotes(base types.Quote, rec *types.RawRecord) []*types.Quote {
	if rec.TotalLine == nil || rec.OverOdds == nil || rec.UnderOdds == nil {
		MarketsSkippedTotal.WithLabelValues(string(types.MarketTotal)).Inc()
		return nil
	}

	if !n.validOdds(base, types.MarketTotal, *rec.OverOdds) ||
		!n.validOdds(base, types.MarketTotal, *rec.UnderOdds) {
		MarketsSkippedTotal.WithLabelValues(string(types.MarketTotal)).Inc()
		return nil
	}

	over := base
	over.Market = types.MarketTotal
	over.Outcome = types.OutcomeOver
	over.Odds = *rec.OverOdds
	over.Line = rec.TotalLine

	under := base
	under.Market = types.MarketTotal
	under.Outcome = types.OutcomeUnder
	under.Odds = *rec.UnderOdds
	under.Line = rec.TotalLine

	return []*types.Quote{&over, &under}
}

func (n *Normalizer) validOdds(base types.Quote, market types.MarketType, odds float64) bool {
	if odds > 1.0 {
		return true
	}

	RecordsRejectedTotal.WithLabelValues(types.RejectMalformedOdds).Inc()
	n.logger.Debug("quote-odds-invalid",
		zap.String("game", types.GameKey(base.HomeTeam, base.AwayTeam)),
		zap.String("bookmaker", base.Bookmaker),
		zap.String("market", string(market)),
		zap.Float64("odds", odds))

	return false
}
