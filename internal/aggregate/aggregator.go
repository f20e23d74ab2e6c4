// Package aggregate merges EV and arbitrage findings into the batch
// result: it applies the shared per-game opportunity quota and ranks
// the surviving opportunities deterministically.
package aggregate

import (
	"sort"

	"github.com/oddsline/oddsline/internal/arbitrage"
	"github.com/oddsline/oddsline/internal/ev"
	"github.com/oddsline/oddsline/pkg/config"
)

// Config holds aggregator configuration.
type Config struct {
	MaxPerGame int
	// CapOrder picks how the quota is applied when a game overflows:
	// CapOrderQuality keeps the most profitable finds, CapOrderArrival
	// keeps the first generated (the legacy behavior).
	CapOrder string
}

// Result is the ranked output of one batch: EV opportunities by
// descending EV, arbitrage/hedge opportunities by descending profit,
// each with a stable game-key/bookmaker tie-break so output is
// reproducible regardless of generation order.
type Result struct {
	EV        []*ev.Opportunity
	Arbitrage []*arbitrage.Opportunity
}

// Aggregator applies the quota and ranking for one batch.
type Aggregator struct {
	cfg Config
}

// New creates an aggregator.
func New(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// candidate is one find of either kind, scored for quota ordering. EV
// (a signed fraction) and profit percentage (also a fraction) compete
// on the same scale.
type candidate struct {
	gameKey   string
	bookmaker string
	score     float64
	evOpp     *ev.Opportunity
	arbOpp    *arbitrage.Opportunity
}

// Merge applies the shared per-game quota across both kinds and
// returns the ranked result. The input order is the generation order,
// which CapOrderArrival preserves.
func (a *Aggregator) Merge(evOpps []*ev.Opportunity, arbOpps []*arbitrage.Opportunity) *Result {
	candidates := make([]candidate, 0, len(evOpps)+len(arbOpps))
	for _, o := range evOpps {
		candidates = append(candidates, candidate{
			gameKey:   o.GameKey,
			bookmaker: o.Bookmaker,
			score:     o.EV,
			evOpp:     o,
		})
	}
	for _, o := range arbOpps {
		candidates = append(candidates, candidate{
			gameKey:   o.GameKey,
			bookmaker: o.Legs[0].Bookmaker,
			score:     o.ProfitPct,
			arbOpp:    o,
		})
	}

	if a.cfg.CapOrder == config.CapOrderQuality {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			if candidates[i].gameKey != candidates[j].gameKey {
				return candidates[i].gameKey < candidates[j].gameKey
			}
			return candidates[i].bookmaker < candidates[j].bookmaker
		})
	}

	quota := NewQuota(a.cfg.MaxPerGame)
	res := &Result{}
	for _, c := range candidates {
		if !quota.Allow(c.gameKey) {
			OpportunitiesCappedTotal.Inc()
			continue
		}

		if c.evOpp != nil {
			res.EV = append(res.EV, c.evOpp)
		} else {
			res.Arbitrage = append(res.Arbitrage, c.arbOpp)
		}
	}

	sortEV(res.EV)
	sortArbitrage(res.Arbitrage)

	return res
}

func sortEV(opps []*ev.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		if opps[i].EV != opps[j].EV {
			return opps[i].EV > opps[j].EV
		}
		if opps[i].GameKey != opps[j].GameKey {
			return opps[i].GameKey < opps[j].GameKey
		}
		return opps[i].Bookmaker < opps[j].Bookmaker
	})
}

func sortArbitrage(opps []*arbitrage.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		if opps[i].Profit != opps[j].Profit {
			return opps[i].Profit > opps[j].Profit
		}
		if opps[i].GameKey != opps[j].GameKey {
			return opps[i].GameKey < opps[j].GameKey
		}
		return opps[i].Legs[0].Bookmaker < opps[j].Legs[0].Bookmaker
	})
}
