package arbitrage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpportunitiesDetectedTotal tracks detected combinations by kind.
	OpportunitiesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsline_arb_opportunities_detected_total",
			Help: "Total number of arbitrage and hedge opportunities detected",
		},
		[]string{"kind"},
	)

	// CombinationsRejectedTotal tracks combinations with q >= 1.
	CombinationsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_arb_combinations_rejected_total",
		Help: "Total number of best-price combinations with no risk-free margin",
	})

	// MarketsSkippedTotal tracks markets with an incomplete outcome set.
	MarketsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_arb_markets_skipped_total",
		Help: "Total number of markets skipped for insufficient outcomes",
	})

	// OpportunityProfitPct tracks profit margins in percent.
	OpportunityProfitPct = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oddsline_arb_opportunity_profit_pct",
		Help:    "Arbitrage opportunity profit as percent of investment",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 20},
	})
)
