package ev

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EVComputedTotal tracks every quote evaluated against a fair probability.
	EVComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_ev_quotes_evaluated_total",
		Help: "Total number of quotes evaluated for expected value",
	})

	// OpportunitiesDetectedTotal tracks quotes clearing the EV band.
	OpportunitiesDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_ev_opportunities_detected_total",
		Help: "Total number of EV opportunities inside the configured band",
	})

	// OpportunityEVPct tracks accepted EV values in percent.
	OpportunityEVPct = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oddsline_ev_opportunity_ev_pct",
		Help:    "Expected value of accepted opportunities in percent",
		Buckets: []float64{0.5, 1, 2, 3, 5, 8, 10, 15},
	})
)
