package aggregate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OpportunitiesCappedTotal tracks finds dropped by the per-game quota.
var OpportunitiesCappedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "oddsline_opportunities_capped_total",
	Help: "Total number of opportunities dropped by the per-game cap",
})
