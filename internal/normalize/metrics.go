package normalize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuotesAcceptedTotal tracks quotes passing validation.
	QuotesAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_quotes_accepted_total",
		Help: "Total number of quotes accepted by the normalizer",
	})

	// RecordsRejectedTotal tracks rejected records by reason.
	RecordsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsline_records_rejected_total",
			Help: "Total number of feed records rejected by the normalizer",
		},
		[]string{"reason"},
	)

	// MarketsSkippedTotal tracks per-market skips on otherwise valid records.
	MarketsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsline_markets_skipped_total",
			Help: "Total number of markets skipped for missing or invalid fields",
		},
		[]string{"market"},
	)
)
