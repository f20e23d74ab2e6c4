package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesTotal tracks analysis batches started.
	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_engine_batches_total",
		Help: "Total number of analysis batches run",
	})

	// GamesAnalyzedTotal tracks games fully evaluated.
	GamesAnalyzedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_engine_games_analyzed_total",
		Help: "Total number of games analyzed across all batches",
	})

	// BatchDurationSeconds tracks end-to-end batch latency.
	BatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oddsline_engine_batch_duration_seconds",
		Help:    "Duration of one analysis batch",
		Buckets: prometheus.DefBuckets,
	})
)
