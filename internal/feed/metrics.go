package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsFetchedTotal tracks events received per sport.
	EventsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsline_feed_events_fetched_total",
			Help: "Total number of events fetched from the odds provider",
		},
		[]string{"sport"},
	)

	// FetchErrorsTotal tracks failed fetches per sport.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oddsline_feed_fetch_errors_total",
			Help: "Total number of failed odds provider fetches",
		},
		[]string{"sport"},
	)

	// FetchDurationSeconds tracks provider request latency.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oddsline_feed_fetch_duration_seconds",
		Help:    "Duration of odds provider requests",
		Buckets: prometheus.DefBuckets,
	})
)
