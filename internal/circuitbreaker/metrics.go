package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CircuitBreakerClosed is 1 when fetches are allowed, 0 when blocked.
	CircuitBreakerClosed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oddsline_breaker_closed",
		Help: "Whether the feed circuit breaker is closed (1) or open (0)",
	})

	// CircuitBreakerConsecutiveFailures tracks the current failure run.
	CircuitBreakerConsecutiveFailures = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oddsline_breaker_consecutive_failures",
		Help: "Current run of consecutive feed failures",
	})

	// CircuitBreakerTripsTotal counts how many times the breaker opened.
	CircuitBreakerTripsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_breaker_trips_total",
		Help: "Total number of times the feed circuit breaker opened",
	})
)
