package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClientsConnected tracks the number of active websocket subscribers.
	ClientsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oddsline_broadcast_clients_connected",
		Help: "Number of active websocket subscribers",
	})

	// MessagesBroadcastTotal counts batch results fanned out to subscribers.
	MessagesBroadcastTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_broadcast_messages_total",
		Help: "Total number of batch results broadcast to subscribers",
	})

	// MessagesDroppedTotal counts results dropped because the broadcast buffer was full.
	MessagesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_broadcast_messages_dropped_total",
		Help: "Total number of batch results dropped before broadcast",
	})

	// SlowClientsDroppedTotal counts subscribers disconnected for not keeping up.
	SlowClientsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsline_broadcast_slow_clients_dropped_total",
		Help: "Total number of subscribers dropped for slow consumption",
	})
)
