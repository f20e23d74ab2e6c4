// Package broadcast fans out batch results to websocket subscribers.
// Subscribers are write-only consumers: a slow client is disconnected
// rather than allowed to back-pressure the analysis loop.
package broadcast

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/oddsline/oddsline/internal/engine"
	"go.uber.org/zap"
)

const broadcastBuffer = 64

// Message is the envelope sent to every subscriber.
type Message struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   *engine.Result `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts batch
// results to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

// NewHub creates a new hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub's main loop and blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("broadcast-hub-started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.clients[c] = true
			ClientsConnected.Set(float64(len(h.clients)))
			h.logger.Info("subscriber-connected",
				zap.String("client_id", c.id),
				zap.Int("total", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				ClientsConnected.Set(float64(len(h.clients)))
				h.logger.Info("subscriber-disconnected",
					zap.String("client_id", c.id),
					zap.Int("total", len(h.clients)))
			}

		case data := <-h.broadcast:
			h.fanOut(data)
		}
	}
}

// BroadcastResult queues one batch result for delivery to all
// subscribers. If the broadcast buffer is full the result is dropped;
// the next batch supersedes it anyway.
func (h *Hub) BroadcastResult(result *engine.Result) error {
	data, err := json.Marshal(Message{
		Type:      "batch_result",
		Timestamp: time.Now(),
		Payload:   result,
	})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast-buffer-full")
		MessagesDroppedTotal.Inc()
	}

	return nil
}

func (h *Hub) fanOut(data []byte) {
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow subscriber, cut it loose
			delete(h.clients, c)
			close(c.send)
			ClientsConnected.Set(float64(len(h.clients)))
			SlowClientsDroppedTotal.Inc()
			h.logger.Warn("slow-subscriber-dropped",
				zap.String("client_id", c.id))
		}
	}

	MessagesBroadcastTotal.Inc()
}

func (h *Hub) shutdown() {
	h.logger.Info("broadcast-hub-stopping",
		zap.Int("active_clients", len(h.clients)))

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	ClientsConnected.Set(0)
}
