// Package healthprobe provides liveness and readiness handlers.
// Liveness reports only that the process runs; readiness flips once
// the poll loop has produced its first batch and can carry named
// detail probes (breaker state, subscriber count).
package healthprobe

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DetailFunc supplies one named readiness detail on each probe.
type DetailFunc func() any

// HealthChecker provides health and readiness checks.
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool

	mu      sync.RWMutex
	details map[string]DetailFunc
}

// New creates a new HealthChecker.
func New() *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		details:   make(map[string]DetailFunc),
	}
}

// SetReady marks the application as ready to serve traffic.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// AddDetail registers a named probe included in readiness responses.
func (h *HealthChecker) AddDetail(name string, fn DetailFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.details[name] = fn
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Uptime  string         `json:"uptime,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the application is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status: "healthy",
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK if ready, 503 Service Unavailable if not.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if !h.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(HealthResponse{
				Status:  "not_ready",
				Message: "waiting for first batch",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status:  "ready",
			Uptime:  time.Since(h.startTime).String(),
			Details: h.collectDetails(),
		})
	}
}

func (h *HealthChecker) collectDetails() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.details) == 0 {
		return nil
	}

	out := make(map[string]any, len(h.details))
	for name, fn := range h.details {
		out[name] = fn()
	}

	return out
}
