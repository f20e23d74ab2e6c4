package app

import (
	"sync/atomic"

	"github.com/oddsline/oddsline/internal/engine"
)

// LatestResult holds the most recent batch result for the HTTP API.
// Reads are lock-free; each batch replaces the snapshot wholesale.
type LatestResult struct {
	result atomic.Pointer[engine.Result]
}

// NewLatestResult creates an empty holder.
func NewLatestResult() *LatestResult {
	return &LatestResult{}
}

// Store replaces the current snapshot.
func (l *LatestResult) Store(result *engine.Result) {
	l.result.Store(result)
}

// Latest returns the current snapshot, nil before the first batch.
func (l *LatestResult) Latest() *engine.Result {
	return l.result.Load()
}
