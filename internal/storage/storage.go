// Package storage persists batch results. Console storage prints a
// human-readable report; postgres storage keeps opportunities queryable
// across runs. The raw-quote archive is independent of either and
// writes CSV snapshots for replay.
package storage

import (
	"context"

	"github.com/oddsline/oddsline/internal/engine"
)

// Storage is the interface for persisting batch results.
type Storage interface {
	// StoreResult stores the opportunities of one analysis batch.
	StoreResult(ctx context.Context, result *engine.Result) error

	// Close closes the storage connection.
	Close() error
}
