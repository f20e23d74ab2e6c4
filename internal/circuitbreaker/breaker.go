// Package circuitbreaker guards the odds feed against a flapping or
// down provider. After a run of consecutive fetch failures the breaker
// opens and blocks fetches for a cooldown; a success after the cooldown
// closes it again.
package circuitbreaker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FeedCircuitBreaker tracks consecutive feed failures and controls
// whether fetches should run.
type FeedCircuitBreaker struct {
	closed atomic.Bool // Atomic for lock-free reads

	failureThreshold int
	cooldown         time.Duration
	logger           *zap.Logger

	// Protected by mutex
	mu           sync.RWMutex
	failures     int
	lastFailure  time.Time
	openedAt     time.Time
	lastSuccess  time.Time
	totalTripped int
}

// Config holds circuit breaker configuration.
type Config struct {
	FailureThreshold int
	Cooldown         time.Duration
	Logger           *zap.Logger
}

// Status holds current circuit breaker status for debugging.
type Status struct {
	Closed              bool
	ConsecutiveFailures int
	LastFailure         time.Time
	LastSuccess         time.Time
	OpenedAt            time.Time
	TimesTripped        int
}

// New creates a new circuit breaker with the given configuration.
func New(cfg *Config) (*FeedCircuitBreaker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.FailureThreshold <= 0 {
		return nil, fmt.Errorf("failure threshold must be positive")
	}
	if cfg.Cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive")
	}

	breaker := &FeedCircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		cooldown:         cfg.Cooldown,
		logger:           cfg.Logger,
	}

	// Start closed (fetches allowed)
	breaker.closed.Store(true)

	CircuitBreakerClosed.Set(1)
	CircuitBreakerConsecutiveFailures.Set(0)

	return breaker, nil
}

// Allow reports whether a fetch should run. While open it returns
// false until the cooldown has elapsed; the first call after that is
// allowed through as a probe.
func (b *FeedCircuitBreaker) Allow() bool {
	if b.closed.Load() {
		return true
	}

	b.mu.RLock()
	openedAt := b.openedAt
	b.mu.RUnlock()

	return time.Since(openedAt) >= b.cooldown
}

// RecordSuccess resets the failure count and closes the breaker.
func (b *FeedCircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	b.failures = 0
	b.lastSuccess = time.Now()
	wasOpen := !b.closed.Load()
	b.mu.Unlock()

	if wasOpen {
		b.closed.Store(true)
		CircuitBreakerClosed.Set(1)
		b.logger.Info("breaker-closed",
			zap.Duration("cooldown", b.cooldown))
	}

	CircuitBreakerConsecutiveFailures.Set(0)
}

// RecordFailure increments the failure count; at the threshold the
// breaker opens. Failures during a probe restart the cooldown.
func (b *FeedCircuitBreaker) RecordFailure() {
	b.mu.Lock()
	b.failures++
	b.lastFailure = time.Now()
	failures := b.failures
	shouldOpen := failures >= b.failureThreshold && b.closed.Load()
	probeFailed := !b.closed.Load()
	if shouldOpen || probeFailed {
		b.openedAt = time.Now()
	}
	if shouldOpen {
		b.totalTripped++
	}
	b.mu.Unlock()

	CircuitBreakerConsecutiveFailures.Set(float64(failures))

	if shouldOpen {
		b.closed.Store(false)
		CircuitBreakerClosed.Set(0)
		CircuitBreakerTripsTotal.Inc()
		b.logger.Warn("breaker-opened",
			zap.Int("consecutive_failures", failures),
			zap.Duration("cooldown", b.cooldown))
		return
	}

	if probeFailed {
		b.logger.Warn("breaker-probe-failed",
			zap.Int("consecutive_failures", failures))
		return
	}

	b.logger.Debug("feed-failure-recorded",
		zap.Int("consecutive_failures", failures),
		zap.Int("threshold", b.failureThreshold))
}

// IsClosed returns true if fetches are currently unblocked.
// This is lock-free and safe to call from hot paths.
func (b *FeedCircuitBreaker) IsClosed() bool {
	return b.closed.Load()
}

// GetStatus returns the current breaker state for debugging.
func (b *FeedCircuitBreaker) GetStatus() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Status{
		Closed:              b.closed.Load(),
		ConsecutiveFailures: b.failures,
		LastFailure:         b.lastFailure,
		LastSuccess:         b.lastSuccess,
		OpenedAt:            b.openedAt,
		TimesTripped:        b.totalTripped,
	}
}
