package aggregate

// Quota is the per-game opportunity counter for one batch. EV and
// arbitrage opportunities draw from the same allowance. It is owned by
// a single Aggregator and never shared across batches, so batches stay
// independently testable.
type Quota struct {
	limit  int
	counts map[string]int
}

// NewQuota creates a quota allowing limit opportunities per game key.
func NewQuota(limit int) *Quota {
	return &Quota{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// Allow consumes one slot for the game key, reporting whether it fit.
func (q *Quota) Allow(gameKey string) bool {
	if q.counts[gameKey] >= q.limit {
		return false
	}

	q.counts[gameKey]++

	return true
}

// Used returns how many slots a game has consumed.
func (q *Quota) Used(gameKey string) int {
	return q.counts[gameKey]
}
