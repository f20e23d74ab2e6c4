// Package oddsmath provides the pure betting math used by the
// probability estimator and the arbitrage detector: implied
// probabilities, overround (bookmaker margin) removal, and expected
// value of a bet at decimal odds.
package oddsmath

import "fmt"

// ImpliedProbability converts decimal odds to the probability the
// price would be fair at: 1/odds.
func ImpliedProbability(odds float64) (float64, error) {
	if odds <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds %v: must be > 1.0", odds)
	}

	return 1.0 / odds, nil
}

// RemoveOverround normalizes a market's implied probabilities so they
// sum to exactly 1, proportionally removing the bookmaker margin.
// The input probabilities must all lie in (0,1); there is no
// requirement that they sum above 1 (best prices from different books
// can sum below 1; that is an arbitrage, not an error).
func RemoveOverround(probabilities []float64) ([]float64, error) {
	if len(probabilities) < 2 {
		return nil, fmt.Errorf("need at least 2 outcomes, got %d", len(probabilities))
	}

	total := 0.0
	for _, p := range probabilities {
		if p <= 0 || p >= 1 {
			return nil, fmt.Errorf("implied probability %v out of range (0,1)", p)
		}
		total += p
	}

	fair := make([]float64, len(probabilities))
	for i, p := range probabilities {
		fair[i] = p / total
	}

	return fair, nil
}

// Overround returns the bookmaker margin of a market: the amount by
// which the summed implied probabilities exceed 1. Zero when the sum
// is at or below 1.
func Overround(probabilities []float64) float64 {
	total := 0.0
	for _, p := range probabilities {
		total += p
	}

	if total <= 1.0 {
		return 0
	}

	return total - 1.0
}

// ExpectedValue returns the expected net return per unit staked at
// decimal odds when the true probability of winning is p:
//
//	EV = p*(odds-1) - (1-p)
func ExpectedValue(odds, p float64) float64 {
	return p*(odds-1.0) - (1.0 - p)
}

// TotalImpliedProbability sums 1/odds over a set of best prices. A
// result below 1 means the combination is risk-free.
func TotalImpliedProbability(odds []float64) (float64, error) {
	total := 0.0
	for _, o := range odds {
		p, err := ImpliedProbability(o)
		if err != nil {
			return 0, err
		}
		total += p
	}

	return total, nil
}
