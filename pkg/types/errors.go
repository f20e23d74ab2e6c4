package types

import "fmt"

// RecordError describes why a raw feed record (or one of its markets)
// was rejected at the normalization boundary. It fails the single
// record only; batches never abort on one bad row.
type RecordError struct {
	Reason    string
	Bookmaker string
	Game      string
	Detail    string
}

func (e *RecordError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("record rejected (%s): %s / %s: %s", e.Reason, e.Game, e.Bookmaker, e.Detail)
	}

	return fmt.Sprintf("record rejected (%s): %s / %s", e.Reason, e.Game, e.Bookmaker)
}

// Rejection reasons reported by the normalizer.
const (
	RejectMalformedTime      = "malformed_timestamp"
	RejectMalformedOdds      = "malformed_odds"
	RejectOutsideWindow      = "outside_time_window"
	RejectBookmakerNotListed = "bookmaker_not_allowed"
)
