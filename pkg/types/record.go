package types

// RawRecord is one row of the odds feed before validation: one
// bookmaker's prices for one fixture across all markets it quotes.
// Optional fields are nil when the provider reported them as absent;
// no sentinel strings survive past the feed boundary.
type RawRecord struct {
	Sport     string
	HomeTeam  string
	AwayTeam  string
	StartTime string // ISO-8601 UTC
	Bookmaker string

	HomeOdds *float64
	AwayOdds *float64
	DrawOdds *float64

	HomeSpread     *float64
	HomeSpreadOdds *float64
	AwaySpread     *float64
	AwaySpreadOdds *float64

	TotalLine *float64
	OverOdds  *float64
	UnderOdds *float64
}
