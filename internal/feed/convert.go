package feed

import "github.com/oddsline/oddsline/pkg/types"

// Convert flattens provider events into raw records, one per
// event/bookmaker pair. Markets a bookmaker does not quote stay nil in
// the record; the normalizer decides what that excludes.
func Convert(sport string, events []Event) []types.RawRecord {
	var records []types.RawRecord
	for i := range events {
		records = append(records, convertEvent(sport, &events[i])...)
	}

	return records
}

func convertEvent(sport string, ev *Event) []types.RawRecord {
	records := make([]types.RawRecord, 0, len(ev.Bookmakers))
	for _, bm := range ev.Bookmakers {
		rec := types.RawRecord{
			Sport:     sport,
			HomeTeam:  ev.HomeTeam,
			AwayTeam:  ev.AwayTeam,
			StartTime: ev.CommenceTime,
			Bookmaker: bm.Title,
		}

		for _, market := range bm.Markets {
			switch market.Key {
			case marketH2H:
				applyH2H(&rec, ev, market.Outcomes)
			case marketSpreads:
				applySpreads(&rec, ev, market.Outcomes)
			case marketTotals:
				applyTotals(&rec, market.Outcomes)
			}
		}

		records = append(records, rec)
	}

	return records
}

func applyH2H(rec *types.RawRecord, ev *Event, outcomes []Outcome) {
	for _, o := range outcomes {
		price := o.Price
		switch o.Name {
		case ev.HomeTeam:
			rec.HomeOdds = &price
		case ev.AwayTeam:
			rec.AwayOdds = &price
		case types.OutcomeDraw:
			rec.DrawOdds = &price
		}
	}
}

func applySpreads(rec *types.RawRecord, ev *Event, outcomes []Outcome) {
	for _, o := range outcomes {
		price := o.Price
		switch o.Name {
		case ev.HomeTeam:
			rec.HomeSpread = o.Point
			rec.HomeSpreadOdds = &price
		case ev.AwayTeam:
			rec.AwaySpread = o.Point
			rec.AwaySpreadOdds = &price
		}
	}
}

func applyTotals(rec *types.RawRecord, outcomes []Outcome) {
	for _, o := range outcomes {
		price := o.Price
		switch o.Name {
		case types.OutcomeOver:
			rec.OverOdds = &price
			rec.TotalLine = o.Point
		case types.OutcomeUnder:
			rec.UnderOdds = &price
			if rec.TotalLine == nil {
				rec.TotalLine = o.Point
			}
		}
	}
}
