package ev

import (
	"math"
	"testing"
	"time"

	"github.com/oddsline/oddsline/internal/probability"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

func newGame() *types.Game {
	return &types.Game{
		Sport:    "americanfootball_nfl",
		HomeTeam: "Team X",
		AwayTeam: "Team Y",
		Markets:  make(map[types.MarketType][]*types.Quote),
	}
}

func addQuote(g *types.Game, outcome, bookmaker string, odds float64) {
	g.AddQuote(&types.Quote{
		Sport:     g.Sport,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Market:    types.MarketMoneyline,
		Outcome:   outcome,
		Bookmaker: bookmaker,
		Odds:      odds,
		StartTime: time.Date(2025, 10, 3, 17, 0, 0, 0, time.UTC),
	})
}

func TestScan_Band(t *testing.T) {
	tests := []struct {
		name      string
		odds      float64
		fairProb  float64
		minEV     float64
		maxEV     float64
		expectOpp bool
		expectEV  float64
	}{
		{
			// EV = 0.30*2.00 - 0.70 = -0.10: negative, never reported.
			name:     "negative-ev",
			odds:     3.00,
			fairProb: 0.30,
			minEV:    0.0,
			maxEV:    0.15,
		},
		{
			// EV = 0.40*2.00 - 0.60 = 0.20: above the 15% cap, excluded.
			name:     "above-upper-bound",
			odds:     3.00,
			fairProb: 0.40,
			minEV:    0.0,
			maxEV:    0.15,
		},
		{
			// Same bet under a wider band is reported.
			name:      "inside-wide-band",
			odds:      3.00,
			fairProb:  0.40,
			minEV:     0.0,
			maxEV:     0.25,
			expectOpp: true,
			expectEV:  0.20,
		},
		{
			// EV exactly at the lower bound is inclusive.
			name:      "at-lower-bound",
			odds:      2.00,
			fairProb:  0.50,
			minEV:     0.0,
			maxEV:     0.15,
			expectOpp: true,
			expectEV:  0.0,
		},
		{
			// EV exactly at the upper bound is inclusive.
			name:      "at-upper-bound",
			odds:      2.00,
			fairProb:  0.575,
			minEV:     0.0,
			maxEV:     0.15,
			expectOpp: true,
			expectEV:  0.15,
		},
		{
			// Tighter historical band [1%, 15%] drops a 0.5% edge.
			name:     "below-tight-lower-bound",
			odds:     2.01,
			fairProb: 0.50,
			minEV:    0.01,
			maxEV:    0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame()
			addQuote(g, "Team X", "booka", tt.odds)

			fair := probability.Fair{"Team X": tt.fairProb}
			scanner := New(Config{MinEV: tt.minEV, MaxEV: tt.maxEV, Logger: zap.NewNop()})

			opps := scanner.Scan(g, types.MarketMoneyline, fair)
			if !tt.expectOpp {
				if len(opps) != 0 {
					t.Fatalf("got %d opportunities, want none (EV %v)", len(opps), opps[0].EV)
				}
				return
			}

			if len(opps) != 1 {
				t.Fatalf("got %d opportunities, want 1", len(opps))
			}
			if math.Abs(opps[0].EV-tt.expectEV) > 1e-9 {
				t.Errorf("EV = %v, want %v", opps[0].EV, tt.expectEV)
			}
			if opps[0].FairProbability != tt.fairProb {
				t.Errorf("FairProbability = %v, want %v", opps[0].FairProbability, tt.fairProb)
			}
		})
	}
}

func TestScan_AllBookmakersEvaluated(t *testing.T) {
	g := newGame()
	addQuote(g, "Team X", "booka", 2.30) // EV = 0.5*1.30 - 0.5 = 0.15
	addQuote(g, "Team X", "bookb", 2.10) // EV = 0.5*1.10 - 0.5 = 0.05
	addQuote(g, "Team X", "bookc", 1.80) // EV = 0.5*0.80 - 0.5 = -0.10

	fair := probability.Fair{"Team X": 0.5}
	opps := New(Config{MinEV: 0, MaxEV: 0.15, Logger: zap.NewNop()}).Scan(g, types.MarketMoneyline, fair)

	if len(opps) != 2 {
		t.Fatalf("got %d opportunities, want 2", len(opps))
	}
	// Insertion order preserved.
	if opps[0].Bookmaker != "booka" || opps[1].Bookmaker != "bookb" {
		t.Errorf("unexpected order: %s, %s", opps[0].Bookmaker, opps[1].Bookmaker)
	}
}

func TestScan_OutcomeWithoutFairProbabilitySkipped(t *testing.T) {
	g := newGame()
	addQuote(g, "Team X", "booka", 2.50)
	addQuote(g, "Team Y", "booka", 1.60)

	// Only one outcome carries an estimate; the other is skipped, not
	// treated as probability zero.
	fair := probability.Fair{"Team X": 0.5}
	opps := New(Config{MinEV: 0, MaxEV: 0.5, Logger: zap.NewNop()}).Scan(g, types.MarketMoneyline, fair)

	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}
	if opps[0].Bookmaker != "booka" || opps[0].Descriptor != "Team X" {
		t.Errorf("unexpected opportunity: %+v", opps[0])
	}
}
