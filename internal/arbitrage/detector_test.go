package arbitrage

import (
	"math"
	"testing"
	"time"

	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

var gameStart = time.Date(2025, 10, 3, 17, 0, 0, 0, time.UTC)

func newGame(sport, home, away string) *types.Game {
	return &types.Game{
		Sport:    sport,
		HomeTeam: home,
		AwayTeam: away,
		Markets:  make(map[types.MarketType][]*types.Quote),
	}
}

func addQuote(g *types.Game, market types.MarketType, outcome, bookmaker string, odds float64) {
	g.AddQuote(&types.Quote{
		Sport:     g.Sport,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Market:    market,
		Outcome:   outcome,
		Bookmaker: bookmaker,
		Odds:      odds,
		StartTime: gameStart,
	})
}

func TestDetect_TwoWayArbitrage(t *testing.T) {
	// Bookmaker A: X 2.10 / Y 1.90; Bookmaker B: X 1.95 / Y 2.05.
	// Best prices X=2.10 (A), Y=2.05 (B); q ~= 0.9640 < 1.
	g := newGame("americanfootball_nfl", "Team X", "Team Y")
	addQuote(g, types.MarketMoneyline, "Team X", "booka", 2.10)
	addQuote(g, types.MarketMoneyline, "Team Y", "booka", 1.90)
	addQuote(g, types.MarketMoneyline, "Team X", "bookb", 1.95)
	addQuote(g, types.MarketMoneyline, "Team Y", "bookb", 2.05)

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}

	opp := opps[0]
	if opp.Kind != KindArbitrage {
		t.Errorf("kind = %s, want arbitrage", opp.Kind)
	}
	if len(opp.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(opp.Legs))
	}

	wantQ := 1/2.10 + 1/2.05
	if math.Abs(opp.PriceSum-wantQ) > 1e-9 {
		t.Errorf("PriceSum = %v, want %v", opp.PriceSum, wantQ)
	}

	// Profit percentage ~= 1/q - 1 ~= 3.74%.
	wantPct := 1/wantQ - 1
	if math.Abs(opp.ProfitPct-wantPct) > 1e-9 {
		t.Errorf("ProfitPct = %v, want %v", opp.ProfitPct, wantPct)
	}
	if math.Abs(opp.ProfitPct-0.0374) > 5e-4 {
		t.Errorf("ProfitPct = %v, want about 3.74%%", opp.ProfitPct)
	}

	// The best price per outcome must have been taken.
	if opp.Legs[0].Bookmaker != "booka" || opp.Legs[0].Odds != 2.10 {
		t.Errorf("leg 0 = %s@%v, want booka@2.10", opp.Legs[0].Bookmaker, opp.Legs[0].Odds)
	}
	if opp.Legs[1].Bookmaker != "bookb" || opp.Legs[1].Odds != 2.05 {
		t.Errorf("leg 1 = %s@%v, want bookb@2.05", opp.Legs[1].Bookmaker, opp.Legs[1].Odds)
	}
}

func TestDetect_EqualPayoutInvariant(t *testing.T) {
	tests := []struct {
		name string
		odds map[string]float64
	}{
		{name: "two-way", odds: map[string]float64{"Team X": 2.10, "Team Y": 2.05}},
		{name: "skewed-two-way", odds: map[string]float64{"Team X": 4.80, "Team Y": 1.35}},
		{name: "three-way", odds: map[string]float64{"Team X": 3.60, types.OutcomeDraw: 4.20, "Team Y": 3.50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame("soccer_epl", "Team X", "Team Y")
			for outcome, odds := range tt.odds {
				addQuote(g, types.MarketMoneyline, outcome, "booka", odds)
			}

			opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
			if len(opps) != 1 {
				t.Fatalf("got %d opportunities, want 1", len(opps))
			}
			opp := opps[0]

			// Every leg's stake*odds must equal the payout within
			// 1e-9 relative tolerance, and profit = payout - investment.
			for i, leg := range opp.Legs {
				payout := leg.Stake * leg.Odds
				if math.Abs(payout-opp.Payout)/opp.Payout > 1e-9 {
					t.Errorf("leg %d payout %v != %v", i, payout, opp.Payout)
				}
			}
			if math.Abs(opp.Profit-(opp.Payout-opp.Investment)) > 1e-9 {
				t.Errorf("profit %v != payout-investment %v", opp.Profit, opp.Payout-opp.Investment)
			}

			// Smallest leg stakes the reference unit.
			minStake := opp.Legs[0].Stake
			for _, leg := range opp.Legs {
				if leg.Stake < minStake {
					minStake = leg.Stake
				}
			}
			if math.Abs(minStake-100.0) > 1e-9 {
				t.Errorf("smallest stake = %v, want 100", minStake)
			}
		})
	}
}

func TestDetect_NoArbitrageWhenQAboveOne(t *testing.T) {
	g := newGame("americanfootball_nfl", "Team X", "Team Y")
	addQuote(g, types.MarketMoneyline, "Team X", "booka", 1.90)
	addQuote(g, types.MarketMoneyline, "Team Y", "bookb", 1.95)

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 0 {
		t.Fatalf("q >= 1 produced %d opportunities", len(opps))
	}
}

func TestDetect_HedgeBelowProfitFloor(t *testing.T) {
	// q ~= 0.9640 over stakes normalized to min 100 yields a profit of
	// a few units; a floor above it classifies the find as a hedge.
	g := newGame("americanfootball_nfl", "Team X", "Team Y")
	addQuote(g, types.MarketMoneyline, "Team X", "booka", 2.10)
	addQuote(g, types.MarketMoneyline, "Team Y", "bookb", 2.05)

	opps := New(Config{MinProfit: 50.0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}
	if opps[0].Kind != KindHedge {
		t.Errorf("kind = %s, want hedge", opps[0].Kind)
	}
	if opps[0].Profit <= 0 {
		t.Errorf("hedge profit should be positive, got %v", opps[0].Profit)
	}
}

func TestDetect_ThreeWayRequiresAllOutcomes(t *testing.T) {
	g := newGame("soccer_epl", "Arsenal", "Chelsea")
	addQuote(g, types.MarketMoneyline, "Arsenal", "booka", 3.60)
	addQuote(g, types.MarketMoneyline, types.OutcomeDraw, "booka", 4.20)

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 0 {
		t.Fatalf("incomplete three-way produced %d opportunities", len(opps))
	}
}

func TestDetect_OneSidedMarketSkipped(t *testing.T) {
	g := newGame("baseball_mlb", "Team X", "Team Y")
	addQuote(g, types.MarketTotal, types.OutcomeOver, "booka", 2.20)

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 0 {
		t.Fatalf("one-sided total produced %d opportunities", len(opps))
	}
}

func TestDetect_TotalMarketArbitrage(t *testing.T) {
	line := 44.5
	g := newGame("americanfootball_nfl", "Team X", "Team Y")
	g.AddQuote(&types.Quote{
		Sport: g.Sport, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam,
		Market: types.MarketTotal, Outcome: types.OutcomeOver,
		Bookmaker: "booka", Odds: 2.10, Line: &line, StartTime: gameStart,
	})
	g.AddQuote(&types.Quote{
		Sport: g.Sport, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam,
		Market: types.MarketTotal, Outcome: types.OutcomeUnder,
		Bookmaker: "bookb", Odds: 2.05, Line: &line, StartTime: gameStart,
	})

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(opps))
	}
	if opps[0].Legs[0].Outcome != types.OutcomeOver {
		t.Errorf("first leg = %s, want Over", opps[0].Legs[0].Outcome)
	}
	if opps[0].Legs[0].Descriptor() != "Over +44.5" && opps[0].Legs[0].Descriptor() != "Over 44.5" {
		// Descriptor includes the line.
		t.Errorf("descriptor %q missing line", opps[0].Legs[0].Descriptor())
	}
}

func TestDetect_SeparateEventDatesNotMixed(t *testing.T) {
	// The same fixture listed on two calendar dates must not be merged
	// into one combination even if the cross-date prices would arb.
	g := newGame("baseball_mlb", "Team X", "Team Y")
	addQuote(g, types.MarketMoneyline, "Team X", "booka", 2.10)
	g.AddQuote(&types.Quote{
		Sport: g.Sport, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam,
		Market: types.MarketMoneyline, Outcome: "Team Y",
		Bookmaker: "bookb", Odds: 2.05,
		StartTime: gameStart.AddDate(0, 0, 1),
	})

	opps := New(Config{MinProfit: 0, Logger: zap.NewNop()}).Detect(g)
	if len(opps) != 0 {
		t.Fatalf("cross-date quotes produced %d opportunities", len(opps))
	}
}
