package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/oddsline/oddsline/pkg/config"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

var now = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func testConfig() *config.Config {
	return &config.Config{
		AllowedBookmakers: []string{"booka", "bookb"},
		MaxDaysAhead:      7,
		MinEVThreshold:    0.0,
		MaxEVThreshold:    0.15,
		MinArbProfit:      0.0,
		MaxOppsPerGame:    3,
		CapOrder:          config.CapOrderQuality,
	}
}

func moneylineRecord(home, away, bookmaker string, homeOdds, awayOdds float64) types.RawRecord {
	return types.RawRecord{
		Sport:     "americanfootball_nfl",
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: now.Add(48 * time.Hour).Format(time.RFC3339),
		Bookmaker: bookmaker,
		HomeOdds:  f(homeOdds),
		AwayOdds:  f(awayOdds),
	}
}

func TestAnalyze_EndToEndArbitrage(t *testing.T) {
	records := []types.RawRecord{
		moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90),
		moneylineRecord("Team X", "Team Y", "bookb", 1.95, 2.05),
	}

	e := New(testConfig(), zap.NewNop())
	res := e.Analyze(context.Background(), now, records)

	if res.Partial {
		t.Fatal("unexpected partial result")
	}
	if res.Games != 1 {
		t.Fatalf("got %d games, want 1", res.Games)
	}
	if len(res.Arbitrage) != 1 {
		t.Fatalf("got %d arbitrage opportunities, want 1", len(res.Arbitrage))
	}

	opp := res.Arbitrage[0]
	wantPct := 1/(1/2.10+1/2.05) - 1
	if math.Abs(opp.ProfitPct-wantPct) > 1e-9 {
		t.Errorf("ProfitPct = %v, want %v", opp.ProfitPct, wantPct)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	records := []types.RawRecord{
		moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90),
		moneylineRecord("Team X", "Team Y", "bookb", 1.95, 2.05),
		moneylineRecord("Team A", "Team B", "booka", 2.60, 1.55),
		moneylineRecord("Team A", "Team B", "bookb", 2.40, 1.62),
	}

	e := New(testConfig(), zap.NewNop())
	first := e.Analyze(context.Background(), now, records)
	second := e.Analyze(context.Background(), now, records)

	if len(first.EV) != len(second.EV) || len(first.Arbitrage) != len(second.Arbitrage) {
		t.Fatalf("runs differ in size: %d/%d vs %d/%d",
			len(first.EV), len(first.Arbitrage), len(second.EV), len(second.Arbitrage))
	}

	for i := range first.EV {
		a, b := first.EV[i], second.EV[i]
		if a.GameKey != b.GameKey || a.Bookmaker != b.Bookmaker || a.EV != b.EV {
			t.Errorf("EV position %d differs: %+v vs %+v", i, a, b)
		}
	}
	for i := range first.Arbitrage {
		a, b := first.Arbitrage[i], second.Arbitrage[i]
		if a.GameKey != b.GameKey || a.Profit != b.Profit {
			t.Errorf("arb position %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestAnalyze_DisallowedBookmakerNeverSurfaces(t *testing.T) {
	// sharpbook would be the best price and a clear arb partner, but it
	// is not on the allow-list.
	records := []types.RawRecord{
		moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90),
		moneylineRecord("Team X", "Team Y", "sharpbook", 2.50, 2.50),
	}

	e := New(testConfig(), zap.NewNop())
	res := e.Analyze(context.Background(), now, records)

	for _, o := range res.EV {
		if o.Bookmaker == "sharpbook" {
			t.Error("disallowed bookmaker surfaced in EV output")
		}
	}
	for _, o := range res.Arbitrage {
		for _, leg := range o.Legs {
			if leg.Bookmaker == "sharpbook" {
				t.Error("disallowed bookmaker surfaced in arbitrage output")
			}
		}
	}
}

func TestAnalyze_StaleGameNeverSurfaces(t *testing.T) {
	rec := moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90)
	rec.StartTime = now.AddDate(0, 0, 8).Format(time.RFC3339)
	partner := moneylineRecord("Team X", "Team Y", "bookb", 1.95, 2.05)
	partner.StartTime = rec.StartTime

	e := New(testConfig(), zap.NewNop())
	res := e.Analyze(context.Background(), now, []types.RawRecord{rec, partner})

	if res.Games != 0 || len(res.EV) != 0 || len(res.Arbitrage) != 0 {
		t.Errorf("8-days-ahead game surfaced: %d games, %d EV, %d arb",
			res.Games, len(res.EV), len(res.Arbitrage))
	}
}

func TestAnalyze_CancelledContextReturnsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []types.RawRecord{
		moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90),
		moneylineRecord("Team X", "Team Y", "bookb", 1.95, 2.05),
	}

	e := New(testConfig(), zap.NewNop())
	res := e.Analyze(ctx, now, records)

	if !res.Partial {
		t.Fatal("expected partial result under cancelled context")
	}
	if len(res.EV) != 0 || len(res.Arbitrage) != 0 {
		t.Errorf("cancelled-before-start batch should carry no opportunities")
	}
	// The normalizer output is still valid bookkeeping.
	if res.Quotes == 0 {
		t.Error("quote count should reflect normalized input")
	}
}

func TestAnalyze_SharedQuotaAcrossKinds(t *testing.T) {
	cfg := testConfig()
	cfg.MaxOppsPerGame = 1

	records := []types.RawRecord{
		moneylineRecord("Team X", "Team Y", "booka", 2.10, 1.90),
		moneylineRecord("Team X", "Team Y", "bookb", 1.95, 2.05),
	}

	e := New(cfg, zap.NewNop())
	res := e.Analyze(context.Background(), now, records)

	if len(res.EV)+len(res.Arbitrage) > 1 {
		t.Errorf("per-game cap of 1 exceeded: %d EV + %d arb",
			len(res.EV), len(res.Arbitrage))
	}
}
