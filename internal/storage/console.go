package storage

import (
	"context"
	"fmt"

	"github.com/oddsline/oddsline/internal/arbitrage"
	"github.com/oddsline/oddsline/internal/engine"
	"go.uber.org/zap"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreResult pretty-prints the batch report to console.
func (c *ConsoleStorage) StoreResult(ctx context.Context, result *engine.Result) error {
	fmt.Println("\n" + rule)
	fmt.Printf("📋 BATCH REPORT  %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println(rule)
	fmt.Printf("Games:    %d\n", result.Games)
	fmt.Printf("Quotes:   %d\n", result.Quotes)
	if result.Partial {
		fmt.Printf("⚠️  PARTIAL: batch cancelled before all games were analyzed\n")
	}

	c.printEV(result)
	c.printArbitrage(result)
	fmt.Println(rule)

	return nil
}

func (c *ConsoleStorage) printEV(result *engine.Result) {
	fmt.Println(rule)
	fmt.Printf("📈 POSITIVE EV BETS (%d)\n", len(result.EV))
	if len(result.EV) == 0 {
		fmt.Println("  none")
		return
	}

	for _, opp := range result.EV {
		fmt.Printf("  %-28s %-9s %-14s %-12s odds %5.2f  EV %+6.2f%%  fair %.1f%%\n",
			opp.GameKey,
			opp.Market,
			opp.Descriptor,
			opp.Bookmaker,
			opp.Odds,
			opp.EV*100,
			opp.FairProbability*100)
	}
}

func (c *ConsoleStorage) printArbitrage(result *engine.Result) {
	fmt.Println(rule)
	fmt.Printf("🎯 RISK-FREE COMBINATIONS (%d)\n", len(result.Arbitrage))
	if len(result.Arbitrage) == 0 {
		fmt.Println("  none")
		return
	}

	for _, opp := range result.Arbitrage {
		label := "ARBITRAGE"
		if opp.Kind == arbitrage.KindHedge {
			label = "HEDGE"
		}
		fmt.Printf("  [%s] %s %s (%s)  sum %.4f  profit $%.2f (%.2f%%)\n",
			label, opp.GameKey, opp.Market, opp.EventDate,
			opp.PriceSum, opp.Profit, opp.ProfitPct*100)
		for i := range opp.Legs {
			leg := &opp.Legs[i]
			fmt.Printf("    stake $%8.2f on %-16s @ %.2f  (%s)\n",
				leg.Stake, leg.Descriptor(), leg.Odds, leg.Bookmaker)
		}
		fmt.Printf("    invest $%.2f, payout $%.2f\n", opp.Investment, opp.Payout)
	}
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
