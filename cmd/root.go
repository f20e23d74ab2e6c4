package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "oddsline",
	Short: "Sports betting odds analyzer",
	Long: `Oddsline polls bookmaker odds, removes the overround to estimate
fair probabilities, and reports positive expected value bets and
cross-bookmaker risk-free combinations.

The service fetches decimal odds for the configured sports, analyzes
every upcoming game inside the look-ahead window, and serves the
results over HTTP and websocket.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
