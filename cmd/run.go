package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/oddsline/oddsline/internal/app"
	"github.com/oddsline/oddsline/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the odds analysis service",
	Long: `Starts the oddsline service, which will:
1. Poll bookmaker odds for the configured sports
2. Estimate fair probabilities by removing the overround
3. Report positive EV bets and risk-free combinations
4. Serve results over HTTP and websocket

Use --sport to analyze only one sport key for debugging.`,
	RunE: runService,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("sport", "s", "", "Analyze only a single sport key (for debugging)")
}

func runService(cmd *cobra.Command, args []string) error {
	err := godotenv.Load()
	if err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	sport, _ := cmd.Flags().GetString("sport")
	opts := &app.Options{
		SingleSport: sport,
	}

	application, err := app.New(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
