package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/oddsline/oddsline/internal/engine"
	"github.com/oddsline/oddsline/internal/feed"
	"github.com/oddsline/oddsline/internal/storage"
	"github.com/oddsline/oddsline/pkg/config"
	"github.com/oddsline/oddsline/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis batch and print the report",
	Long: `Runs a single analysis batch and prints the report to stdout.

By default odds are fetched live for the configured sports. With
--file an archived quote snapshot is replayed instead, which makes
the batch fully reproducible.`,
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("file", "f", "", "Replay an archived quote snapshot instead of fetching")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	file, _ := cmd.Flags().GetString("file")

	var records []types.RawRecord
	if file != "" {
		records, err = storage.ReadArchive(file)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
	} else {
		records, err = fetchOnce(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
	}

	result := engine.New(cfg, logger).Analyze(cmd.Context(), time.Now(), records)

	console := storage.NewConsoleStorage(logger)
	err = console.StoreResult(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	return nil
}

func fetchOnce(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]types.RawRecord, error) {
	client := feed.NewClient(feed.Config{
		BaseURL:      cfg.OddsAPIURL,
		APIKey:       cfg.OddsAPIKey,
		Regions:      cfg.Regions,
		Timeout:      cfg.FeedTimeout,
		RateLimitRPS: cfg.FeedRateLimitRPS,
		Logger:       logger,
	})

	var records []types.RawRecord
	for _, sport := range cfg.Sports {
		sportRecords, err := client.FetchRecords(ctx, sport)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", sport, err)
		}
		records = append(records, sportRecords...)
	}

	return records, nil
}
