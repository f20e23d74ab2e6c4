package storage

import (
	"context"
	"database/sql"
	"fmt"

	json "github.com/goccy/go-json"
	_ "github.com/lib/pq"
	"github.com/oddsline/oddsline/internal/arbitrage"
	"github.com/oddsline/oddsline/internal/engine"
	"github.com/oddsline/oddsline/internal/ev"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreResult stores both opportunity lists of one batch.
func (p *PostgresStorage) StoreResult(ctx context.Context, result *engine.Result) error {
	for _, opp := range result.EV {
		err := p.storeEV(ctx, opp)
		if err != nil {
			return err
		}
	}

	for _, opp := range result.Arbitrage {
		err := p.storeArbitrage(ctx, opp)
		if err != nil {
			return err
		}
	}

	p.logger.Debug("batch-stored",
		zap.Int("ev_opportunities", len(result.EV)),
		zap.Int("arb_opportunities", len(result.Arbitrage)))

	return nil
}

func (p *PostgresStorage) storeEV(ctx context.Context, opp *ev.Opportunity) error {
	query := `
		INSERT INTO ev_opportunities (
			id, sport, game_key, market, bookmaker, descriptor,
			odds, expected_value, fair_probability, start_time
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		opp.ID,
		opp.Sport,
		opp.GameKey,
		string(opp.Market),
		opp.Bookmaker,
		opp.Descriptor,
		opp.Odds,
		opp.EV,
		opp.FairProbability,
		opp.StartTime,
	)
	if err != nil {
		return fmt.Errorf("insert ev opportunity: %w", err)
	}

	return nil
}

func (p *PostgresStorage) storeArbitrage(ctx context.Context, opp *arbitrage.Opportunity) error {
	legs, err := json.Marshal(opp.Legs)
	if err != nil {
		return fmt.Errorf("marshal legs: %w", err)
	}

	query := `
		INSERT INTO arbitrage_opportunities (
			id, kind, sport, game_key, market, event_date, legs,
			price_sum, investment, payout, profit, profit_pct,
			start_time, detected_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = p.db.ExecContext(ctx, query,
		opp.ID,
		string(opp.Kind),
		opp.Sport,
		opp.GameKey,
		string(opp.Market),
		opp.EventDate,
		legs,
		opp.PriceSum,
		opp.Investment,
		opp.Payout,
		opp.Profit,
		opp.ProfitPct,
		opp.StartTime,
		opp.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("insert arbitrage opportunity: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
