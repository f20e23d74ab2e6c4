package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cap ordering strategies for the per-game opportunity quota.
const (
	CapOrderQuality = "quality" // keep the best EV/profit first
	CapOrderArrival = "arrival" // first-come-first-served, legacy behavior
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Engine
	AllowedBookmakers []string
	MaxDaysAhead      int
	MinEVThreshold    float64
	MaxEVThreshold    float64
	MinArbProfit      float64
	MaxOppsPerGame    int
	CapOrder          string

	// Odds feed
	OddsAPIURL       string
	OddsAPIKey       string
	Regions          []string
	Sports           []string
	PollInterval     time.Duration
	FeedTimeout      time.Duration
	FeedRateLimitRPS float64
	FeedCacheTTL     time.Duration

	// Feed circuit breaker
	BreakerFailureThreshold int
	BreakerCooldown         time.Duration

	// Storage
	StorageMode  string // "postgres" or "console"
	QuotesDir    string // raw quote CSV archive; empty disables
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Engine defaults
		AllowedBookmakers: getListOrDefault("ALLOWED_BOOKMAKERS",
			[]string{"pinnacle", "fanduel", "draftkings", "betmgm", "caesars", "bovada"}),
		MaxDaysAhead:   getIntOrDefault("MAX_DAYS_AHEAD", 7),
		MinEVThreshold: getFloat64OrDefault("MIN_EV_THRESHOLD", 0.0),
		MaxEVThreshold: getFloat64OrDefault("MAX_EV_THRESHOLD", 0.15),
		MinArbProfit:   getFloat64OrDefault("MIN_ARB_PROFIT", 0.0),
		MaxOppsPerGame: getIntOrDefault("MAX_OPPS_PER_GAME", 3),
		CapOrder:       getEnvOrDefault("CAP_ORDER", CapOrderQuality),

		// Odds feed defaults
		OddsAPIURL: getEnvOrDefault("ODDS_API_URL", "https://api.the-odds-api.com/v4"),
		OddsAPIKey: os.Getenv("ODDS_API_KEY"),
		Regions:    getListOrDefault("ODDS_REGIONS", []string{"us"}),
		Sports: getListOrDefault("SPORTS",
			[]string{"americanfootball_nfl", "baseball_mlb", "soccer_epl"}),
		PollInterval:     getDurationOrDefault("POLL_INTERVAL", 5*time.Minute),
		FeedTimeout:      getDurationOrDefault("FEED_TIMEOUT", 30*time.Second),
		FeedRateLimitRPS: getFloat64OrDefault("FEED_RATE_LIMIT_RPS", 1.0),
		FeedCacheTTL:     getDurationOrDefault("FEED_CACHE_TTL", 1*time.Minute),

		// Circuit breaker defaults
		BreakerFailureThreshold: getIntOrDefault("BREAKER_FAILURE_THRESHOLD", 3),
		BreakerCooldown:         getDurationOrDefault("BREAKER_COOLDOWN", 2*time.Minute),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		QuotesDir:    os.Getenv("QUOTES_DIR"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "oddsline"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "oddsline123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "oddsline"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are structurally valid.
// Invalid configuration is rejected here, before any batch runs.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if len(c.AllowedBookmakers) == 0 {
		return fmt.Errorf("ALLOWED_BOOKMAKERS cannot be empty")
	}

	if c.MaxDaysAhead <= 0 {
		return fmt.Errorf("MAX_DAYS_AHEAD must be positive, got %d", c.MaxDaysAhead)
	}

	if c.MinEVThreshold > c.MaxEVThreshold {
		return fmt.Errorf("MIN_EV_THRESHOLD %f exceeds MAX_EV_THRESHOLD %f",
			c.MinEVThreshold, c.MaxEVThreshold)
	}

	if c.MinArbProfit < 0 {
		return fmt.Errorf("MIN_ARB_PROFIT must be >= 0, got %f", c.MinArbProfit)
	}

	if c.MaxOppsPerGame <= 0 {
		return fmt.Errorf("MAX_OPPS_PER_GAME must be positive, got %d", c.MaxOppsPerGame)
	}

	if c.CapOrder != CapOrderQuality && c.CapOrder != CapOrderArrival {
		return fmt.Errorf("CAP_ORDER must be %q or %q, got %q",
			CapOrderQuality, CapOrderArrival, c.CapOrder)
	}

	if len(c.Sports) == 0 {
		return fmt.Errorf("SPORTS cannot be empty")
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}

	if c.StorageMode != "console" && c.StorageMode != "postgres" {
		return fmt.Errorf("STORAGE_MODE must be 'console' or 'postgres', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

func getListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
