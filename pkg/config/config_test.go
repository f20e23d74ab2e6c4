package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:          "8080",
		AllowedBookmakers: []string{"pinnacle", "fanduel"},
		MaxDaysAhead:      7,
		MinEVThreshold:    0.0,
		MaxEVThreshold:    0.15,
		MinArbProfit:      0.0,
		MaxOppsPerGame:    3,
		CapOrder:          CapOrderQuality,
		Sports:            []string{"americanfootball_nfl"},
		PollInterval:      300000000000, // 5m
		StorageMode:       "console",
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "inverted-ev-band",
			mutate:  func(c *Config) { c.MinEVThreshold = 0.2; c.MaxEVThreshold = 0.1 },
			wantMsg: "MIN_EV_THRESHOLD",
		},
		{
			name:    "zero-opportunity-cap",
			mutate:  func(c *Config) { c.MaxOppsPerGame = 0 },
			wantMsg: "MAX_OPPS_PER_GAME",
		},
		{
			name:    "negative-opportunity-cap",
			mutate:  func(c *Config) { c.MaxOppsPerGame = -1 },
			wantMsg: "MAX_OPPS_PER_GAME",
		},
		{
			name:    "negative-arb-floor",
			mutate:  func(c *Config) { c.MinArbProfit = -5 },
			wantMsg: "MIN_ARB_PROFIT",
		},
		{
			name:    "zero-days-ahead",
			mutate:  func(c *Config) { c.MaxDaysAhead = 0 },
			wantMsg: "MAX_DAYS_AHEAD",
		},
		{
			name:    "empty-bookmakers",
			mutate:  func(c *Config) { c.AllowedBookmakers = nil },
			wantMsg: "ALLOWED_BOOKMAKERS",
		},
		{
			name:    "bad-cap-order",
			mutate:  func(c *Config) { c.CapOrder = "random" },
			wantMsg: "CAP_ORDER",
		},
		{
			name:    "bad-storage-mode",
			mutate:  func(c *Config) { c.StorageMode = "redis" },
			wantMsg: "STORAGE_MODE",
		},
		{
			name:    "empty-sports",
			mutate:  func(c *Config) { c.Sports = nil },
			wantMsg: "SPORTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidate_EqualBandIsValid(t *testing.T) {
	// min == max is an allowed (degenerate) band, not an inversion.
	cfg := validConfig()
	cfg.MinEVThreshold = 0.05
	cfg.MaxEVThreshold = 0.05
	if err := cfg.Validate(); err != nil {
		t.Fatalf("equal thresholds should validate, got %v", err)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxDaysAhead != 7 {
		t.Errorf("MaxDaysAhead = %d, want 7", cfg.MaxDaysAhead)
	}
	if cfg.MaxOppsPerGame != 3 {
		t.Errorf("MaxOppsPerGame = %d, want 3", cfg.MaxOppsPerGame)
	}
	if cfg.MaxEVThreshold != 0.15 {
		t.Errorf("MaxEVThreshold = %v, want 0.15", cfg.MaxEVThreshold)
	}
	if cfg.CapOrder != CapOrderQuality {
		t.Errorf("CapOrder = %q, want %q", cfg.CapOrder, CapOrderQuality)
	}
}

func TestLoadFromEnv_ListParsing(t *testing.T) {
	t.Setenv("ALLOWED_BOOKMAKERS", "Pinnacle, FanDuel ,betmgm")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Pinnacle", "FanDuel", "betmgm"}
	if len(cfg.AllowedBookmakers) != len(want) {
		t.Fatalf("got %d bookmakers, want %d", len(cfg.AllowedBookmakers), len(want))
	}
	for i, b := range want {
		if cfg.AllowedBookmakers[i] != b {
			t.Errorf("bookmaker[%d] = %q, want %q", i, cfg.AllowedBookmakers[i], b)
		}
	}
}

func TestLoadFromEnv_InvalidRejectedBeforeAnyBatch(t *testing.T) {
	t.Setenv("MIN_EV_THRESHOLD", "0.5")
	t.Setenv("MAX_EV_THRESHOLD", "0.1")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("expected load to fail on inverted EV band")
	}
}
