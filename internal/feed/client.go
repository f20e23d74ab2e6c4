// Package feed fetches quotes from the odds provider API and converts
// them into raw records for the engine. The provider marks absent
// fields rather than omitting events; conversion turns those into nil
// optionals so no sentinel values travel further.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Event is one fixture as returned by the provider.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's markets on an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one bet market with its outcome prices.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one priced outcome; Point is only set for spreads and totals.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Provider market keys.
const (
	marketH2H     = "h2h"
	marketSpreads = "spreads"
	marketTotals  = "totals"
)

// sportMarkets maps sport keys to the market sets worth requesting.
// Sports not listed get moneyline only.
var sportMarkets = map[string][]string{
	"americanfootball_nfl": {marketH2H, marketSpreads, marketTotals},
	"basketball_nba":       {marketH2H, marketSpreads, marketTotals},
	"baseball_mlb":         {marketH2H, marketTotals},
	"soccer_epl":           {marketH2H, marketSpreads, marketTotals},
	"soccer_la_liga":       {marketH2H, marketSpreads, marketTotals},
}

var defaultMarkets = []string{marketH2H}

// Config holds feed client configuration.
type Config struct {
	BaseURL      string
	APIKey       string
	Regions      []string
	Timeout      time.Duration
	RateLimitRPS float64
	Logger       *zap.Logger
}

// Client is an HTTP client for the odds provider.
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a new odds feed client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		regions: strings.Join(cfg.Regions, ","),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1),
		logger:  cfg.Logger,
	}
}

// FetchEvents fetches upcoming events with odds for one sport.
func (c *Client) FetchEvents(ctx context.Context, sport string) ([]Event, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	markets, ok := sportMarkets[sport]
	if !ok {
		markets = defaultMarkets
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.regions)
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")

	reqURL := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, sport, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(sport).Inc()
		return nil, fmt.Errorf("fetch odds for %s: %w", sport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	FetchDurationSeconds.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		FetchErrorsTotal.WithLabelValues(sport).Inc()
		return nil, fmt.Errorf("fetch odds for %s: status %d: %s", sport, resp.StatusCode, string(body))
	}

	var events []Event
	err = json.NewDecoder(resp.Body).Decode(&events)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(sport).Inc()
		return nil, fmt.Errorf("decode odds response: %w", err)
	}

	EventsFetchedTotal.WithLabelValues(sport).Add(float64(len(events)))
	c.logger.Debug("odds-fetched",
		zap.String("sport", sport),
		zap.Int("events", len(events)))

	return events, nil
}

// FetchRecords fetches one sport and flattens it to raw records, one
// per event/bookmaker pair.
func (c *Client) FetchRecords(ctx context.Context, sport string) ([]types.RawRecord, error) {
	events, err := c.FetchEvents(ctx, sport)
	if err != nil {
		return nil, err
	}

	return Convert(sport, events), nil
}
