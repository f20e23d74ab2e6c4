package feed

import (
	"context"
	"time"

	"github.com/oddsline/oddsline/pkg/cache"
	"github.com/oddsline/oddsline/pkg/types"
	"go.uber.org/zap"
)

// CachedClient wraps a Client with a short-TTL cache so repeated
// fetches of the same sport inside one TTL cost a single API call.
// Provider quota is the scarce resource here, not latency.
type CachedClient struct {
	client *Client
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient creates a caching wrapper around client.
func NewCachedClient(client *Client, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchRecords returns the cached records for a sport, fetching on miss.
func (c *CachedClient) FetchRecords(ctx context.Context, sport string) ([]types.RawRecord, error) {
	key := "odds:" + sport

	if value, found := c.cache.Get(key); found {
		if records, ok := value.([]types.RawRecord); ok {
			return records, nil
		}
	}

	records, err := c.client.FetchRecords(ctx, sport)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, records, c.ttl)

	return records, nil
}
