// Package cache provides caching implementations for usecase interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"crypto_dashboard/internal/feature/marketdata/domain/entity"
)

// SummarySource is the market data surface the decorator wraps.
type SummarySource interface {
	GetHistoricalData(ctx context.Context, symbol, market string, forceUpdate bool) []entity.EnrichedCandle
	GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *entity.MarketSummary
	GetMultiSummary(ctx context.Context, symbols []string, forceUpdate bool) map[string]*entity.MarketSummary
}

// CachingSummarySource decorates a SummarySource with short-lived Redis
// caching of computed summaries. It implements the decorator pattern,
// transparently adding caching without modifying the underlying source.
// Candle series are not cached here: the persistence tiers already gate them
// by freshness.
type CachingSummarySource struct {
	inner     SummarySource
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSummarySource decorates a SummarySource with Redis caching.
// If ttl is 0, it defaults to 60 seconds. If namespace is empty, it uses
// "summary".
func NewCachingSummarySource(rdb *redis.Client, ttl time.Duration, inner SummarySource, namespace string) *CachingSummarySource {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if namespace == "" {
		namespace = "summary"
	}
	return &CachingSummarySource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetHistoricalData passes through to the underlying source.
func (c *CachingSummarySource) GetHistoricalData(ctx context.Context, symbol, market string, forceUpdate bool) []entity.EnrichedCandle {
	return c.inner.GetHistoricalData(ctx, symbol, market, forceUpdate)
}

// GetMarketSummary retrieves a summary, checking the cache first. A forced
// update bypasses and invalidates the cached entry.
func (c *CachingSummarySource) GetMarketSummary(ctx context.Context, symbol string, forceUpdate bool) *entity.MarketSummary {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetMarketSummary(ctx, symbol, forceUpdate)
	}

	key := c.cacheKey(symbol)

	if forceUpdate {
		_ = c.rdb.Del(ctx, key).Err()
	} else if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.MarketSummary
		if err := json.Unmarshal(b, &out); err == nil {
			return &out
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out := c.inner.GetMarketSummary(ctx, symbol, forceUpdate)
	if out == nil {
		return nil
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out
}

// GetMultiSummary computes summaries symbol by symbol so each entry shares
// the single-symbol cache.
func (c *CachingSummarySource) GetMultiSummary(ctx context.Context, symbols []string, forceUpdate bool) map[string]*entity.MarketSummary {
	out := make(map[string]*entity.MarketSummary, len(symbols))
	for _, s := range symbols {
		out[s] = c.GetMarketSummary(ctx, s, forceUpdate)
	}
	return out
}

// cacheKey generates the cache key for one symbol's summary.
func (c *CachingSummarySource) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
