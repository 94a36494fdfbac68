// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"history_loader/internal/feature/history/domain/entity"
	"history_loader/internal/feature/history/usecase"
)

const (
	DefaultTTL       = 24 * time.Hour
	DefaultNamespace = "history"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching of raw responses.
// Only complete responses with data are cached. Partial, failed and no-data fetches
// always go to the feed again.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "history".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchHistory returns the cached response for req, falling back to the inner repository.
func (c *CachingMarketRepository) FetchHistory(ctx context.Context, req entity.HistoryRequest) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchHistory(ctx, req)
	}

	key := c.cacheKey(req)

	// 1) Check cache
	raw, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		slog.Info("history cache hit", "symbol", req.Symbol, "key", key)
		return raw, nil
	case !errors.Is(err, redis.Nil):
		slog.Warn("history cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to the feed
	raw, err = c.inner.FetchHistory(ctx, req)
	if err != nil {
		return raw, err
	}

	// No-data answers are never cached.
	if usecase.HasNoData(raw) {
		return raw, nil
	}

	// 3) Store in cache (best effort)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("history cache write failed", "key", key, "error", err)
	}
	return raw, nil
}

// cacheKey generates a cache key for a specific request.
func (c *CachingMarketRepository) cacheKey(req entity.HistoryRequest) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		c.namespace,
		safe(req.Symbol),
		safe(req.Interval),
		safe(req.Start),
		safe(req.End),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
