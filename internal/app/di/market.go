// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"history_loader/internal/feature/history/usecase"
	"history_loader/internal/platform/cache"
	"history_loader/internal/platform/iqfeed"
	infraredis "history_loader/internal/platform/redis"
)

// NewMarket creates the IQFeed history market, wrapped with the Redis cache when one is configured
// and reachable. The returned cleanup function releases the Redis client and is never nil.
func NewMarket(ctx context.Context) (usecase.MarketRepository, func()) {
	var market usecase.MarketRepository = iqfeed.NewHistoryMarket(iqfeed.LoadConfig())

	redisCfg := infraredis.LoadConfig()
	if !redisCfg.Enabled() {
		return market, func() {}
	}

	rdb, err := infraredis.NewRedisClient(ctx, redisCfg)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.")
		return market, func() {}
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	return cache.NewCachingMarketRepository(rdb, redisCfg.TTL, market, cache.DefaultNamespace), cleanup
}
