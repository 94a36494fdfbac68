package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection and cache settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // lifetime of cached responses
}

// Enabled reports whether a Redis host is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Addr returns the host:port address.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

// LoadConfig reads Redis settings from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = v
	}
	if v, err := time.ParseDuration(os.Getenv("HISTORY_CACHE_TTL")); err == nil {
		cfg.TTL = v
	}
	return cfg
}

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
