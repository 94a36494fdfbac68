package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.local")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("HISTORY_CACHE_TTL", "90m")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cache.local:6380", cfg.Addr())
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 90*time.Minute, cfg.TTL)
}

func TestConfig_Disabled(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	assert.False(t, cfg.Enabled())
	assert.Equal(t, ":6379", cfg.Addr())
}

func TestNewRedisClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Config{Host: host, Port: port})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
