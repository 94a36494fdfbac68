package iqfeed

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"history_loader/internal/feature/history/domain"
	"history_loader/internal/feature/history/domain/entity"
)

var testRequest = entity.HistoryRequest{
	Symbol:   "IVV",
	Interval: "60",
	Start:    "20200101 000000",
	End:      "20250102 000000",
}

func TestHistoryMarket_FetchHistory_Success(t *testing.T) {
	t.Parallel()

	const response = "2024-01-02 09:32:00,476.0,475.0,475.5,475.8,2000,1000,12,\r\n" +
		"2024-01-02 09:31:00,475.5,474.9,475.0,475.5,1000,1000,10,\r\n" +
		"!ENDMSG!,\r\n"

	feed := startFakeFeed(t, func(conn net.Conn, request string) {
		_, _ = conn.Write([]byte(response))
		time.Sleep(2 * time.Second)
	})

	market := NewHistoryMarket(feed.config(t))
	raw, err := market.FetchHistory(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Equal(t, response, raw)
	assert.Equal(t, testRequest.Command()+"\r\n", <-feed.requests)
}

func TestHistoryMarket_FetchHistory_ConnectError(t *testing.T) {
	t.Parallel()

	market := NewHistoryMarket(closedPortConfig(t))
	raw, err := market.FetchHistory(context.Background(), testRequest)

	assert.Empty(t, raw)
	assert.True(t, errors.Is(err, domain.ErrConnect), "expected ErrConnect, got %v", err)
}

func TestHistoryMarket_FetchHistory_NoData(t *testing.T) {
	t.Parallel()

	feed := startFakeFeed(t, func(conn net.Conn, request string) {
		_, _ = conn.Write([]byte("E,!NO_DATA!,\r\n!ENDMSG!,\r\n"))
	})

	market := NewHistoryMarket(feed.config(t))
	raw, err := market.FetchHistory(context.Background(), testRequest)

	require.NoError(t, err)
	assert.Contains(t, raw, "E,!NO_DATA!,")
}

func TestHistoryMarket_FetchHistory_WaitsReadDelay(t *testing.T) {
	t.Parallel()

	feed := startFakeFeed(t, func(conn net.Conn, request string) {
		_, _ = conn.Write([]byte("!ENDMSG!,\r\n"))
	})
	cfg := feed.config(t)
	cfg.ReadDelay = 200 * time.Millisecond

	start := time.Now()
	_, err := NewHistoryMarket(cfg).FetchHistory(context.Background(), testRequest)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestHistoryMarket_FetchHistory_CanceledDuringDelay(t *testing.T) {
	t.Parallel()

	feed := startFakeFeed(t, func(conn net.Conn, request string) {
		time.Sleep(2 * time.Second)
	})
	cfg := feed.config(t)
	cfg.ReadDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := NewHistoryMarket(cfg).FetchHistory(ctx, testRequest)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
