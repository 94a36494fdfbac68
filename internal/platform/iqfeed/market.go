package iqfeed

import (
	"context"
	"log/slog"
	"time"

	"history_loader/internal/feature/history/domain/entity"
	"history_loader/internal/feature/history/usecase"
)

// HistoryMarket fetches interval history over a fresh lookup connection per request.
type HistoryMarket struct {
	cfg Config
}

// Compile-time check that HistoryMarket implements MarketRepository.
var _ usecase.MarketRepository = (*HistoryMarket)(nil)

// NewHistoryMarket creates a HistoryMarket for the given config.
func NewHistoryMarket(cfg Config) *HistoryMarket {
	return &HistoryMarket{cfg: cfg}
}

// FetchHistory performs one request/response exchange and returns the raw response text.
//
// The connection is always closed before returning. A send failure ends the
// exchange without reading. A receive failure returns the partial text with an
// error wrapping domain.ErrReceive.
func (m *HistoryMarket) FetchHistory(ctx context.Context, req entity.HistoryRequest) (string, error) {
	conn, err := Dial(ctx, m.cfg)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close iqfeed connection", "symbol", req.Symbol, "error", err)
		}
	}()

	if err := conn.Send(req.Command()); err != nil {
		return "", err
	}

	if err := wait(ctx, m.cfg.ReadDelay); err != nil {
		return "", err
	}

	return conn.Receive()
}

// wait pauses for d so the feed can buffer its response.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
