// Package usecase はヒストリカルデータのダウンロード処理を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"history_loader/internal/feature/history/domain"
	"history_loader/internal/feature/history/domain/entity"
	"history_loader/internal/shared/ratelimiter"
)

// MarketRepository はフィードからヒストリカルデータを取得するリポジトリのインターフェイスです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	FetchHistory(ctx context.Context, req entity.HistoryRequest) (string, error)
}

// HistoryStore はクリーニング済みデータを銘柄ごとに保存します。
type HistoryStore interface {
	Save(ctx context.Context, symbol, data string) (string, error)
}

// BarRepository はパース済みの足データを永続化します。
type BarRepository interface {
	UpsertBatch(ctx context.Context, bars []entity.Bar) error
}

// Summary は1回の実行における銘柄ごとの結果です。
type Summary struct {
	Saved  []string
	NoData []string
	Failed []string
}

// DownloadUsecase はフィードからデータを取得し、銘柄ごとのファイルに保存するユースケースです。
type DownloadUsecase struct {
	cfg         DownloadConfig
	market      MarketRepository
	store       HistoryStore
	bars        BarRepository // nil の場合はDB保存を行わない
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewDownloadUsecase は新しい DownloadUsecase を作成します。bars は nil でも構いません。
func NewDownloadUsecase(cfg DownloadConfig, market MarketRepository, store HistoryStore, bars BarRepository, rateLimiter ratelimiter.RateLimiterInterface) *DownloadUsecase {
	return &DownloadUsecase{cfg: cfg, market: market, store: store, bars: bars, rateLimiter: rateLimiter}
}

type outcome int

const (
	outcomeSaved outcome = iota
	outcomeNoData
	outcomeFailed
)

// downloadOne は1銘柄分のデータを取得して保存します。
// 返されるエラーは保存処理の失敗のみで、実行全体を中断させます。
func (du *DownloadUsecase) downloadOne(ctx context.Context, symbol string) (outcome, error) {
	req := du.cfg.Request(symbol)
	slog.Info("constructed request", "symbol", symbol, "request", req.Command())

	raw, err := du.market.FetchHistory(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrReceive):
		// 受信途中のエラーはそれまでに受け取ったデータで処理を続ける
		slog.Warn("receive failed, using partial response", "symbol", symbol, "bytes", len(raw), "error", err)
	default:
		slog.Error("failed to fetch history", "symbol", symbol, "error", err)
		return outcomeFailed, nil
	}
	slog.Info("received data", "symbol", symbol, "bytes", len(raw))

	if HasNoData(raw) {
		slog.Warn("no data available", "symbol", symbol)
		return outcomeNoData, nil
	}

	cleaned := Clean(raw)
	path, err := du.store.Save(ctx, symbol, cleaned)
	if err != nil {
		return outcomeFailed, fmt.Errorf("save %s: %w", symbol, err)
	}
	slog.Info("data saved", "symbol", symbol, "path", path)

	if du.bars != nil {
		du.storeBars(ctx, symbol, cleaned)
	}
	return outcomeSaved, nil
}

// storeBars はDBへの保存を行います。失敗しても処理は継続します。
func (du *DownloadUsecase) storeBars(ctx context.Context, symbol, cleaned string) {
	bars, errs := ParseBars(symbol, du.cfg.Interval, cleaned)
	if len(errs) > 0 {
		slog.Warn("skipped malformed lines", "symbol", symbol, "count", len(errs), "first", errs[0])
	}
	if err := du.bars.UpsertBatch(ctx, bars); err != nil {
		slog.Error("failed to store bars", "symbol", symbol, "error", err)
		return
	}
	slog.Info("bars stored", "symbol", symbol, "count", len(bars))
}

// DownloadAll は設定された全銘柄を順番に処理します。
// 1つの銘柄で取得に失敗しても次の銘柄へ進みますが、ファイル保存の失敗は即座に返します。
func (du *DownloadUsecase) DownloadAll(ctx context.Context) (Summary, error) {
	var sum Summary
	for _, s := range du.cfg.Symbols {
		du.rateLimiter.WaitIfNeeded()
		res, err := du.downloadOne(ctx, s)
		if err != nil {
			sum.Failed = append(sum.Failed, s)
			return sum, err
		}
		switch res {
		case outcomeSaved:
			sum.Saved = append(sum.Saved, s)
		case outcomeNoData:
			sum.NoData = append(sum.NoData, s)
		default:
			sum.Failed = append(sum.Failed, s)
		}
	}
	return sum, nil
}
