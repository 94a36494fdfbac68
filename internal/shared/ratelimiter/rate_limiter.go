// Package ratelimiter はフィードへのリクエスト頻度を制限します。
package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface は、リクエストの前に必要なだけ待機するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter は interval あたり limit 回までにリクエストを制限します。
// limit が 0 以下の場合は待機しません。
type RateLimiter struct {
	limit    int
	interval time.Duration
	count    int
	windowAt time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewRateLimiter は新しいRateLimiterを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windowAt: time.Now(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// WaitIfNeeded は現在のウィンドウで上限に達していれば次のウィンドウまで待機します。
func (rl *RateLimiter) WaitIfNeeded() {
	if rl.limit <= 0 || rl.interval <= 0 {
		return
	}

	now := rl.now()
	if now.Sub(rl.windowAt) >= rl.interval {
		rl.count = 0
		rl.windowAt = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return
	}

	if d := rl.interval - now.Sub(rl.windowAt); d > 0 {
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", d)
		rl.sleep(d)
	}
	rl.count = 1
	rl.windowAt = rl.now()
}
