package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"history_loader/internal/app/di"
	"history_loader/internal/feature/history/adapters"
	"history_loader/internal/feature/history/usecase"
	"history_loader/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}
	slog.SetDefault(newLogger(os.Getenv("LOG_LEVEL")))

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := usecase.LoadDownloadConfig()

	market, cleanup := di.NewMarket(ctx)
	defer cleanup()

	limiter := ratelimiter.NewRateLimiter(requestsPerMinute(), time.Minute)
	store := adapters.NewFileStore(cfg.SavePath)
	uc := usecase.NewDownloadUsecase(cfg, market, store, di.NewBarRepository(), limiter)

	sum, err := uc.DownloadAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("download finished: saved=%d no_data=%d failed=%d", len(sum.Saved), len(sum.NoData), len(sum.Failed))
	return nil
}

// requestsPerMinute は HISTORY_REQUESTS_PER_MINUTE を返します。未設定なら 0（無制限）です。
func requestsPerMinute() int {
	n, err := strconv.Atoi(os.Getenv("HISTORY_REQUESTS_PER_MINUTE"))
	if err != nil {
		return 0
	}
	return n
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
