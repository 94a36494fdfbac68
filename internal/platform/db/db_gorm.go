// Package db はバー保存用のデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"history_loader/internal/feature/history/adapters"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// Config はデータベース接続設定です。Driver が空の場合はDB保存を行いません。
type Config struct {
	Driver  string        // "sqlite", "postgres", "mysql"
	DSN     string        // ドライバ固有の接続文字列
	Timeout time.Duration // 接続リトライの上限時間
}

// Enabled はDBが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Driver != ""
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:  os.Getenv("DB_DRIVER"),
		DSN:     os.Getenv("DB_DSN"),
		Timeout: 60 * time.Second,
	}
	if v, err := time.ParseDuration(os.Getenv("DB_CONNECT_TIMEOUT")); err == nil && v > 0 {
		cfg.Timeout = v
	}
	return cfg
}

// Opener はDSNからDB接続を開く関数です（テストで差し替え可能）。
type Opener func(dsn string) (*gorm.DB, error)

// BuildOpener はドライバ名に対応する Opener を返します。
func BuildOpener(driver string) (Opener, error) {
	var dial func(string) gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open
	case "postgres":
		dial = postgres.Open
	case "mysql":
		dial = gmysql.Open
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dial(dsn), &gorm.Config{})
	}, nil
}

// ConnectWithRetry は timeout を超えるまで retryInterval ごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Open はDBに接続し、bars テーブルをマイグレーションします。
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := BuildOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(cfg.DSN, cfg.Timeout, opener)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&adapters.BarModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
