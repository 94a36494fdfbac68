package usecase

import (
	"os"
	"path/filepath"
	"strings"

	"history_loader/internal/feature/history/domain/entity"
)

// defaultSymbols はダウンロード対象のデフォルト銘柄（ETF）です。
var defaultSymbols = []string{
	"IVV", "VOO", "QQQ", "VTI", "IWM", "EEM", "VEA", "EFA", "VWO", "GLD",
	"LQD", "TLT", "VNQ", "XLF", "XLV", "EWJ", "MCHI", "IYR", "DIA", "XLE",
	"XLY", "XLP", "XLI", "XLB", "XLRE", "XLK", "XLU", "XLC", "SOXL",
}

const (
	DefaultInterval = "60" // 秒単位
	DefaultStart    = "20200101 000000"
	DefaultEnd      = "20250102 000000"
)

// DownloadConfig はダウンロード処理の実行パラメータです。
type DownloadConfig struct {
	Symbols  []string // 対象銘柄
	Interval string   // 足の間隔（秒）
	Start    string   // 開始日時（entity.TimestampLayout）
	End      string   // 終了日時（entity.TimestampLayout）
	SavePath string   // 出力先ディレクトリ
}

// DefaultDownloadConfig はデフォルトのダウンロード設定を返します。
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		Symbols:  append([]string(nil), defaultSymbols...),
		Interval: DefaultInterval,
		Start:    DefaultStart,
		End:      DefaultEnd,
		SavePath: defaultSavePath(),
	}
}

// LoadDownloadConfig は環境変数でデフォルト設定を上書きします。
//
//   - HISTORY_SYMBOLS: カンマ区切りの銘柄リスト
//   - HISTORY_INTERVAL, HISTORY_START, HISTORY_END, HISTORY_SAVE_PATH
func LoadDownloadConfig() DownloadConfig {
	cfg := DefaultDownloadConfig()
	if v := os.Getenv("HISTORY_SYMBOLS"); v != "" {
		cfg.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("HISTORY_INTERVAL"); v != "" {
		cfg.Interval = v
	}
	if v := os.Getenv("HISTORY_START"); v != "" {
		cfg.Start = v
	}
	if v := os.Getenv("HISTORY_END"); v != "" {
		cfg.End = v
	}
	if v := os.Getenv("HISTORY_SAVE_PATH"); v != "" {
		cfg.SavePath = v
	}
	return cfg
}

// Request は指定銘柄のリクエストを生成します。
func (c DownloadConfig) Request(symbol string) entity.HistoryRequest {
	return entity.HistoryRequest{
		Symbol:   symbol,
		Interval: c.Interval,
		Start:    c.Start,
		End:      c.End,
	}
}

func splitSymbols(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("history", "etf")
	}
	return filepath.Join(home, "Desktop", "history", "etf")
}
