package usecase

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultDownloadConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultDownloadConfig()

	if len(cfg.Symbols) != 29 {
		t.Errorf("expected 29 default symbols, got %d", len(cfg.Symbols))
	}
	if cfg.Symbols[0] != "IVV" || cfg.Symbols[len(cfg.Symbols)-1] != "SOXL" {
		t.Errorf("unexpected symbol order: %v", cfg.Symbols)
	}
	if cfg.Interval != "60" || cfg.Start != "20200101 000000" || cfg.End != "20250102 000000" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.SavePath) != "etf" {
		t.Errorf("unexpected save path %q", cfg.SavePath)
	}

	// 返されたスライスを変更してもデフォルトに影響しないこと
	cfg.Symbols[0] = "changed"
	if DefaultDownloadConfig().Symbols[0] != "IVV" {
		t.Error("default symbols were mutated")
	}
}

func TestLoadDownloadConfig(t *testing.T) {
	t.Setenv("HISTORY_SYMBOLS", " SPY, QQQ ,,DIA ")
	t.Setenv("HISTORY_INTERVAL", "300")
	t.Setenv("HISTORY_START", "20240101 000000")
	t.Setenv("HISTORY_END", "20240201 000000")
	t.Setenv("HISTORY_SAVE_PATH", "/tmp/history")

	cfg := LoadDownloadConfig()

	if want := []string{"SPY", "QQQ", "DIA"}; !reflect.DeepEqual(cfg.Symbols, want) {
		t.Errorf("Symbols = %v, want %v", cfg.Symbols, want)
	}
	if cfg.Interval != "300" || cfg.Start != "20240101 000000" || cfg.End != "20240201 000000" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.SavePath != "/tmp/history" {
		t.Errorf("SavePath = %q", cfg.SavePath)
	}
}

func TestDownloadConfig_Request(t *testing.T) {
	t.Parallel()

	cfg := DownloadConfig{Interval: "60", Start: "20200101 000000", End: "20250102 000000"}

	req := cfg.Request("GLD")

	if got, want := req.Command(), "HIT,GLD,60,20200101 000000,20250102 000000,0,,,,,,"; got != want {
		t.Errorf("Command() = %q, want %q", got, want)
	}
}
