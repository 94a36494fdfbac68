package di

import (
	"log/slog"

	"history_loader/internal/feature/history/adapters"
	"history_loader/internal/feature/history/usecase"
	infradb "history_loader/internal/platform/db"
)

// NewBarRepository opens the optional bar database. It returns nil when no
// driver is configured or the database cannot be reached.
func NewBarRepository() usecase.BarRepository {
	cfg := infradb.LoadConfigFromEnv()
	if !cfg.Enabled() {
		return nil
	}
	db, err := infradb.Open(cfg)
	if err != nil {
		slog.Warn("Database unavailable. Bars will not be stored.", "driver", cfg.Driver, "error", err)
		return nil
	}
	return adapters.NewBarRepository(db)
}
