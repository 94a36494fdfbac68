package adapters

import (
	"context"
	"time"

	"history_loader/internal/feature/history/domain/entity"
	"history_loader/internal/feature/history/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertBatchSize は1回のINSERTで送る行数です。
const upsertBatchSize = 500

type barGorm struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barGorm)(nil)

func NewBarRepository(db *gorm.DB) *barGorm {
	return &barGorm{db: db}
}

type BarModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:bar_sym_int_time,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:bar_sym_int_time,priority:2"`
	Time     time.Time `gorm:"not null;uniqueIndex:bar_sym_int_time,priority:3"`

	High         float64 `gorm:"not null"`
	Low          float64 `gorm:"not null"`
	Open         float64 `gorm:"not null"`
	Close        float64 `gorm:"not null"`
	TotalVolume  int64   `gorm:"not null;default:0"`
	PeriodVolume int64   `gorm:"not null;default:0"`
	Trades       int64   `gorm:"not null;default:0"`
}

func (BarModel) TableName() string {
	return "bars"
}

func toModel(e entity.Bar) BarModel {
	return BarModel{
		Symbol:       e.Symbol,
		Interval:     e.Interval,
		Time:         e.Time,
		High:         e.High,
		Low:          e.Low,
		Open:         e.Open,
		Close:        e.Close,
		TotalVolume:  e.TotalVolume,
		PeriodVolume: e.PeriodVolume,
		Trades:       e.Trades,
	}
}

func (r *barGorm) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]BarModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"high", "low", "open", "close", "total_volume", "period_volume", "trades"}),
	}).CreateInBatches(&ms, upsertBatchSize).Error
}
