package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/entities"
)

type (
	// ItemAggregate is the slice of an inventory row that statistics
	// derivations need.
	ItemAggregate struct {
		Category     string
		Quantity     decimal.Decimal
		Price        decimal.Decimal
		PurchaseDate *time.Time
	}

	StatsRepository interface {
		CountItems(ctx context.Context) (int64, error)
		CountAvailableItems(ctx context.Context) (int64, error)
		GetItemAggregates(ctx context.Context) ([]ItemAggregate, error)
		GetReceiptTotals(ctx context.Context) ([]decimal.Decimal, error)
	}

	statsRepository struct {
		db *gorm.DB
	}
)

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountAvailableItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).
		Where("availability = ?", entities.AvailabilityAvailable).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) GetItemAggregates(ctx context.Context) ([]ItemAggregate, error) {
	var rows []ItemAggregate
	if err := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).
		Select("category", "quantity", "price", "purchase_date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) GetReceiptTotals(ctx context.Context) ([]decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Pluck("total", &totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
