package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/entities"
)

type (
	InventoryRepository interface {
		AddItem(ctx context.Context, item *entities.InventoryItem) error
		GetItemByID(ctx context.Context, id int64) (*entities.InventoryItem, error)
		UpdateItem(ctx context.Context, item *entities.InventoryItem) error
		DeleteItem(ctx context.Context, id int64) error
		GetItems(ctx context.Context, onlyAvailable bool) ([]*entities.InventoryItem, error)
		GetItemsExpiringBefore(ctx context.Context, deadline time.Time) ([]*entities.InventoryItem, error)
		Consume(ctx context.Context, itemID int64, amount decimal.Decimal, usedDate time.Time, mealID *int64) (*entities.InventoryItem, bool, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) AddItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, id int64) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, item *entities.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.InventoryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) GetItems(ctx context.Context, onlyAvailable bool) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	query := r.db.WithContext(ctx).Order("id desc")
	if onlyAvailable {
		query = query.Where("availability = ?", entities.AvailabilityAvailable)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) GetItemsExpiringBefore(ctx context.Context, deadline time.Time) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("availability = ? AND expiry_date IS NOT NULL AND expiry_date <= ?",
			entities.AvailabilityAvailable, deadline).
		Order("expiry_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Consume appends a consumption event and applies the deduction in one
// transaction. The quantity is clamped at zero rather than rejected when
// the amount exceeds what remains; availability flips exactly when the
// quantity reaches zero. The returned flag reports whether clamping
// occurred.
func (r *inventoryRepository) Consume(ctx context.Context, itemID int64, amount decimal.Decimal, usedDate time.Time, mealID *int64) (*entities.InventoryItem, bool, error) {
	var item entities.InventoryItem
	clamped := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return err
		}

		event := &entities.ConsumptionEvent{
			ItemID:     item.ID,
			UsedDate:   usedDate,
			UsedAmount: amount,
			MealID:     mealID,
		}
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		newQuantity := item.Quantity.Sub(amount)
		if newQuantity.IsNegative() {
			newQuantity = decimal.Zero
			clamped = true
		}

		item.Quantity = newQuantity
		if newQuantity.IsZero() {
			item.Availability = entities.AvailabilityUnavailable
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, false, err
	}

	return &item, clamped, nil
}
