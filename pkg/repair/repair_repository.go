package repair

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/entities"
)

// danglingCondition matches items whose receipt reference is set but
// does not resolve to an existing receipt.
const danglingCondition = "receipt_id IS NOT NULL AND NOT EXISTS " +
	"(SELECT 1 FROM receipts WHERE receipts.id = inventory_items.receipt_id)"

type (
	RepairRepository interface {
		FindDangling(ctx context.Context) ([]*entities.InventoryItem, error)
		FindMissing(ctx context.Context) ([]*entities.InventoryItem, error)
		NullDanglingReferences(ctx context.Context) (int64, error)
		AdoptMissing(ctx context.Context, shopLabel string) (*entities.Receipt, int, error)
	}

	repairRepository struct {
		db *gorm.DB
	}
)

func NewRepairRepository(db *gorm.DB) RepairRepository {
	return &repairRepository{db: db}
}

func (r *repairRepository) FindDangling(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where(danglingCondition).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repairRepository) FindMissing(ctx context.Context) ([]*entities.InventoryItem, error) {
	var items []*entities.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("receipt_id IS NULL").
		Order("created_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// NullDanglingReferences clears unresolvable receipt references so a
// foreign key can be added afterwards. Re-running is a no-op.
func (r *repairRepository) NullDanglingReferences(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.InventoryItem{}).
		Where(danglingCondition).
		Update("receipt_id", nil)
	return result.RowsAffected, result.Error
}

// AdoptMissing creates one recovery receipt and reassigns every item
// without a receipt reference to it, all in one transaction. The receipt
// is dated from the earliest orphan's creation time and totalled from
// the orphans' price times quantity.
func (r *repairRepository) AdoptMissing(ctx context.Context, shopLabel string) (*entities.Receipt, int, error) {
	var receipt *entities.Receipt
	adopted := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orphans []*entities.InventoryItem
		if err := tx.Where("receipt_id IS NULL").
			Order("created_at asc, id asc").
			Find(&orphans).Error; err != nil {
			return err
		}
		if len(orphans) == 0 {
			return nil
		}

		purchaseDate := orphans[0].CreatedAt
		if purchaseDate.IsZero() {
			purchaseDate = time.Now()
		}

		receipt = &entities.Receipt{
			Shop:         shopLabel,
			PurchaseDate: purchaseDate.Truncate(24 * time.Hour),
			Total:        decimal.Zero,
		}
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}

		total := decimal.Zero
		ids := make([]int64, 0, len(orphans))
		for _, item := range orphans {
			total = total.Add(item.Price.Mul(item.Quantity))
			ids = append(ids, item.ID)
		}

		if err := tx.Model(&entities.InventoryItem{}).
			Where("id IN ?", ids).
			Update("receipt_id", receipt.ID).Error; err != nil {
			return err
		}

		receipt.Total = total.Round(2)
		adopted = len(orphans)
		return tx.Model(receipt).Update("total", receipt.Total).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return receipt, adopted, nil
}
