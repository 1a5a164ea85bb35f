package receipt

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/entities"
)

type (
	ReceiptRepository interface {
		CreateWithItems(ctx context.Context, receipt *entities.Receipt, items []*entities.InventoryItem, history []*entities.PurchaseHistoryEntry) error
		GetReceiptByID(ctx context.Context, id int64) (*entities.Receipt, error)
		GetReceipts(ctx context.Context, limit int) ([]*entities.Receipt, error)
		GetHistoryByReceiptID(ctx context.Context, receiptID int64) ([]*entities.PurchaseHistoryEntry, error)
		UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// CreateWithItems persists one receipt, its inventory items and its
// history entries as a single transaction. The receipt total is the sum
// of price times quantity over the given items, written back once all
// rows exist. A failure on any row rolls back every row.
func (r *receiptRepository) CreateWithItems(ctx context.Context, receipt *entities.Receipt, items []*entities.InventoryItem, history []*entities.PurchaseHistoryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for i := range items {
			items[i].ReceiptID = &receipt.ID
			if err := tx.Create(items[i]).Error; err != nil {
				return err
			}

			history[i].ProductID = &items[i].ID
			history[i].ReceiptID = &receipt.ID
			if err := tx.Create(history[i]).Error; err != nil {
				return err
			}

			total = total.Add(items[i].Price.Mul(items[i].Quantity))
		}

		receipt.Total = total.Round(2)
		return tx.Model(receipt).Update("total", receipt.Total).Error
	})
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id int64) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetReceipts(ctx context.Context, limit int) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt
	query := r.db.WithContext(ctx).Order("purchase_date desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *receiptRepository) GetHistoryByReceiptID(ctx context.Context, receiptID int64) ([]*entities.PurchaseHistoryEntry, error) {
	var entries []*entities.PurchaseHistoryEntry
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *receiptRepository) UpdateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}
