package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseHistoryEntry is an append-only audit record of one purchased
// line item. ProductName is denormalized so the entry survives edits and
// deletions of the inventory item it originated with; neither ProductID
// nor ReceiptID is constrained by a foreign key.
type PurchaseHistoryEntry struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    *int64          `json:"product_id,omitempty"`
	ProductName  string          `gorm:"size:200" json:"product_name"`
	PurchaseDate time.Time       `gorm:"type:date" json:"purchase_date"`
	Quantity     decimal.Decimal `gorm:"type:numeric" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:numeric" json:"price"`
	Shop         string          `gorm:"size:100" json:"shop"`
	Category     string          `gorm:"size:100" json:"category"`
	ReceiptID    *int64          `json:"receipt_id,omitempty"`
}

func (PurchaseHistoryEntry) TableName() string {
	return "purchase_history"
}
