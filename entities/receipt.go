package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is one purchase event at a shop on a date. Total is computed
// once at ingestion time and stored; it is not recomputed when linked
// items are later edited.
type Receipt struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Shop          string          `gorm:"size:100" json:"shop"`
	PurchaseDate  time.Time       `gorm:"type:date" json:"purchase_date"`
	ReceiptNumber string          `gorm:"size:100" json:"receipt_number,omitempty"`
	Total         decimal.Decimal `gorm:"type:numeric(10,2)" json:"total"`
	ImageURL      string          `json:"image_url,omitempty"`

	Timestamp
}

func (Receipt) TableName() string {
	return "receipts"
}
