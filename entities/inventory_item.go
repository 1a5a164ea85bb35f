package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"

	DefaultUnit = "pcs"
	DefaultShop = "Pantry"
)

// InventoryItem is the current-state record of one purchased product.
// ReceiptID is nullable: rows imported before receipt linkage existed
// carry no reference until the repair tool adopts them.
type InventoryItem struct {
	ID           int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string           `gorm:"size:200" json:"name"`
	Category     string           `gorm:"size:100" json:"category"`
	Quantity     decimal.Decimal  `gorm:"type:numeric" json:"quantity"`
	Unit         string           `gorm:"size:20;default:pcs" json:"unit"`
	Price        decimal.Decimal  `gorm:"type:numeric" json:"price"`
	ExpiryDate   *time.Time       `gorm:"type:date" json:"expiry_date,omitempty"`
	Availability string           `gorm:"size:20" json:"availability"`
	IsFrozen     bool             `gorm:"default:false" json:"is_frozen"`
	Shop         string           `gorm:"size:100" json:"shop"`
	PurchaseDate *time.Time       `gorm:"type:date" json:"purchase_date,omitempty"`
	ReceiptID    *int64           `json:"receipt_id,omitempty"`
	LineNo       *int             `json:"line_no,omitempty"`
	ProductCode  string           `gorm:"size:100" json:"product_code,omitempty"`
	VATRate      *int             `json:"vat_rate,omitempty"`
	GrossTotal   *decimal.Decimal `gorm:"type:numeric(10,2)" json:"gross_total,omitempty"`

	Receipt *Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
	Timestamp
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
