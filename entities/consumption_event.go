package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionEvent records that some quantity of an inventory item was
// used. Events are written once and never mutated.
type ConsumptionEvent struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemID     int64           `gorm:"index" json:"item_id"`
	UsedDate   time.Time       `gorm:"type:date" json:"used_date"`
	UsedAmount decimal.Decimal `gorm:"type:numeric" json:"used_amount"`
	MealID     *int64          `json:"meal_id,omitempty"`
}

func (ConsumptionEvent) TableName() string {
	return "consumption_events"
}
