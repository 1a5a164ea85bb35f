package domain

import (
	"errors"
)

// RecoveryShopLabel names the synthetic receipt created by the adoption
// repair so it is recognizable in receipt listings.
const RecoveryShopLabel = "Imported Items (Recovery)"

var (
	ErrDanglingReferences  = errors.New("dangling receipt references present, run repair first")
	ErrUnknownRepairPolicy = errors.New("unknown repair policy")
)

type (
	OrphanItem struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		ReceiptID *int64 `json:"receipt_id,omitempty"`
	}

	// OrphanReport separates the two orphan classes: Dangling items
	// reference a receipt that does not exist, Missing items carry no
	// reference at all. The two require different repairs.
	OrphanReport struct {
		Dangling []OrphanItem `json:"dangling"`
		Missing  []OrphanItem `json:"missing"`
	}

	AdoptionResult struct {
		ReceiptID    int64   `json:"receipt_id"`
		AdoptedCount int     `json:"adopted_count"`
		Total        float64 `json:"total"`
	}
)
