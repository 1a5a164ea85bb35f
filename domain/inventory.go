package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateItem  = "inventory item created successfully"
	MessageSuccessUpdateItem  = "inventory item updated successfully"
	MessageSuccessDeleteItem  = "inventory item deleted successfully"
	MessageSuccessGetItems    = "inventory items retrieved successfully"
	MessageSuccessConsumption = "consumption recorded successfully"
	MessageSuccessSendDigest  = "expiry digest sent successfully"

	MessageFailedCreateItem  = "failed to create inventory item"
	MessageFailedUpdateItem  = "failed to update inventory item"
	MessageFailedDeleteItem  = "failed to delete inventory item"
	MessageFailedGetItems    = "failed to retrieve inventory items"
	MessageFailedConsumption = "failed to record consumption"
	MessageFailedSendDigest  = "failed to send expiry digest"

	ErrItemNotFound      = errors.New("inventory item not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrMissingName       = errors.New("name is required")
)

type (
	CreateItemRequest struct {
		Name       string   `json:"name" validate:"required"`
		Category   string   `json:"category" validate:"omitempty"`
		Quantity   float64  `json:"quantity" validate:"required,gt=0"`
		Unit       string   `json:"unit" validate:"omitempty"`
		Price      *float64 `json:"price" validate:"omitempty,gte=0"`
		ExpiryDate string   `json:"expiry_date" validate:"omitempty"`
		IsFrozen   bool     `json:"is_frozen"`
		Shop       string   `json:"shop" validate:"omitempty"`
	}

	UpdateItemRequest struct {
		Name       *string  `json:"name" validate:"omitempty"`
		Category   *string  `json:"category" validate:"omitempty"`
		Quantity   *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit       *string  `json:"unit" validate:"omitempty"`
		Price      *float64 `json:"price" validate:"omitempty,gte=0"`
		ExpiryDate *string  `json:"expiry_date" validate:"omitempty"`
		IsFrozen   *bool    `json:"is_frozen" validate:"omitempty"`
	}

	ConsumeRequest struct {
		Amount float64 `json:"amount" validate:"required"`
		MealID *int64  `json:"meal_id" validate:"omitempty"`
	}

	ConsumeResponse struct {
		ItemID       int64   `json:"item_id"`
		NewQuantity  float64 `json:"new_quantity"`
		Availability string  `json:"availability"`
		Clamped      bool    `json:"clamped"`
	}

	ItemResponse struct {
		ID           int64     `json:"id"`
		Name         string    `json:"name"`
		Category     string    `json:"category,omitempty"`
		Quantity     float64   `json:"quantity"`
		Unit         string    `json:"unit"`
		Price        float64   `json:"price"`
		ExpiryDate   string    `json:"expiry_date,omitempty"`
		Availability string    `json:"availability"`
		IsFrozen     bool      `json:"is_frozen"`
		Shop         string    `json:"shop"`
		PurchaseDate string    `json:"purchase_date,omitempty"`
		ReceiptID    *int64    `json:"receipt_id,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ExpiryDigestRequest struct {
		To   string `json:"to" validate:"required,email"`
		Days int    `json:"days" validate:"omitempty,min=1"`
	}
)
