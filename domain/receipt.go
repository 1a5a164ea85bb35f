package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessIngestReceipt    = "receipt ingested successfully"
	MessageSuccessGetReceipts      = "receipts retrieved successfully"
	MessageSuccessGetReceiptDetail = "receipt detail retrieved successfully"
	MessageSuccessUploadImage      = "receipt image uploaded successfully"

	MessageFailedIngestReceipt    = "failed to ingest receipt"
	MessageFailedGetReceipts      = "failed to retrieve receipts"
	MessageFailedGetReceiptDetail = "failed to retrieve receipt detail"
	MessageFailedUploadImage      = "failed to upload receipt image"

	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrEmptyReceipt        = errors.New("receipt must contain at least one item")
	ErrInvalidPurchaseDate = errors.New("invalid purchase date")
	ErrMissingItemName     = errors.New("item name is required")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
	ErrInvalidPrice        = errors.New("price must not be negative")
)

type (
	ReceiptItemRequest struct {
		Name        string   `json:"name" validate:"required"`
		Quantity    *float64 `json:"quantity" validate:"omitempty"`
		Price       *float64 `json:"price" validate:"omitempty"`
		Unit        string   `json:"unit" validate:"omitempty"`
		Category    string   `json:"category" validate:"omitempty"`
		ExpiryDate  string   `json:"expiry_date" validate:"omitempty"`
		ProductCode string   `json:"product_code" validate:"omitempty"`
		VATRate     *int     `json:"vat_rate" validate:"omitempty"`
	}

	IngestReceiptRequest struct {
		Shop          string               `json:"shop" validate:"required"`
		PurchaseDate  string               `json:"purchase_date" validate:"required"`
		ReceiptNumber string               `json:"receipt_number" validate:"omitempty"`
		Items         []ReceiptItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	ReceiptResponse struct {
		ID            int64     `json:"id"`
		Shop          string    `json:"shop"`
		PurchaseDate  string    `json:"purchase_date"`
		ReceiptNumber string    `json:"receipt_number,omitempty"`
		Total         float64   `json:"total"`
		ImageURL      string    `json:"image_url,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	HistoryItemResponse struct {
		ID           int64   `json:"id"`
		ProductID    *int64  `json:"product_id,omitempty"`
		ProductName  string  `json:"product_name"`
		PurchaseDate string  `json:"purchase_date"`
		Quantity     float64 `json:"quantity"`
		Price        float64 `json:"price"`
		Shop         string  `json:"shop"`
		Category     string  `json:"category,omitempty"`
	}

	ReceiptDetailResponse struct {
		Receipt ReceiptResponse       `json:"receipt"`
		Items   []HistoryItemResponse `json:"items"`
	}
)
