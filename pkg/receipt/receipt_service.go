package receipt

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/utils/storage"
)

type (
	ReceiptService interface {
		IngestReceipt(ctx context.Context, req domain.IngestReceiptRequest) (domain.ReceiptResponse, error)
		GetReceipts(ctx context.Context, limit int) ([]domain.ReceiptResponse, error)
		GetReceiptDetail(ctx context.Context, id int64) (domain.ReceiptDetailResponse, error)
		UploadReceiptImage(ctx context.Context, id int64, file *multipart.FileHeader) (string, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		s3                storage.AwsS3
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		s3:                s3,
	}
}

// IngestReceipt validates every line item before anything is written, so
// a malformed item fails the whole call with no partial receipt. Item
// problems are collected and reported together.
func (s *receiptService) IngestReceipt(ctx context.Context, req domain.IngestReceiptRequest) (domain.ReceiptResponse, error) {
	purchaseDate, err := time.Parse(domain.DateLayout, req.PurchaseDate)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrInvalidPurchaseDate
	}

	if len(req.Items) == 0 {
		return domain.ReceiptResponse{}, domain.ErrEmptyReceipt
	}

	items := make([]*entities.InventoryItem, 0, len(req.Items))
	history := make([]*entities.PurchaseHistoryEntry, 0, len(req.Items))

	var errs *multierror.Error
	for i, it := range req.Items {
		lineNo := i + 1

		if it.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", lineNo, domain.ErrMissingItemName))
			continue
		}

		quantity := decimal.NewFromInt(1)
		if it.Quantity != nil {
			quantity = decimal.NewFromFloat(*it.Quantity)
		}
		if quantity.IsNegative() {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", lineNo, domain.ErrInvalidQuantity))
			continue
		}

		price := decimal.Zero
		if it.Price != nil {
			price = decimal.NewFromFloat(*it.Price)
		}
		if price.IsNegative() {
			errs = multierror.Append(errs, fmt.Errorf("item %d: %w", lineNo, domain.ErrInvalidPrice))
			continue
		}

		var expiryDate *time.Time
		if it.ExpiryDate != "" {
			parsed, err := time.Parse(domain.DateLayout, it.ExpiryDate)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("item %d: %w", lineNo, domain.ErrInvalidExpiryDate))
				continue
			}
			expiryDate = &parsed
		}

		unit := it.Unit
		if unit == "" {
			unit = entities.DefaultUnit
		}

		ordinal := lineNo
		itemDate := purchaseDate
		items = append(items, &entities.InventoryItem{
			Name:         it.Name,
			Category:     it.Category,
			Quantity:     quantity,
			Unit:         unit,
			Price:        price,
			ExpiryDate:   expiryDate,
			Availability: entities.AvailabilityAvailable,
			Shop:         req.Shop,
			PurchaseDate: &itemDate,
			LineNo:       &ordinal,
			ProductCode:  it.ProductCode,
			VATRate:      it.VATRate,
		})

		history = append(history, &entities.PurchaseHistoryEntry{
			ProductName:  it.Name,
			PurchaseDate: purchaseDate,
			Quantity:     quantity,
			Price:        price,
			Shop:         req.Shop,
			Category:     it.Category,
		})
	}

	if err := errs.ErrorOrNil(); err != nil {
		return domain.ReceiptResponse{}, err
	}

	receipt := &entities.Receipt{
		Shop:          req.Shop,
		PurchaseDate:  purchaseDate,
		ReceiptNumber: req.ReceiptNumber,
		Total:         decimal.Zero,
	}

	if err := s.receiptRepository.CreateWithItems(ctx, receipt, items, history); err != nil {
		return domain.ReceiptResponse{}, fmt.Errorf("ingesting receipt: %w", err)
	}

	metrics.ReceiptsIngested.Inc()
	metrics.ItemsIngested.Add(float64(len(items)))

	return toReceiptResponse(receipt), nil
}

func (s *receiptService) GetReceipts(ctx context.Context, limit int) ([]domain.ReceiptResponse, error) {
	receipts, err := s.receiptRepository.GetReceipts(ctx, limit)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		response = append(response, toReceiptResponse(r))
	}
	return response, nil
}

func (s *receiptService) GetReceiptDetail(ctx context.Context, id int64) (domain.ReceiptDetailResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptDetailResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptDetailResponse{}, err
	}

	entries, err := s.receiptRepository.GetHistoryByReceiptID(ctx, id)
	if err != nil {
		return domain.ReceiptDetailResponse{}, err
	}

	items := make([]domain.HistoryItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.HistoryItemResponse{
			ID:           e.ID,
			ProductID:    e.ProductID,
			ProductName:  e.ProductName,
			PurchaseDate: e.PurchaseDate.Format(domain.DateLayout),
			Quantity:     e.Quantity.InexactFloat64(),
			Price:        e.Price.Round(2).InexactFloat64(),
			Shop:         e.Shop,
			Category:     e.Category,
		})
	}

	return domain.ReceiptDetailResponse{
		Receipt: toReceiptResponse(receipt),
		Items:   items,
	}, nil
}

func (s *receiptService) UploadReceiptImage(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrReceiptNotFound
		}
		return "", err
	}

	fileName := fmt.Sprintf("receipt-%d", receipt.ID)
	objectKey, err := s.s3.UploadFile(fileName, file, "receipts", storage.AllowImage...)
	if err != nil {
		return "", err
	}

	if receipt.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL)
		if existingKey != "" {
			_ = s.s3.DeleteFile(existingKey)
		}
	}

	receipt.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return "", err
	}

	return receipt.ImageURL, nil
}

func toReceiptResponse(r *entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:            r.ID,
		Shop:          r.Shop,
		PurchaseDate:  r.PurchaseDate.Format(domain.DateLayout),
		ReceiptNumber: r.ReceiptNumber,
		Total:         r.Total.Round(2).InexactFloat64(),
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
	}
}
