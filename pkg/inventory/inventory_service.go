package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/config"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/utils/mailing"
)

const defaultDigestDays = 3

type (
	InventoryService interface {
		CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id int64, req domain.UpdateItemRequest) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, id int64) error
		GetItems(ctx context.Context, includeUnavailable bool) ([]domain.ItemResponse, error)
		RecordConsumption(ctx context.Context, itemID int64, req domain.ConsumeRequest) (domain.ConsumeResponse, error)
		SendExpiryDigest(ctx context.Context, req domain.ExpiryDigestRequest) (int, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		cfg                 *config.Store
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, cfg *config.Store) InventoryService {
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		cfg:                 cfg,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.ItemResponse, error) {
	if req.Name == "" {
		return domain.ItemResponse{}, domain.ErrMissingName
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(domain.DateLayout, req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}

	unit := req.Unit
	if unit == "" {
		unit = entities.DefaultUnit
	}
	shop := req.Shop
	if shop == "" {
		shop = entities.DefaultShop
	}

	price := decimal.Zero
	if req.Price != nil {
		price = decimal.NewFromFloat(*req.Price)
	}

	today := time.Now().Truncate(24 * time.Hour)
	item := &entities.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     decimal.NewFromFloat(req.Quantity),
		Unit:         unit,
		Price:        price,
		ExpiryDate:   expiryDate,
		Availability: entities.AvailabilityAvailable,
		IsFrozen:     req.IsFrozen,
		Shop:         shop,
		PurchaseDate: &today,
	}

	if err := s.inventoryRepository.AddItem(ctx, item); err != nil {
		return domain.ItemResponse{}, fmt.Errorf("creating item: %w", err)
	}

	return toItemResponse(item), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id int64, req domain.UpdateItemRequest) (domain.ItemResponse, error) {
	item, err := s.inventoryRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		quantity := decimal.NewFromFloat(*req.Quantity)
		if quantity.IsNegative() {
			return domain.ItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Price != nil {
		item.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate == "" {
			item.ExpiryDate = nil
		} else {
			parsed, err := time.Parse(domain.DateLayout, *req.ExpiryDate)
			if err != nil {
				return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
			}
			item.ExpiryDate = &parsed
		}
	}
	if req.IsFrozen != nil {
		item.IsFrozen = *req.IsFrozen
	}

	if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, fmt.Errorf("updating item %d: %w", id, err)
	}

	return toItemResponse(item), nil
}

// DeleteItem removes the current-state row only; history entries created
// at ingestion time are untouched.
func (s *inventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.inventoryRepository.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *inventoryService) GetItems(ctx context.Context, includeUnavailable bool) ([]domain.ItemResponse, error) {
	items, err := s.inventoryRepository.GetItems(ctx, !includeUnavailable)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}
	return response, nil
}

// RecordConsumption applies one deduction. Amounts above the remaining
// quantity drain the item to zero; Clamped is set so callers can surface
// the overshoot. Calls are deliberately not idempotent.
func (s *inventoryService) RecordConsumption(ctx context.Context, itemID int64, req domain.ConsumeRequest) (domain.ConsumeResponse, error) {
	if req.Amount <= 0 {
		return domain.ConsumeResponse{}, domain.ErrInvalidAmount
	}

	amount := decimal.NewFromFloat(req.Amount)
	today := time.Now().Truncate(24 * time.Hour)

	item, clamped, err := s.inventoryRepository.Consume(ctx, itemID, amount, today, req.MealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ConsumeResponse{}, domain.ErrItemNotFound
		}
		return domain.ConsumeResponse{}, fmt.Errorf("recording consumption for item %d: %w", itemID, err)
	}

	metrics.ConsumptionEvents.Inc()

	return domain.ConsumeResponse{
		ItemID:       item.ID,
		NewQuantity:  item.Quantity.InexactFloat64(),
		Availability: item.Availability,
		Clamped:      clamped,
	}, nil
}

// SendExpiryDigest mails a list of available items expiring within the
// requested window and returns how many were included.
func (s *inventoryService) SendExpiryDigest(ctx context.Context, req domain.ExpiryDigestRequest) (int, error) {
	days := req.Days
	if days <= 0 {
		days = defaultDigestDays
	}

	deadline := time.Now().AddDate(0, 0, days)
	items, err := s.inventoryRepository.GetItemsExpiringBefore(ctx, deadline)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h3>Items expiring within %d days</h3><ul>", days))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("<li>%s (%s %s), expires %s</li>",
			item.Name, item.Quantity.String(), item.Unit,
			item.ExpiryDate.Format(domain.DateLayout)))
	}
	b.WriteString("</ul>")

	subject := fmt.Sprintf("Pantry: %d item(s) expiring soon", len(items))
	if err := mailing.SendMail(s.cfg.Current(), req.To, subject, b.String()); err != nil {
		return 0, fmt.Errorf("sending expiry digest: %w", err)
	}

	return len(items), nil
}

func toItemResponse(item *entities.InventoryItem) domain.ItemResponse {
	res := domain.ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category,
		Quantity:     item.Quantity.InexactFloat64(),
		Unit:         item.Unit,
		Price:        item.Price.Round(2).InexactFloat64(),
		Availability: item.Availability,
		IsFrozen:     item.IsFrozen,
		Shop:         item.Shop,
		ReceiptID:    item.ReceiptID,
		CreatedAt:    item.CreatedAt,
	}
	if item.ExpiryDate != nil {
		res.ExpiryDate = item.ExpiryDate.Format(domain.DateLayout)
	}
	if item.PurchaseDate != nil {
		res.PurchaseDate = item.PurchaseDate.Format(domain.DateLayout)
	}
	return res
}
