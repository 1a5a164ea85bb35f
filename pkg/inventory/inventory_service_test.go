package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/internal/config"
	"pantry-planner/pkg/inventory"
)

type fakeInventoryRepository struct {
	items  map[int64]*entities.InventoryItem
	events []*entities.ConsumptionEvent
	nextID int64
}

func newFakeInventoryRepository() *fakeInventoryRepository {
	return &fakeInventoryRepository{
		items:  make(map[int64]*entities.InventoryItem),
		nextID: 1,
	}
}

func (f *fakeInventoryRepository) AddItem(_ context.Context, item *entities.InventoryItem) error {
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepository) GetItemByID(_ context.Context, id int64) (*entities.InventoryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeInventoryRepository) UpdateItem(_ context.Context, item *entities.InventoryItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeInventoryRepository) DeleteItem(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeInventoryRepository) GetItems(_ context.Context, onlyAvailable bool) ([]*entities.InventoryItem, error) {
	var out []*entities.InventoryItem
	for _, item := range f.items {
		if onlyAvailable && item.Availability != entities.AvailabilityAvailable {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeInventoryRepository) GetItemsExpiringBefore(_ context.Context, deadline time.Time) ([]*entities.InventoryItem, error) {
	var out []*entities.InventoryItem
	for _, item := range f.items {
		if item.Availability != entities.AvailabilityAvailable || item.ExpiryDate == nil {
			continue
		}
		if !item.ExpiryDate.After(deadline) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepository) Consume(_ context.Context, itemID int64, amount decimal.Decimal, usedDate time.Time, mealID *int64) (*entities.InventoryItem, bool, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, false, gorm.ErrRecordNotFound
	}

	f.events = append(f.events, &entities.ConsumptionEvent{
		ItemID:     itemID,
		UsedDate:   usedDate,
		UsedAmount: amount,
		MealID:     mealID,
	})

	clamped := false
	newQuantity := item.Quantity.Sub(amount)
	if newQuantity.IsNegative() {
		newQuantity = decimal.Zero
		clamped = true
	}
	item.Quantity = newQuantity
	if newQuantity.IsZero() {
		item.Availability = entities.AvailabilityUnavailable
	}
	return item, clamped, nil
}

func newInventoryService(repo inventory.InventoryRepository) inventory.InventoryService {
	store := config.NewStore(config.Config{})
	return inventory.NewInventoryService(repo, store)
}

func seedItem(repo *fakeInventoryRepository, name string, quantity float64) *entities.InventoryItem {
	item := &entities.InventoryItem{
		Name:         name,
		Quantity:     decimal.NewFromFloat(quantity),
		Unit:         entities.DefaultUnit,
		Price:        decimal.Zero,
		Availability: entities.AvailabilityAvailable,
	}
	_ = repo.AddItem(context.Background(), item)
	return item
}

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestCreateItem_AppliesDefaults(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)

	res, err := service.CreateItem(context.Background(), domain.CreateItemRequest{
		Name:     "Rice",
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.DefaultUnit, res.Unit)
	assert.Equal(t, entities.DefaultShop, res.Shop)
	assert.Equal(t, entities.AvailabilityAvailable, res.Availability)
	assert.NotEmpty(t, res.PurchaseDate)
}

func TestCreateItem_RequiresName(t *testing.T) {
	service := newInventoryService(newFakeInventoryRepository())

	_, err := service.CreateItem(context.Background(), domain.CreateItemRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrMissingName)
}

func TestUpdateItem_PartialUpdate(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Beans", 3)
	item.Category = "canned"

	res, err := service.UpdateItem(context.Background(), item.ID, domain.UpdateItemRequest{
		Name: strPtr("Black Beans"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Black Beans", res.Name)
	assert.Equal(t, "canned", res.Category)
	assert.Equal(t, 3.0, res.Quantity)
}

func TestUpdateItem_RejectsNegativeQuantity(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Beans", 3)

	_, err := service.UpdateItem(context.Background(), item.ID, domain.UpdateItemRequest{
		Quantity: floatPtr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateItem_NotFound(t *testing.T) {
	service := newInventoryService(newFakeInventoryRepository())

	_, err := service.UpdateItem(context.Background(), 99, domain.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItem_NotFound(t *testing.T) {
	service := newInventoryService(newFakeInventoryRepository())

	err := service.DeleteItem(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetItems_FiltersUnavailableByDefault(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	seedItem(repo, "Milk", 1)
	depleted := seedItem(repo, "Eggs", 0)
	depleted.Availability = entities.AvailabilityUnavailable

	visible, err := service.GetItems(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Milk", visible[0].Name)

	all, err := service.GetItems(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordConsumption_Deducts(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Milk", 5)

	res, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 2})
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.NewQuantity)
	assert.Equal(t, entities.AvailabilityAvailable, res.Availability)
	assert.False(t, res.Clamped)
	assert.Len(t, repo.events, 1)
}

func TestRecordConsumption_ExactDepletionFlipsAvailability(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Milk", 2)

	res, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 2})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.NewQuantity)
	assert.Equal(t, entities.AvailabilityUnavailable, res.Availability)
	assert.False(t, res.Clamped)
}

func TestRecordConsumption_OvershootClampsAtZero(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Milk", 1)

	res, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 5})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.NewQuantity)
	assert.Equal(t, entities.AvailabilityUnavailable, res.Availability)
	assert.True(t, res.Clamped)
}

func TestRecordConsumption_RepeatedCallsAccumulate(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Flour", 3)

	_, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 1})
	require.NoError(t, err)
	res, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.NewQuantity)
	assert.Len(t, repo.events, 2)
}

func TestRecordConsumption_RejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeInventoryRepository()
	service := newInventoryService(repo)
	item := seedItem(repo, "Milk", 5)

	_, err := service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = service.RecordConsumption(context.Background(), item.ID, domain.ConsumeRequest{Amount: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Empty(t, repo.events)
}

func TestRecordConsumption_NotFound(t *testing.T) {
	service := newInventoryService(newFakeInventoryRepository())

	_, err := service.RecordConsumption(context.Background(), 99, domain.ConsumeRequest{Amount: 1})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
