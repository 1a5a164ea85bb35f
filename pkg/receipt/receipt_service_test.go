package receipt_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/entities"
	"pantry-planner/pkg/receipt"
)

type fakeReceiptRepository struct {
	receipts map[int64]*entities.Receipt
	items    []*entities.InventoryItem
	history  []*entities.PurchaseHistoryEntry
	nextID   int64
}

func newFakeReceiptRepository() *fakeReceiptRepository {
	return &fakeReceiptRepository{
		receipts: make(map[int64]*entities.Receipt),
		nextID:   1,
	}
}

func (f *fakeReceiptRepository) CreateWithItems(_ context.Context, r *entities.Receipt, items []*entities.InventoryItem, history []*entities.PurchaseHistoryEntry) error {
	r.ID = f.nextID
	f.nextID++
	f.receipts[r.ID] = r

	total := decimal.Zero
	for i := range items {
		items[i].ID = f.nextID
		f.nextID++
		items[i].ReceiptID = &r.ID
		f.items = append(f.items, items[i])

		history[i].ID = f.nextID
		f.nextID++
		history[i].ProductID = &items[i].ID
		history[i].ReceiptID = &r.ID
		f.history = append(f.history, history[i])

		total = total.Add(items[i].Price.Mul(items[i].Quantity))
	}
	r.Total = total.Round(2)
	return nil
}

func (f *fakeReceiptRepository) GetReceiptByID(_ context.Context, id int64) (*entities.Receipt, error) {
	r, ok := f.receipts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeReceiptRepository) GetReceipts(_ context.Context, limit int) ([]*entities.Receipt, error) {
	var out []*entities.Receipt
	for _, r := range f.receipts {
		out = append(out, r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReceiptRepository) GetHistoryByReceiptID(_ context.Context, receiptID int64) ([]*entities.PurchaseHistoryEntry, error) {
	var out []*entities.PurchaseHistoryEntry
	for _, e := range f.history {
		if e.ReceiptID != nil && *e.ReceiptID == receiptID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepository) UpdateReceipt(_ context.Context, r *entities.Receipt) error {
	f.receipts[r.ID] = r
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func ingestRequest(items ...domain.ReceiptItemRequest) domain.IngestReceiptRequest {
	return domain.IngestReceiptRequest{
		Shop:         "Corner Market",
		PurchaseDate: "2026-03-14",
		Items:        items,
	}
}

func TestIngestReceipt_ComputesTotalFromLines(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	res, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Milk", Quantity: floatPtr(2), Price: floatPtr(2.40)},
		domain.ReceiptItemRequest{Name: "Cheese", Quantity: floatPtr(1), Price: floatPtr(6.40)},
	))
	require.NoError(t, err)

	assert.Equal(t, 11.20, res.Total)
	assert.Equal(t, "Corner Market", res.Shop)
	assert.Equal(t, "2026-03-14", res.PurchaseDate)
	assert.Len(t, repo.items, 2)
	assert.Len(t, repo.history, 2)
}

func TestIngestReceipt_LinksItemsAndHistory(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	res, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Bread", Quantity: floatPtr(1), Price: floatPtr(3.50)},
		domain.ReceiptItemRequest{Name: "Butter", Quantity: floatPtr(1), Price: floatPtr(4.20)},
	))
	require.NoError(t, err)

	for i, item := range repo.items {
		require.NotNil(t, item.ReceiptID)
		assert.Equal(t, res.ID, *item.ReceiptID)
		require.NotNil(t, item.LineNo)
		assert.Equal(t, i+1, *item.LineNo)
		assert.Equal(t, entities.AvailabilityAvailable, item.Availability)

		entry := repo.history[i]
		require.NotNil(t, entry.ProductID)
		assert.Equal(t, item.ID, *entry.ProductID)
		assert.Equal(t, item.Name, entry.ProductName)
	}
}

func TestIngestReceipt_AppliesLineDefaults(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	_, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Salt"},
	))
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	item := repo.items[0]
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.Price.IsZero())
	assert.Equal(t, entities.DefaultUnit, item.Unit)
}

func TestIngestReceipt_BadLineWritesNothing(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	_, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Milk", Quantity: floatPtr(1), Price: floatPtr(2.40)},
		domain.ReceiptItemRequest{Name: "Eggs", Quantity: floatPtr(1), Price: floatPtr(-1)},
	))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Empty(t, repo.receipts)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.history)
}

func TestIngestReceipt_CollectsEveryLineError(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	_, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: ""},
		domain.ReceiptItemRequest{Name: "Flour", Quantity: floatPtr(-2)},
		domain.ReceiptItemRequest{Name: "Jam", ExpiryDate: "not-a-date"},
	))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingItemName)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
	assert.Empty(t, repo.receipts)
}

func TestIngestReceipt_RejectsBadPurchaseDate(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	req := ingestRequest(domain.ReceiptItemRequest{Name: "Milk"})
	req.PurchaseDate = "14/03/2026"

	_, err := service.IngestReceipt(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)
}

func TestIngestReceipt_RejectsEmptyReceipt(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	_, err := service.IngestReceipt(context.Background(), ingestRequest())
	assert.ErrorIs(t, err, domain.ErrEmptyReceipt)
}

func TestGetReceiptDetail_ReturnsHistorySnapshot(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	res, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Milk", Quantity: floatPtr(2), Price: floatPtr(2.40), Category: "dairy"},
	))
	require.NoError(t, err)

	detail, err := service.GetReceiptDetail(context.Background(), res.ID)
	require.NoError(t, err)

	assert.Equal(t, res.ID, detail.Receipt.ID)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Milk", detail.Items[0].ProductName)
	assert.Equal(t, 2.0, detail.Items[0].Quantity)
	assert.Equal(t, 2.40, detail.Items[0].Price)
	assert.Equal(t, "dairy", detail.Items[0].Category)
}

func TestGetReceiptDetail_SurvivesItemDeletion(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	res, err := service.IngestReceipt(context.Background(), ingestRequest(
		domain.ReceiptItemRequest{Name: "Milk", Quantity: floatPtr(1), Price: floatPtr(2.40)},
	))
	require.NoError(t, err)

	// history outlives the inventory row it originated with
	repo.items = nil

	detail, err := service.GetReceiptDetail(context.Background(), res.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Milk", detail.Items[0].ProductName)
}

func TestIngestReceipt_EndToEnd(t *testing.T) {
	repo := newFakeReceiptRepository()
	service := receipt.NewReceiptService(repo, nil)

	res, err := service.IngestReceipt(context.Background(), domain.IngestReceiptRequest{
		Shop:         "Test Shop",
		PurchaseDate: "2025-12-01",
		Items: []domain.ReceiptItemRequest{
			{Name: "Pasta", Quantity: floatPtr(2), Price: floatPtr(3.50)},
			{Name: "Sauce", Quantity: floatPtr(1), Price: floatPtr(4.20)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 11.20, res.Total)
	require.Len(t, repo.items, 2)
	for _, item := range repo.items {
		assert.Equal(t, entities.AvailabilityAvailable, item.Availability)
	}

	detail, err := service.GetReceiptDetail(context.Background(), res.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Pasta", detail.Items[0].ProductName)
	assert.Equal(t, "Sauce", detail.Items[1].ProductName)
}

func TestGetReceiptDetail_NotFound(t *testing.T) {
	service := receipt.NewReceiptService(newFakeReceiptRepository(), nil)

	_, err := service.GetReceiptDetail(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}
