package migration

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pantry-planner/entities"
)

// Step is one self-contained schema change: inspect, add if absent,
// otherwise no-op. Steps are applied in their historical order and each
// runs in its own transaction; prior steps stay committed when a later
// one fails.
type Step struct {
	Name string
	Run  func(tx *gorm.DB) error
}

func Steps() []Step {
	return []Step{
		{Name: "create core tables", Run: createCoreTables},
		{Name: "add frozen flag to items", Run: addColumns(&entities.InventoryItem{}, "IsFrozen")},
		{Name: "add unit and timestamps to items", Run: addColumns(&entities.InventoryItem{}, "Unit", "CreatedAt", "UpdatedAt")},
		{Name: "link items and history to receipts", Run: linkToReceipts},
		{Name: "add denormalized product name to history", Run: addColumns(&entities.PurchaseHistoryEntry{}, "ProductName")},
		{Name: "add updated_at to receipts", Run: addColumns(&entities.Receipt{}, "UpdatedAt")},
		{Name: "add line number to items", Run: addColumns(&entities.InventoryItem{}, "LineNo")},
		{Name: "add receipt-sourced item fields and receipt upsert index", Run: receiptSourcedFields},
		{Name: "index availability and enforce receipt foreign key", Run: enforceReceiptForeignKey},
	}
}

// Migrate applies every step in order and halts at the first failure so
// operators can inspect the state and re-run. Every step is idempotent.
func Migrate(db *gorm.DB, log *logrus.Logger) error {
	for _, step := range Steps() {
		if err := db.Transaction(step.Run); err != nil {
			return fmt.Errorf("migration %q: %w", step.Name, err)
		}
		log.WithField("step", step.Name).Info("migration step applied")
	}

	log.Info("database migration complete")
	return nil
}

func createCoreTables(tx *gorm.DB) error {
	models := []interface{}{
		&entities.Receipt{},
		&entities.InventoryItem{},
		&entities.PurchaseHistoryEntry{},
		&entities.ConsumptionEvent{},
		&entities.UserPreference{},
	}
	for _, model := range models {
		if tx.Migrator().HasTable(model) {
			continue
		}
		if err := tx.Migrator().CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

// addColumns returns a step body adding each named field when its
// column is absent.
func addColumns(model interface{}, fields ...string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		for _, field := range fields {
			if tx.Migrator().HasColumn(model, field) {
				continue
			}
			if err := tx.Migrator().AddColumn(model, field); err != nil {
				return err
			}
		}
		return nil
	}
}

func linkToReceipts(tx *gorm.DB) error {
	if err := addColumns(&entities.InventoryItem{}, "ReceiptID")(tx); err != nil {
		return err
	}
	return addColumns(&entities.PurchaseHistoryEntry{}, "ReceiptID")(tx)
}

func receiptSourcedFields(tx *gorm.DB) error {
	// Historical rename: early installs called the unit column
	// unit_measure.
	if tx.Migrator().HasColumn(&entities.InventoryItem{}, "unit_measure") &&
		!tx.Migrator().HasColumn(&entities.InventoryItem{}, "unit") {
		if err := tx.Migrator().RenameColumn(&entities.InventoryItem{}, "unit_measure", "unit"); err != nil {
			return err
		}
	}

	if err := addColumns(&entities.InventoryItem{}, "ProductCode", "VATRate", "GrossTotal")(tx); err != nil {
		return err
	}

	return tx.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_receipts_upsert " +
			"ON receipts (shop, purchase_date, receipt_number)",
	).Error
}

// enforceReceiptForeignKey nulls any dangling receipt references before
// adding the constraint, in the same transaction. Adding the foreign
// key while dangling references exist is never attempted.
func enforceReceiptForeignKey(tx *gorm.DB) error {
	if err := tx.Exec(
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_availability " +
			"ON inventory_items (availability)",
	).Error; err != nil {
		return err
	}

	var dangling int64
	if err := tx.Raw(
		"SELECT COUNT(*) FROM inventory_items i " +
			"LEFT JOIN receipts r ON i.receipt_id = r.id " +
			"WHERE i.receipt_id IS NOT NULL AND r.id IS NULL",
	).Scan(&dangling).Error; err != nil {
		return err
	}

	if dangling > 0 {
		if err := tx.Exec(
			"UPDATE inventory_items SET receipt_id = NULL " +
				"WHERE receipt_id IS NOT NULL AND NOT EXISTS " +
				"(SELECT 1 FROM receipts WHERE receipts.id = inventory_items.receipt_id)",
		).Error; err != nil {
			return err
		}
	}

	if tx.Migrator().HasConstraint(&entities.InventoryItem{}, "fk_inventory_items_receipt") {
		return nil
	}
	return tx.Exec(
		"ALTER TABLE inventory_items " +
			"ADD CONSTRAINT fk_inventory_items_receipt " +
			"FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE",
	).Error
}
