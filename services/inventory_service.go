// services/inventory_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// AssignmentView is one row of the checkout checklist: the assignment plus
// the item fields the inspector needs to see.
type AssignmentView struct {
	AssignmentID    uint      `json:"assignmentId" gorm:"column:assignment_id"`
	InventoryItemID uint      `json:"inventoryItemId" gorm:"column:inventory_item_id"`
	ItemName        string    `json:"itemName" gorm:"column:item_name"`
	Category        string    `json:"category" gorm:"column:category"`
	ItemStatus      string    `json:"itemStatus" gorm:"column:item_status"`
	SerialNumber    string    `json:"serialNumber" gorm:"column:serial_number"`
	Notes           string    `json:"notes" gorm:"column:notes"`
	AssignedAt      time.Time `json:"assignedAt" gorm:"column:assigned_at"`
}

// appendNotes concatenates; existing notes are never overwritten.
func appendNotes(existing, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return extra
	}
	return existing + "\n" + extra
}

func (s *InventoryService) CreateItem(item *models.InventoryItem) error {
	if strings.TrimSpace(item.ItemName) == "" {
		return errors.New("validation: item_name is required")
	}
	if item.Quantity < 0 {
		return errors.New("validation: quantity must not be negative")
	}
	if item.Status == "" {
		item.Status = "active"
	}
	return s.DB.Create(item).Error
}

func (s *InventoryService) ListItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.DB.Order("item_name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory items: %w", err)
	}
	return items, nil
}

func (s *InventoryService) UpdateItem(item *models.InventoryItem) error {
	if item.ID == 0 {
		return errors.New("validation: item id is required")
	}
	if item.Quantity < 0 {
		return errors.New("validation: quantity must not be negative")
	}
	return s.DB.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Updates(item).Error
}

// AssignToUnit moves one instance of an item out of store and into a unit:
// conditional quantity decrement, active assignment row and a to_unit ledger
// entry, all in one transaction.
func (s *InventoryService) AssignToUnit(itemID, unitID uint, serialNumber, notes, movedBy string) (*models.InventoryAssignment, error) {
	var assignment models.InventoryAssignment

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("item_not_found")
			}
			return err
		}

		var unit models.Unit
		if err := tx.First(&unit, unitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("unit_not_found")
			}
			return err
		}

		// atomic decrement guarded against going negative
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity > 0", itemID).
			Update("quantity", gorm.Expr("quantity - ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement quantity for item %d: %w", itemID, res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.New("item_out_of_stock")
		}

		now := time.Now().UTC()
		assignment = models.InventoryAssignment{
			InventoryItemID: itemID,
			UnitID:          unitID,
			PropertyID:      unit.PropertyID,
			SerialNumber:    strings.TrimSpace(serialNumber),
			Notes:           strings.TrimSpace(notes),
			IsActive:        true,
			AssignedAt:      now,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		movement := models.InventoryMovement{
			InventoryItemID: itemID,
			ToUnitID:        &unitID,
			MovedBy:         movedBy,
			Direction:       models.MovementToUnit,
			Quantity:        1,
			Notes:           assignment.Notes,
			MovedAt:         now,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &assignment, nil
}

// ReturnToStore closes an assignment outside of checkout (a manual return in
// good condition): assignment inactive, atomic increment, to_store ledger row.
func (s *InventoryService) ReturnToStore(assignmentID uint, notes, movedBy string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var assignment models.InventoryAssignment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&assignment, assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("assignment_not_found:%d", assignmentID)
			}
			return err
		}
		if !assignment.IsActive {
			return fmt.Errorf("assignment_already_returned:%d", assignmentID)
		}

		now := time.Now().UTC()
		if err := tx.Model(&assignment).Updates(map[string]interface{}{
			"is_active":   false,
			"returned_at": now,
			"notes":       appendNotes(assignment.Notes, notes),
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.InventoryItem{}).
			Where("id = ?", assignment.InventoryItemID).
			Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment quantity for item %d: %w", assignment.InventoryItemID, err)
		}

		fromUnit := assignment.UnitID
		movement := models.InventoryMovement{
			InventoryItemID: assignment.InventoryItemID,
			FromUnitID:      &fromUnit,
			MovedBy:         movedBy,
			Direction:       models.MovementToStore,
			Quantity:        1,
			Cost:            decimal.Zero,
			Notes:           strings.TrimSpace(notes),
			MovedAt:         now,
		}
		return tx.Create(&movement).Error
	})
}

// ListEligibleAssignments returns the checkout checklist for a unit: active
// assignments whose item is flagged assignable-on-booking, newest first.
// An empty checklist is a valid result, not an error.
func (s *InventoryService) ListEligibleAssignments(unitID uint) ([]AssignmentView, error) {
	views := make([]AssignmentView, 0)
	err := s.DB.
		Table("inventory_assignments").
		Select("inventory_assignments.id AS assignment_id, inventory_assignments.inventory_item_id, " +
			"inventory_items.item_name, inventory_items.category, inventory_items.status AS item_status, " +
			"inventory_assignments.serial_number, inventory_assignments.notes, inventory_assignments.assigned_at").
		Joins("JOIN inventory_items ON inventory_items.id = inventory_assignments.inventory_item_id").
		Where("inventory_assignments.unit_id = ? AND inventory_assignments.is_active = ?", unitID, true).
		Where("inventory_items.assignable_on_booking = ?", true).
		Where("inventory_assignments.deleted_at IS NULL").
		Order("inventory_assignments.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assignments for unit %d: %w", unitID, err)
	}
	return views, nil
}

// ListMovements reads the append-only ledger for one item, newest first.
func (s *InventoryService) ListMovements(itemID uint) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	if err := s.DB.
		Where("inventory_item_id = ?", itemID).
		Order("moved_at DESC").
		Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve movements for item %d: %w", itemID, err)
	}
	return movements, nil
}
