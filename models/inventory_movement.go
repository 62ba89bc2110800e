package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryMovement is one append-only ledger entry for inventory flow.
// Rows are only ever inserted; there is no update or delete path.
type InventoryMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	InventoryItemID uint  `json:"inventoryItemId" gorm:"index;column:inventory_item_id"`
	FromUnitID      *uint `json:"fromUnitId" gorm:"column:from_unit_id"`
	ToUnitID        *uint `json:"toUnitId" gorm:"column:to_unit_id"`

	MovedBy   string            `json:"movedBy" gorm:"column:moved_by;type:varchar(150)"`
	Direction MovementDirection `json:"direction" gorm:"type:varchar(32);index"`
	Quantity  int               `json:"quantity" gorm:"default:1"`

	// Cost carries the damage/missing valuation as a structured column so the
	// ledger stays machine-readable; Notes keeps the free-text detail.
	Cost  decimal.Decimal `json:"cost" gorm:"type:decimal(12,2)"`
	Notes string          `json:"notes" gorm:"type:text"`

	MovedAt time.Time `json:"movedAt" gorm:"column:moved_at"`
}
