package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem is one inspected inventory line of a checkout report.
type CheckoutItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	CheckoutReportID      uint `json:"checkoutReportId" gorm:"index;column:checkout_report_id"`
	InventoryAssignmentID uint `json:"inventoryAssignmentId" gorm:"index;column:inventory_assignment_id"`

	Condition  ItemCondition   `json:"condition" gorm:"type:varchar(16)"`
	DamageCost decimal.Decimal `json:"damageCost" gorm:"column:damage_cost;type:decimal(12,2)"`
	Notes      string          `json:"notes" gorm:"type:text"`

	Assignment InventoryAssignment `gorm:"foreignKey:InventoryAssignmentID;references:ID" json:"assignment,omitempty"`
}
