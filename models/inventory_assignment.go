package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryAssignment places one item instance at a unit. While IsActive the
// instance is out of store and unavailable for re-assignment; once closed
// (ReturnedAt set) the row is a historical record and is never reactivated.
type InventoryAssignment struct {
	gorm.Model

	InventoryItemID uint `json:"inventoryItemId" gorm:"index;column:inventory_item_id"`
	UnitID          uint `json:"unitId" gorm:"index;column:unit_id"`
	PropertyID      uint `json:"propertyId" gorm:"index;column:property_id"`

	SerialNumber string `json:"serialNumber" gorm:"column:serial_number;type:varchar(100)"`
	Notes        string `json:"notes" gorm:"type:text"`

	IsActive   bool       `json:"isActive" gorm:"column:is_active;index;default:true"`
	AssignedAt time.Time  `json:"assignedAt" gorm:"column:assigned_at"`
	ReturnedAt *time.Time `json:"returnedAt" gorm:"column:returned_at"`

	Item InventoryItem `gorm:"foreignKey:InventoryItemID;references:ID" json:"item,omitempty"`
	Unit Unit          `gorm:"foreignKey:UnitID;references:ID" json:"unit,omitempty"`
}
