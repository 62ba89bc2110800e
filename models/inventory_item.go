package models

import (
	"gorm.io/gorm"
)

type InventoryItem struct {
	gorm.Model

	ItemName string `json:"itemName" gorm:"column:item_name;type:varchar(150)"`
	Category string `json:"category" gorm:"type:varchar(64)"`

	// Quantity is the available-in-store count. It must never go negative;
	// assignment decrements it, a good-condition return increments it.
	Quantity int `json:"quantity" gorm:"default:0"`

	Status              string `json:"status" gorm:"type:varchar(32);default:active"`
	AssignableOnBooking bool   `json:"assignableOnBooking" gorm:"column:assignable_on_booking;default:true"`
}
