package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Unit struct {
	gorm.Model

	PropertyID uint   `json:"propertyId" gorm:"index;column:property_id"`
	Name       string `json:"name" gorm:"column:name;type:varchar(100)"`
	Type       string `json:"type" gorm:"type:varchar(64)"`

	// Status is derived from the unit's current booking (see services.UnitStatusForBooking)
	// and must only change transactionally alongside booking writes.
	Status UnitStatus `json:"status" gorm:"type:varchar(32);default:available"`

	Rent      decimal.Decimal `json:"rent" gorm:"type:decimal(12,2)"`
	Bedrooms  int             `json:"bedrooms"`
	Bathrooms int             `json:"bathrooms"`
	MaxGuests int             `json:"maxGuests" gorm:"column:max_guests"`

	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
