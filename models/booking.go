package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`

	GuestID    uint `gorm:"index;column:guest_id" json:"guest_id"`
	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`
	UnitID     uint `gorm:"index;column:unit_id" json:"unit_id"`

	Status BookingStatus `gorm:"column:status;type:varchar(32);default:pending" json:"status"`

	// CheckOutDate holds the planned date until checkout completes, then the
	// actual one (checkout overwrites it).
	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`

	NumberOfGuests int             `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2)" json:"total_amount"`

	Source          string `gorm:"type:varchar(64)" json:"source,omitempty"`
	Purpose         string `gorm:"type:varchar(64)" json:"purpose,omitempty"`
	PaymentMethod   string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method,omitempty"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	Guest    Guest    `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
	Unit     Unit     `gorm:"foreignKey:UnitID;references:ID" json:"unit,omitempty"`
}
