package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CheckoutReport records one guest move-out inspection. Created exactly once
// per checkout inside the checkout transaction and immutable afterwards.
type CheckoutReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	BookingID uint `json:"bookingId" gorm:"index;column:booking_id"`
	GuestID   uint `json:"guestId" gorm:"index;column:guest_id"`

	CheckoutDate time.Time `json:"checkoutDate" gorm:"column:checkout_date"`
	Inspector    string    `json:"inspector" gorm:"type:varchar(150)"`

	TotalDamageCost  decimal.Decimal `json:"totalDamageCost" gorm:"column:total_damage_cost;type:decimal(12,2)"`
	DepositDeduction decimal.Decimal `json:"depositDeduction" gorm:"column:deposit_deduction;type:decimal(12,2)"`

	Notes  string `json:"notes" gorm:"type:text"`
	Status string `json:"status" gorm:"type:varchar(32);default:completed"`

	// ConditionSummary is a JSON snapshot of item counts per condition,
	// written by the orchestrator for dashboard display.
	ConditionSummary datatypes.JSON `json:"conditionSummary" gorm:"column:condition_summary"`

	Items   []CheckoutItem `gorm:"foreignKey:CheckoutReportID" json:"items,omitempty"`
	Booking Booking        `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
	Guest   Guest          `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}
