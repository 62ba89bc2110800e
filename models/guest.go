package models

import (
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `json:"fullName" gorm:"type:varchar(150)"`
	Email    string `json:"email" gorm:"type:varchar(150)"`
	Phone    string `json:"phone" gorm:"type:varchar(32)"`

	VerificationStatus string `json:"verificationStatus" gorm:"type:varchar(32);default:unverified"`
	Blacklisted        bool   `json:"blacklisted" gorm:"default:false"`

	// Stay statistics, bumped by checkout. Not idempotent if a checkout is replayed.
	TotalStays int        `json:"totalStays" gorm:"column:total_stays;default:0"`
	LastStay   *time.Time `json:"lastStay" gorm:"column:last_stay"`
}
