package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	Name    string `json:"name" gorm:"type:varchar(150)"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	City    string `json:"city" gorm:"type:varchar(100)"`
	Owner   string `json:"owner" gorm:"type:varchar(150)"`

	Units []Unit `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
}
