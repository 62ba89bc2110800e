package services

import (
	"rental-backend/config"
	"rental-backend/models"
)

type PropertyService struct{}

func (s PropertyService) Create(property models.Property) error {
	return config.DB.Create(&property).Error
}

func (s PropertyService) GetAll() ([]models.Property, error) {
	var properties []models.Property
	err := config.DB.Preload("Units").Find(&properties).Error
	return properties, err
}

func (s PropertyService) GetByID(id int) (models.Property, error) {
	var property models.Property
	err := config.DB.Preload("Units").First(&property, id).Error
	return property, err
}

func (s PropertyService) Update(property models.Property) error {
	return config.DB.Model(&models.Property{}).Where("id = ?", property.ID).Updates(property).Error
}

func (s PropertyService) Delete(id int) error {
	return config.DB.Delete(&models.Property{}, id).Error
}
