package services

import (
	"rental-backend/config"
	"rental-backend/models"
)

type UnitService struct{}

func (s UnitService) Create(unit models.Unit) error {
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}
	return config.DB.Create(&unit).Error
}

func (s UnitService) GetAll() ([]models.Unit, error) {
	var units []models.Unit
	err := config.DB.Preload("Property").Find(&units).Error
	return units, err
}

func (s UnitService) GetByID(id int) (models.Unit, error) {
	var unit models.Unit
	err := config.DB.Preload("Property").First(&unit, id).Error
	return unit, err
}

// Update writes descriptive fields; Status stays owned by booking writes.
func (s UnitService) Update(unit models.Unit) error {
	return config.DB.Model(&models.Unit{}).Where("id = ?", unit.ID).
		Updates(map[string]interface{}{
			"name":       unit.Name,
			"type":       unit.Type,
			"rent":       unit.Rent,
			"bedrooms":   unit.Bedrooms,
			"bathrooms":  unit.Bathrooms,
			"max_guests": unit.MaxGuests,
		}).Error
}

func (s UnitService) Delete(id int) error {
	return config.DB.Delete(&models.Unit{}, id).Error
}
