package services

import (
	"errors"
	"strings"

	"rental-backend/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) Create(guest *models.Guest) error {
	if strings.TrimSpace(guest.FullName) == "" {
		return errors.New("validation: fullName is required")
	}
	if guest.VerificationStatus == "" {
		guest.VerificationStatus = "unverified"
	}
	return s.DB.Create(guest).Error
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("guests.id DESC").Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("guest_not_found")
		}
		return nil, err
	}
	return &guest, nil
}

// Update touches profile fields only; TotalStays and LastStay belong to the
// checkout transaction.
func (s *GuestService) Update(guest *models.Guest) error {
	if guest.ID == 0 {
		return errors.New("validation: guest id is required")
	}
	return s.DB.Model(&models.Guest{}).Where("id = ?", guest.ID).
		Updates(map[string]interface{}{
			"full_name":           guest.FullName,
			"email":               guest.Email,
			"phone":               guest.Phone,
			"verification_status": guest.VerificationStatus,
			"blacklisted":         guest.Blacklisted,
		}).Error
}

func (s *GuestService) Delete(id uint) error {
	return s.DB.Delete(&models.Guest{}, id).Error
}
