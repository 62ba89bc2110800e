// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB with booking lifecycle logic.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBookingInput carries the fields a back-office operator submits.
type CreateBookingInput struct {
	GuestID        uint
	PropertyID     uint
	UnitID         uint
	CheckInDate    time.Time
	CheckOutDate   time.Time
	NumberOfGuests int
	TotalAmount    decimal.Decimal
	Source         string
	Purpose        string
	PaymentMethod  string
	SpecialRequests string
	Status         models.BookingStatus
}

func newBookingReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CreateBooking validates the referenced rows, enforces the one-open-booking
// per unit per check-in day invariant and writes booking + derived unit
// status in one transaction.
func (s *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	if input.GuestID == 0 || input.UnitID == 0 {
		return nil, errors.New("validation: guest_id and unit_id are required")
	}
	if input.NumberOfGuests <= 0 {
		input.NumberOfGuests = 1
	}
	if input.Status == "" {
		input.Status = models.BookingPending
	}

	unitStatus, err := UnitStatusForBooking(input.Status)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("guest_not_found")
		}
		return nil, fmt.Errorf("db error checking guest %d: %w", input.GuestID, err)
	}
	if guest.Blacklisted {
		return nil, errors.New("guest_blacklisted")
	}

	var unit models.Unit
	if err := s.DB.First(&unit, input.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unit_not_found")
		}
		return nil, fmt.Errorf("db error checking unit %d: %w", input.UnitID, err)
	}
	if input.PropertyID == 0 {
		input.PropertyID = unit.PropertyID
	}

	checkInDay := input.CheckInDate.Format("2006-01-02")

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.Booking{}).
			Where("property_id = ? AND unit_id = ? AND DATE(check_in_date) = ?", input.PropertyID, input.UnitID, checkInDay).
			Where("status IN ?", []models.BookingStatus{models.BookingPending, models.BookingReserved, models.BookingCheckedIn}).
			Count(&open).Error; err != nil {
			return fmt.Errorf("failed to check booking conflicts: %w", err)
		}
		if open > 0 {
			return errors.New("booking_conflict")
		}

		ci := input.CheckInDate
		co := input.CheckOutDate
		booking = models.Booking{
			ReferenceCode:   newBookingReference(),
			GuestID:         input.GuestID,
			PropertyID:      input.PropertyID,
			UnitID:          input.UnitID,
			Status:          input.Status,
			CheckInDate:     &ci,
			CheckOutDate:    &co,
			NumberOfGuests:  input.NumberOfGuests,
			TotalAmount:     input.TotalAmount,
			Source:          input.Source,
			Purpose:         input.Purpose,
			PaymentMethod:   input.PaymentMethod,
			SpecialRequests: input.SpecialRequests,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if err := tx.Model(&models.Unit{}).
			Where("id = ?", input.UnitID).
			Update("status", unitStatus).Error; err != nil {
			return fmt.Errorf("failed to update unit %d status: %w", input.UnitID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Guest").Preload("Property").Preload("Unit").
		First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckIn moves a pending/reserved/confirmed booking to checked_in and the
// unit to its derived status, both under the same transaction and row lock.
func (s *BookingService) CheckIn(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		switch booking.Status {
		case models.BookingPending, models.BookingReserved, models.BookingConfirmed:
			// eligible
		case models.BookingCheckedIn:
			return errors.New("already_checked_in")
		default:
			return errors.New("not_checkinable")
		}

		unitStatus, err := UnitStatusForBooking(models.BookingCheckedIn)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":        models.BookingCheckedIn,
			"check_in_date": now,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Unit{}).
			Where("id = ?", booking.UnitID).
			Update("status", unitStatus).Error
	})
}

// Cancel releases the unit; checked-out or completed bookings stay untouched.
func (s *BookingService) Cancel(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		if booking.Status == models.BookingCheckedOut || booking.Status == models.BookingCompleted {
			return errors.New("booking_closed")
		}

		unitStatus, err := UnitStatusForBooking(models.BookingCancelled)
		if err != nil {
			return err
		}

		if err := tx.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
			return err
		}

		return tx.Model(&models.Unit{}).
			Where("id = ?", booking.UnitID).
			Update("status", unitStatus).Error
	})
}

// ListCheckedInForCheckout returns bookings awaiting checkout, soonest
// planned check-out first, with the projections the checkout list renders.
func (s *BookingService) ListCheckedInForCheckout() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Guest").
		Preload("Property").
		Preload("Unit").
		Where("status = ?", models.BookingCheckedIn).
		Order("check_out_date ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve checked-in bookings: %w", err)
	}
	return list, nil
}

// GetWithRelations loads one booking with guest/property/unit.
func (s *BookingService) GetWithRelations(bookingID uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.Preload("Guest").Preload("Property").Preload("Unit").
		First(&bk, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

// GetAllWithRelations lists bookings newest first.
func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Guest").
		Preload("Property").
		Preload("Unit").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}
