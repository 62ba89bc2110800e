package services

import (
	"fmt"

	"rental-backend/models"
)

// UnitStatusForBooking maps a booking status to the unit status it implies.
// Every case of the enum is spelled out; an unknown status is a modeling
// error surfaced to the caller instead of silently freeing the unit.
func UnitStatusForBooking(s models.BookingStatus) (models.UnitStatus, error) {
	switch s {
	case models.BookingPending:
		return models.UnitBooked, nil
	case models.BookingReserved:
		return models.UnitReserved, nil
	case models.BookingConfirmed:
		return models.UnitBooked, nil
	case models.BookingCheckedIn:
		return models.UnitOccupied, nil
	case models.BookingCheckedOut:
		return models.UnitAvailable, nil
	case models.BookingCancelled:
		return models.UnitAvailable, nil
	case models.BookingCompleted:
		return models.UnitAvailable, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}
