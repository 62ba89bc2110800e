package services_test

import (
	"testing"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitStatusForBooking(t *testing.T) {
	cases := []struct {
		booking models.BookingStatus
		unit    models.UnitStatus
	}{
		{models.BookingPending, models.UnitBooked},
		{models.BookingReserved, models.UnitReserved},
		{models.BookingConfirmed, models.UnitBooked},
		{models.BookingCheckedIn, models.UnitOccupied},
		{models.BookingCheckedOut, models.UnitAvailable},
		{models.BookingCancelled, models.UnitAvailable},
		{models.BookingCompleted, models.UnitAvailable},
	}

	for _, tc := range cases {
		t.Run(string(tc.booking), func(t *testing.T) {
			got, err := services.UnitStatusForBooking(tc.booking)
			require.NoError(t, err)
			assert.Equal(t, tc.unit, got)
		})
	}
}

func TestUnitStatusForBooking_UnknownStatus(t *testing.T) {
	_, err := services.UnitStatusForBooking("archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")

	_, err = services.UnitStatusForBooking("")
	require.Error(t, err)
}
