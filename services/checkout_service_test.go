package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gormDB, mock
}

func bookingRow(id, guestID, propertyID, unitID uint, status models.BookingStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "guest_id", "property_id", "unit_id", "status"}).
		AddRow(id, guestID, propertyID, unitID, string(status))
}

func assignmentRow(id, itemID, unitID uint, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "inventory_item_id", "unit_id", "property_id", "serial_number", "notes", "is_active"}).
		AddRow(id, itemID, unitID, 1, "SN-1", "", active)
}

func checkoutInput(bookingID, guestID uint, items []services.CheckoutItemInput) services.CompleteCheckoutInput {
	return services.CompleteCheckoutInput{
		BookingID:        bookingID,
		GuestID:          guestID,
		CheckoutDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Inspector:        "Jane",
		DepositDeduction: decimal.NewFromInt(3000),
		Items:            items,
	}
}

func TestCompleteCheckout_ValidationErrors(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	cases := []struct {
		name  string
		input services.CompleteCheckoutInput
	}{
		{"missing booking id", services.CompleteCheckoutInput{Inspector: "Jane", CheckoutDate: time.Now()}},
		{"missing inspector", services.CompleteCheckoutInput{BookingID: 42, CheckoutDate: time.Now()}},
		{"missing date", services.CompleteCheckoutInput{BookingID: 42, Inspector: "Jane"}},
		{"negative deduction", services.CompleteCheckoutInput{
			BookingID: 42, Inspector: "Jane", CheckoutDate: time.Now(),
			DepositDeduction: decimal.NewFromInt(-1),
		}},
		{"bad condition", services.CompleteCheckoutInput{
			BookingID: 42, Inspector: "Jane", CheckoutDate: time.Now(),
			Items: []services.CheckoutItemInput{{AssignmentID: 1, Condition: "broken"}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CompleteCheckout(context.Background(), tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation")
		})
	}
}

func TestCompleteCheckout_BookingNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.CompleteCheckout(context.Background(), checkoutInput(42, 0, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking_not_found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteCheckout_RejectsDoubleCheckout(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedOut))
	mock.ExpectRollback()

	_, err := svc.CompleteCheckout(context.Background(), checkoutInput(42, 9, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_checked_in")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteCheckout_GuestMismatch(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedIn))
	mock.ExpectRollback()

	_, err := svc.CompleteCheckout(context.Background(), checkoutInput(42, 8, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guest_mismatch")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A missing assignment aborts the whole transaction: the report insert that
// already happened is rolled back and nothing persists.
func TestCompleteCheckout_MissingAssignmentRollsBackEverything(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedIn))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `checkout_reports`")).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `inventory_assignments`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	input := checkoutInput(42, 9, []services.CheckoutItemInput{
		{AssignmentID: 501, Condition: models.ConditionGood},
	})
	_, err := svc.CompleteCheckout(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignment_not_found:501")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A closed assignment must not be processed twice.
func TestCompleteCheckout_ClosedAssignmentRejected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	svc := services.NewCheckoutService(gormDB, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedIn))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `checkout_reports`")).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `inventory_assignments`")).
		WillReturnRows(assignmentRow(501, 11, 7, false))
	mock.ExpectRollback()

	input := checkoutInput(42, 9, []services.CheckoutItemInput{
		{AssignmentID: 501, Condition: models.ConditionGood},
	})
	_, err := svc.CompleteCheckout(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignment_already_returned:501")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The reference scenario: TV returned good, sofa damaged at 5000. One atomic
// quantity increment and a to_store movement for the TV, a damaged movement
// and no increment for the sofa, booking checked out, unit available, guest
// counters bumped.
func TestCompleteCheckout_GoodAndDamagedItems(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cache := utils.NewCacheRegistry()
	svc := services.NewCheckoutService(gormDB, cache)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WithArgs(42, 1).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedIn))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `checkout_reports`")).
		WillReturnResult(sqlmock.NewResult(100, 1))

	// TV: good condition
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `inventory_assignments`")).
		WithArgs(501, 1).
		WillReturnRows(assignmentRow(501, 11, 7, true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `checkout_items`")).
		WillReturnResult(sqlmock.NewResult(1001, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_assignments` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_items` SET `quantity`=quantity + ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `inventory_movements`")).
		WillReturnResult(sqlmock.NewResult(2001, 1))

	// Sofa: damaged, quantity untouched
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `inventory_assignments`")).
		WithArgs(502, 1).
		WillReturnRows(assignmentRow(502, 12, 7, true))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `checkout_items`")).
		WillReturnResult(sqlmock.NewResult(1002, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `inventory_assignments` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `inventory_movements`")).
		WillReturnResult(sqlmock.NewResult(2002, 1))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `bookings` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `units` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `guests` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// reload with projections (preloads run in sorted order)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `checkout_reports`")).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference_code", "booking_id", "guest_id", "inspector",
			"total_damage_cost", "deposit_deduction", "status",
		}).AddRow(100, "CO-TEST", 42, 9, "Jane", "5000", "3000", "completed"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `bookings`")).
		WillReturnRows(bookingRow(42, 9, 1, 7, models.BookingCheckedOut))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `units`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id", "name", "status"}).
			AddRow(7, 1, "A-101", string(models.UnitAvailable)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `guests`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "total_stays"}).
			AddRow(9, "Alex Tan", 4))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `checkout_items`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "checkout_report_id", "inventory_assignment_id", "condition", "damage_cost"}).
			AddRow(1001, 100, 501, "good", "0").
			AddRow(1002, 100, 502, "damaged", "5000"))

	input := checkoutInput(42, 9, []services.CheckoutItemInput{
		{AssignmentID: 501, Condition: models.ConditionGood},
		{AssignmentID: 502, Condition: models.ConditionDamaged, DamageCost: decimal.NewFromInt(5000), Notes: "scratched frame"},
	})

	report, err := svc.CompleteCheckout(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, uint(42), report.BookingID)
	assert.Equal(t, "Jane", report.Inspector)
	assert.True(t, report.TotalDamageCost.Equal(decimal.NewFromInt(5000)))
	assert.True(t, report.DepositDeduction.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, models.BookingCheckedOut, report.Booking.Status)
	assert.Equal(t, models.UnitAvailable, report.Booking.Unit.Status)
	assert.Len(t, report.Items, 2)

	// successful checkout bumps every dependent cache scope
	for _, scope := range []string{
		utils.CacheScopeCheckout, utils.CacheScopeInventory, utils.CacheScopeDashboard,
		utils.CacheScopeProperties, utils.CacheScopeBookings, utils.CacheScopeGuests,
	} {
		assert.Equal(t, uint64(1), cache.Version(scope), "scope %s", scope)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
