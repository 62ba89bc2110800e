// services/checkout_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutService owns the guest checkout transaction: one all-or-nothing
// write covering report, items, assignment closure, inventory quantities,
// the movement ledger and booking/unit/guest state.
type CheckoutService struct {
	DB    *gorm.DB
	Cache *utils.CacheRegistry
}

func NewCheckoutService(db *gorm.DB, cache *utils.CacheRegistry) *CheckoutService {
	return &CheckoutService{DB: db, Cache: cache}
}

// CheckoutItemInput is one checked line of the inspection checklist.
// Assignments the operator left unchecked are simply not submitted and stay
// active at the unit.
type CheckoutItemInput struct {
	AssignmentID uint
	Condition    models.ItemCondition
	DamageCost   decimal.Decimal
	Notes        string
}

type CompleteCheckoutInput struct {
	BookingID        uint
	GuestID          uint
	CheckoutDate     time.Time
	Inspector        string
	DepositDeduction decimal.Decimal
	Notes            string
	Items            []CheckoutItemInput
}

func (in *CompleteCheckoutInput) validate() error {
	if in.BookingID == 0 {
		return errors.New("validation: booking_id is required")
	}
	if strings.TrimSpace(in.Inspector) == "" {
		return errors.New("validation: inspector is required")
	}
	if in.CheckoutDate.IsZero() {
		return errors.New("validation: checkout_date is required")
	}
	if in.DepositDeduction.IsNegative() {
		return errors.New("validation: deposit_deduction must not be negative")
	}
	for _, item := range in.Items {
		if item.AssignmentID == 0 {
			return errors.New("validation: checkout item missing assignment id")
		}
		if !item.Condition.Valid() {
			return fmt.Errorf("validation: invalid condition %q", item.Condition)
		}
		if item.DamageCost.IsNegative() {
			return fmt.Errorf("validation: negative damage cost on assignment %d", item.AssignmentID)
		}
	}
	return nil
}

func newReportReference() string {
	return "CO-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CompleteCheckout runs the whole move-out as a single transaction. Either
// the report, all item rows, all ledger entries and the booking/unit/guest
// updates commit together, or none of them persist.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, input CompleteCheckoutInput) (*models.CheckoutReport, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var reportID uint

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock plus status guard: a concurrent checkout of the same
		// booking blocks here and then fails the checked_in check.
		var booking models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, input.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		if booking.Status != models.BookingCheckedIn {
			return errors.New("not_checked_in")
		}
		if input.GuestID != 0 && input.GuestID != booking.GuestID {
			return errors.New("guest_mismatch")
		}

		totalDamage := decimal.Zero
		counts := map[models.ItemCondition]int{}
		for _, item := range input.Items {
			totalDamage = totalDamage.Add(item.DamageCost)
			counts[item.Condition]++
		}
		summary, err := json.Marshal(map[string]int{
			"good":    counts[models.ConditionGood],
			"damaged": counts[models.ConditionDamaged],
			"missing": counts[models.ConditionMissing],
		})
		if err != nil {
			return fmt.Errorf("failed to build condition summary: %w", err)
		}

		report := models.CheckoutReport{
			ReferenceCode:    newReportReference(),
			BookingID:        booking.ID,
			GuestID:          booking.GuestID,
			CheckoutDate:     input.CheckoutDate,
			Inspector:        strings.TrimSpace(input.Inspector),
			TotalDamageCost:  totalDamage,
			DepositDeduction: input.DepositDeduction,
			Notes:            input.Notes,
			Status:           "completed",
			ConditionSummary: datatypes.JSON(summary),
		}
		if err := tx.Create(&report).Error; err != nil {
			return fmt.Errorf("failed to create checkout report: %w", err)
		}
		reportID = report.ID

		now := time.Now().UTC()
		for _, item := range input.Items {
			var assignment models.InventoryAssignment
			if err := tx.First(&assignment, item.AssignmentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("assignment_not_found:%d", item.AssignmentID)
				}
				return err
			}
			if !assignment.IsActive {
				// already processed by an earlier checkout; never close twice
				return fmt.Errorf("assignment_already_returned:%d", item.AssignmentID)
			}

			checkoutItem := models.CheckoutItem{
				CheckoutReportID:      report.ID,
				InventoryAssignmentID: assignment.ID,
				Condition:             item.Condition,
				DamageCost:            item.DamageCost,
				Notes:                 item.Notes,
			}
			if err := tx.Create(&checkoutItem).Error; err != nil {
				return fmt.Errorf("failed to create checkout item for assignment %d: %w", assignment.ID, err)
			}

			if err := tx.Model(&assignment).Updates(map[string]interface{}{
				"is_active":   false,
				"returned_at": now,
				"notes":       appendNotes(assignment.Notes, item.Notes),
			}).Error; err != nil {
				return fmt.Errorf("failed to close assignment %d: %w", assignment.ID, err)
			}

			fromUnit := assignment.UnitID
			switch item.Condition {
			case models.ConditionGood:
				// back to usable stock: atomic increment, no read-then-write
				if err := tx.Model(&models.InventoryItem{}).
					Where("id = ?", assignment.InventoryItemID).
					Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
					return fmt.Errorf("failed to increment quantity for item %d: %w", assignment.InventoryItemID, err)
				}
				movement := models.InventoryMovement{
					InventoryItemID: assignment.InventoryItemID,
					FromUnitID:      &fromUnit,
					MovedBy:         report.Inspector,
					Direction:       models.MovementToStore,
					Quantity:        1,
					Cost:            decimal.Zero,
					Notes:           item.Notes,
					MovedAt:         now,
				}
				if err := tx.Create(&movement).Error; err != nil {
					return fmt.Errorf("failed to record movement for item %d: %w", assignment.InventoryItemID, err)
				}

			case models.ConditionDamaged, models.ConditionMissing:
				// not returned to stock; cost lands in the structured column
				// and stays readable in the notes text
				direction := models.MovementDamaged
				if item.Condition == models.ConditionMissing {
					direction = models.MovementMissing
				}
				movement := models.InventoryMovement{
					InventoryItemID: assignment.InventoryItemID,
					FromUnitID:      &fromUnit,
					MovedBy:         report.Inspector,
					Direction:       direction,
					Quantity:        1,
					Cost:            item.DamageCost,
					Notes:           appendNotes(item.Notes, fmt.Sprintf("%s cost %s", direction, item.DamageCost.String())),
					MovedAt:         now,
				}
				if err := tx.Create(&movement).Error; err != nil {
					return fmt.Errorf("failed to record movement for item %d: %w", assignment.InventoryItemID, err)
				}
			}
		}

		// actual date overwrites the planned one
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":         models.BookingCheckedOut,
			"check_out_date": input.CheckoutDate,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking %d: %w", booking.ID, err)
		}

		// Unit becomes bookable immediately regardless of damaged/missing
		// counts. Deliberate business rule, not an oversight.
		if err := tx.Model(&models.Unit{}).
			Where("id = ?", booking.UnitID).
			Update("status", models.UnitAvailable).Error; err != nil {
			return fmt.Errorf("failed to update unit %d: %w", booking.UnitID, err)
		}

		if err := tx.Model(&models.Guest{}).
			Where("id = ?", booking.GuestID).
			Updates(map[string]interface{}{
				"total_stays": gorm.Expr("total_stays + ?", 1),
				"last_stay":   input.CheckoutDate,
			}).Error; err != nil {
			return fmt.Errorf("failed to update guest %d: %w", booking.GuestID, err)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.Invalidate(
		utils.CacheScopeCheckout,
		utils.CacheScopeInventory,
		utils.CacheScopeDashboard,
		utils.CacheScopeProperties,
		utils.CacheScopeBookings,
		utils.CacheScopeGuests,
	)

	var report models.CheckoutReport
	if err := s.DB.WithContext(ctx).
		Preload("Items").
		Preload("Booking.Unit").
		Preload("Guest").
		First(&report, reportID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload checkout report: %w", err)
	}
	return &report, nil
}

// ListReports returns checkout reports newest first.
func (s *CheckoutService) ListReports() ([]models.CheckoutReport, error) {
	var reports []models.CheckoutReport
	if err := s.DB.
		Preload("Guest").
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout reports: %w", err)
	}
	return reports, nil
}

// GetReport loads one report with its lines and projections.
func (s *CheckoutService) GetReport(reportID uint) (*models.CheckoutReport, error) {
	var report models.CheckoutReport
	if err := s.DB.
		Preload("Items.Assignment.Item").
		Preload("Booking.Unit").
		Preload("Guest").
		First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("report_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve checkout report: %w", err)
	}
	return &report, nil
}
