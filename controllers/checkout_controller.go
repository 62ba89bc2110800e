// controllers/checkout_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CheckoutItemPayload struct {
	AssignmentID uint            `json:"assignmentId" binding:"required"`
	Condition    string          `json:"condition" binding:"required"`
	DamageCost   decimal.Decimal `json:"damageCost"`
	Notes        string          `json:"notes"`
}

type CompleteCheckoutPayload struct {
	BookingID        uint                  `json:"bookingId" binding:"required"`
	GuestID          uint                  `json:"guestId"`
	CheckoutDate     string                `json:"checkoutDate" binding:"required"`
	Inspector        string                `json:"inspector" binding:"required"`
	DepositDeduction decimal.Decimal       `json:"depositDeduction"`
	Notes            string                `json:"notes"`
	CheckoutItems    []CheckoutItemPayload `json:"checkoutItems"`
}

// ---------------------------
// Controller
// ---------------------------

type CheckoutController struct {
	CheckoutSvc  *services.CheckoutService
	BookingSvc   *services.BookingService
	InventorySvc *services.InventoryService
}

func NewCheckoutController(checkoutSvc *services.CheckoutService, bookingSvc *services.BookingService, inventorySvc *services.InventoryService) *CheckoutController {
	return &CheckoutController{
		CheckoutSvc:  checkoutSvc,
		BookingSvc:   bookingSvc,
		InventorySvc: inventorySvc,
	}
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ---------------------------
// 1) Bookings awaiting checkout
// ---------------------------

func (ctrl *CheckoutController) ListBookingsForCheckout(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.ListCheckedInForCheckout()
	if err != nil {
		log.Printf("ListBookingsForCheckout error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchCheckoutBookings", "message": "could not load bookings awaiting checkout"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": bookings})
}

// ---------------------------
// 2) Checklist for a unit
// ---------------------------

func (ctrl *CheckoutController) ListEligibleAssignments(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("unitId"), 10, 64)
	if err != nil || unitID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidUnitId", "message": "unitId must be a positive number"}})
		return
	}

	assignments, err := ctrl.InventorySvc.ListEligibleAssignments(uint(unitID))
	if err != nil {
		log.Printf("ListEligibleAssignments error for unit %d: %v", unitID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchAssignments", "message": "could not load assignments for unit"}})
		return
	}

	// empty checklist is a valid state the UI renders distinctly
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": assignments})
}

// ---------------------------
// 3) Complete checkout
// ---------------------------

func (ctrl *CheckoutController) CompleteCheckout(c *gin.Context) {
	var payload CompleteCheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "bookingId, checkoutDate and inspector are required", "details": err.Error()}})
		return
	}

	checkoutDate, ok := parseDate(payload.CheckoutDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidCheckoutDate", "message": "checkoutDate must be YYYY-MM-DD or RFC3339"}})
		return
	}

	items := make([]services.CheckoutItemInput, 0, len(payload.CheckoutItems))
	for _, item := range payload.CheckoutItems {
		items = append(items, services.CheckoutItemInput{
			AssignmentID: item.AssignmentID,
			Condition:    models.ItemCondition(strings.ToLower(strings.TrimSpace(item.Condition))),
			DamageCost:   item.DamageCost,
			Notes:        item.Notes,
		})
	}

	input := services.CompleteCheckoutInput{
		BookingID:        payload.BookingID,
		GuestID:          payload.GuestID,
		CheckoutDate:     checkoutDate,
		Inspector:        payload.Inspector,
		DepositDeduction: payload.DepositDeduction,
		Notes:            payload.Notes,
		Items:            items,
	}

	// generous budget: the per-item loop can be long
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	report, err := ctrl.CheckoutSvc.CompleteCheckout(ctx, input)
	if err != nil {
		log.Printf("CompleteCheckout error for booking %d: %v", payload.BookingID, err)

		msg := err.Error()
		switch {
		case strings.HasPrefix(msg, "validation:"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidCheckout", "message": msg}})
			return

		case strings.Contains(msg, "booking_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
			return

		case strings.Contains(msg, "not_checked_in"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.notCheckedIn", "message": "booking is not checked in; it may already be checked out"}})
			return

		case strings.Contains(msg, "guest_mismatch"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.guestMismatch", "message": "guestId does not match the booking's guest"}})
			return

		case strings.Contains(msg, "assignment_not_found"), strings.Contains(msg, "assignment_already_returned"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.assignmentNotFound", "message": msg}})
			return

		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.checkoutFailed", "message": "checkout failed", "details": msg}})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": report})
}

// ---------------------------
// 4) Reports
// ---------------------------

func (ctrl *CheckoutController) ListReports(c *gin.Context) {
	reports, err := ctrl.CheckoutSvc.ListReports()
	if err != nil {
		log.Printf("ListReports error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchReports", "message": "could not load checkout reports"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": reports})
}

func (ctrl *CheckoutController) GetReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reportID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidReportId", "message": "report id must be a positive number"}})
		return
	}

	report, err := ctrl.CheckoutSvc.GetReport(uint(reportID))
	if err != nil {
		if strings.Contains(err.Error(), "report_not_found") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.reportNotFound", "message": "checkout report not found"}})
			return
		}
		log.Printf("GetReport error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchReport", "message": "could not load checkout report"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": report})
}
