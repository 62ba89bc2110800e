// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	GuestID         uint            `json:"guest_id" binding:"required"`
	PropertyID      uint            `json:"property_id"`
	UnitID          uint            `json:"unit_id" binding:"required"`
	CheckIn         string          `json:"check_in" binding:"required"`
	CheckOut        string          `json:"check_out" binding:"required"`
	NumberOfGuests  int             `json:"number_of_guests"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Source          string          `json:"source"`
	Purpose         string          `json:"purpose"`
	PaymentMethod   string          `json:"payment_method"`
	SpecialRequests string          `json:"special_requests"`
	Status          string          `json:"status"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func bookingIDFromParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidBookingId", "message": "booking id must be a positive number"}})
		return 0, false
	}
	return uint(id), true
}

// isForeignKeyError detects MySQL error 1452.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if merr, ok := err.(*mysql.MySQLError); ok {
		return merr.Number == 1452
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key") || strings.Contains(lower, "1452")
}

// ---------------------------
// CRUD: Bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchBookings", "message": "could not load bookings"}})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("CreateBooking validation error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	checkIn, ok := parseDate(payload.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidCheckIn", "message": "check_in must be YYYY-MM-DD or RFC3339"}})
		return
	}
	checkOut, ok := parseDate(payload.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidCheckOut", "message": "check_out must be YYYY-MM-DD or RFC3339"}})
		return
	}
	if !checkOut.After(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidStayRange", "message": "check_out must be after check_in"}})
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		GuestID:         payload.GuestID,
		PropertyID:      payload.PropertyID,
		UnitID:          payload.UnitID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  payload.NumberOfGuests,
		TotalAmount:     payload.TotalAmount,
		Source:          payload.Source,
		Purpose:         payload.Purpose,
		PaymentMethod:   payload.PaymentMethod,
		SpecialRequests: payload.SpecialRequests,
		Status:          models.BookingStatus(strings.ToLower(strings.TrimSpace(payload.Status))),
	})
	if err != nil {
		log.Printf("Service error creating booking: %v", err)
		msg := err.Error()
		switch {
		case strings.HasPrefix(msg, "validation"):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create booking", "details": msg})
		case strings.Contains(msg, "booking_conflict"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.bookingConflict", "message": "the unit already has an open booking for that check-in day"}})
		case strings.Contains(msg, "guest_blacklisted"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.guestBlacklisted", "message": "guest is blacklisted"}})
		case strings.Contains(msg, "guest_not_found"), strings.Contains(msg, "unit_not_found"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.badReference", "message": msg}})
		case isForeignKeyError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "foreign key constraint", "details": msg})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking", "details": msg})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	bookingID, ok := bookingIDFromParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetWithRelations(bookingID)
	if err != nil {
		if strings.Contains(err.Error(), "booking_not_found") || errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
			return
		}
		log.Printf("GetBookingDetails error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchBookingFailed", "message": "could not load booking"}})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// Lifecycle transitions
// ---------------------------

func (ctrl *BookingController) CheckInBooking(c *gin.Context) {
	bookingID, ok := bookingIDFromParam(c)
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.CheckIn(bookingID); err != nil {
		log.Printf("CheckInBooking error: %v", err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "booking_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
		case strings.Contains(msg, "already_checked_in"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.alreadyCheckedIn", "message": "booking is already checked in"}})
		case strings.Contains(msg, "not_checkinable"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.notCheckinable", "message": "booking status does not allow check-in"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.checkinFailed", "message": "check-in failed", "details": msg}})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking checked in"})
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	bookingID, ok := bookingIDFromParam(c)
	if !ok {
		return
	}

	if err := ctrl.BookingSvc.Cancel(bookingID); err != nil {
		log.Printf("CancelBooking error: %v", err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "booking_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
		case strings.Contains(msg, "booking_closed"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.bookingClosed", "message": "checked-out bookings cannot be cancelled"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.cancelFailed", "message": "cancel failed", "details": msg}})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking cancelled"})
}
