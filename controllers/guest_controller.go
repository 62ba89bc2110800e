// controllers/guest_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.GetAll()
	if err != nil {
		log.Printf("GetGuests error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not load guests")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "guest id must be a positive number")
		return
	}

	guest, err := ctrl.GuestSvc.GetByID(uint(id))
	if err != nil {
		if strings.Contains(err.Error(), "guest_not_found") {
			utils.JSONError(c, http.StatusNotFound, "guest not found")
			return
		}
		log.Printf("GetGuestByID error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not load guest")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest payload: "+err.Error())
		return
	}

	if err := ctrl.GuestSvc.Create(&guest); err != nil {
		if strings.HasPrefix(err.Error(), "validation") {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("CreateGuest error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not create guest")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "guest id must be a positive number")
		return
	}

	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest payload: "+err.Error())
		return
	}
	guest.ID = uint(id)

	if err := ctrl.GuestSvc.Update(&guest); err != nil {
		log.Printf("UpdateGuest error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not update guest")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "guest id must be a positive number")
		return
	}

	if err := ctrl.GuestSvc.Delete(uint(id)); err != nil {
		log.Printf("DeleteGuest error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "could not delete guest")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
