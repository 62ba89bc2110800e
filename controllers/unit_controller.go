package controllers

import (
	"log"
	"net/http"
	"strconv"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

var unitSvc = services.UnitService{}

// GetUnits (GET /api/units)
func GetUnits(c *gin.Context) {
	units, err := unitSvc.GetAll()
	if err != nil {
		log.Printf("GetUnits error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load units"})
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetUnit (GET /api/units/:id)
func GetUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive number"})
		return
	}

	unit, err := unitSvc.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}
	c.JSON(http.StatusOK, unit)
}

// CreateUnit (POST /api/units)
func CreateUnit(c *gin.Context) {
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := unitSvc.Create(unit); err != nil {
		log.Printf("CreateUnit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create unit"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// UpdateUnit (PATCH/PUT /api/units/:id)
func UpdateUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive number"})
		return
	}

	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	unit.ID = uint(id)

	if err := unitSvc.Update(unit); err != nil {
		log.Printf("UpdateUnit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update unit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteUnit (DELETE /api/units/:id)
func DeleteUnit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit id must be a positive number"})
		return
	}

	if err := unitSvc.Delete(id); err != nil {
		log.Printf("DeleteUnit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete unit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
