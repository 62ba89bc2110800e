package controllers

import (
	"log"
	"net/http"
	"strconv"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

var propertySvc = services.PropertyService{}

// GetProperties (GET /api/properties)
func GetProperties(c *gin.Context) {
	properties, err := propertySvc.GetAll()
	if err != nil {
		log.Printf("GetProperties error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// CreateProperty (POST /api/properties)
func CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := propertySvc.Create(property); err != nil {
		log.Printf("CreateProperty error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create property"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// UpdateProperty (PUT /api/properties/:id)
func UpdateProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive number"})
		return
	}

	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request payload", "details": err.Error()})
		return
	}
	property.ID = uint(id)

	if err := propertySvc.Update(property); err != nil {
		log.Printf("UpdateProperty error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update property"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteProperty (DELETE /api/properties/:id)
func DeleteProperty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property id must be a positive number"})
		return
	}

	if err := propertySvc.Delete(id); err != nil {
		log.Printf("DeleteProperty error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete property"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
