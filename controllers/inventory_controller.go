// controllers/inventory_controller.go
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

type AssignItemPayload struct {
	InventoryItemID uint   `json:"inventoryItemId" binding:"required"`
	UnitID          uint   `json:"unitId" binding:"required"`
	SerialNumber    string `json:"serialNumber"`
	Notes           string `json:"notes"`
	MovedBy         string `json:"movedBy"`
}

type ReturnAssignmentPayload struct {
	Notes   string `json:"notes"`
	MovedBy string `json:"movedBy"`
}

type InventoryController struct {
	InventorySvc *services.InventoryService
	Cache        *utils.CacheRegistry
}

func NewInventoryController(svc *services.InventoryService, cache *utils.CacheRegistry) *InventoryController {
	return &InventoryController{InventorySvc: svc, Cache: cache}
}

func (ctrl *InventoryController) GetItems(c *gin.Context) {
	items, err := ctrl.InventorySvc.ListItems()
	if err != nil {
		log.Printf("GetItems error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchItems", "message": "could not load inventory items"}})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ctrl *InventoryController) CreateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid inventory item payload", "details": err.Error()}})
		return
	}

	if err := ctrl.InventorySvc.CreateItem(&item); err != nil {
		if strings.HasPrefix(err.Error(), "validation") {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidItem", "message": err.Error()}})
			return
		}
		log.Printf("CreateItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.createItemFailed", "message": "could not create inventory item"}})
		return
	}

	ctrl.Cache.Invalidate(utils.CacheScopeInventory)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": item})
}

func (ctrl *InventoryController) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidItemId", "message": "item id must be a positive number"}})
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid inventory item payload", "details": err.Error()}})
		return
	}
	item.ID = uint(itemID)

	if err := ctrl.InventorySvc.UpdateItem(&item); err != nil {
		if strings.HasPrefix(err.Error(), "validation") {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidItem", "message": err.Error()}})
			return
		}
		log.Printf("UpdateItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.updateItemFailed", "message": "could not update inventory item"}})
		return
	}

	ctrl.Cache.Invalidate(utils.CacheScopeInventory)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": item})
}

func (ctrl *InventoryController) CreateAssignment(c *gin.Context) {
	var payload AssignItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "inventoryItemId and unitId are required", "details": err.Error()}})
		return
	}

	assignment, err := ctrl.InventorySvc.AssignToUnit(payload.InventoryItemID, payload.UnitID, payload.SerialNumber, payload.Notes, payload.MovedBy)
	if err != nil {
		log.Printf("CreateAssignment error: %v", err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "item_not_found"), strings.Contains(msg, "unit_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.badReference", "message": msg}})
		case strings.Contains(msg, "item_out_of_stock"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.outOfStock", "message": "no units of this item remain in store"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.assignFailed", "message": "could not assign item", "details": msg}})
		}
		return
	}

	ctrl.Cache.Invalidate(utils.CacheScopeInventory)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": assignment})
}

func (ctrl *InventoryController) ReturnAssignment(c *gin.Context) {
	assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || assignmentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidAssignmentId", "message": "assignment id must be a positive number"}})
		return
	}

	var payload ReturnAssignmentPayload
	_ = c.ShouldBindJSON(&payload) // body is optional

	if err := ctrl.InventorySvc.ReturnToStore(uint(assignmentID), payload.Notes, payload.MovedBy); err != nil {
		log.Printf("ReturnAssignment error: %v", err)
		msg := err.Error()
		switch {
		case strings.Contains(msg, "assignment_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.assignmentNotFound", "message": msg}})
		case strings.Contains(msg, "assignment_already_returned"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.alreadyReturned", "message": msg}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.returnFailed", "message": "could not return assignment", "details": msg}})
		}
		return
	}

	ctrl.Cache.Invalidate(utils.CacheScopeInventory)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "assignment returned to store"})
}

func (ctrl *InventoryController) GetMovements(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidItemId", "message": "item id must be a positive number"}})
		return
	}

	movements, err := ctrl.InventorySvc.ListMovements(uint(itemID))
	if err != nil {
		log.Printf("GetMovements error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchMovements", "message": "could not load movements"}})
		return
	}
	c.JSON(http.StatusOK, movements)
}
