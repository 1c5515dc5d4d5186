package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"FIC_Backend/models"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ChecklistController serves the seeded item catalog (page 1 stations).
type ChecklistController struct {
	DB *gorm.DB
}

// GET /api/v1/fic/checklist-items?station=Function
func (cc *ChecklistController) List(c *gin.Context) {
	station := c.Query("station")
	query := cc.DB.Where("is_active = ?", true).Order("item_order ASC")
	if station != "" {
		query = query.Where("station = ?", station)
	}
	var items []models.ChecklistItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "data": items})
}
