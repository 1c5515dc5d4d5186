package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"FIC_Backend/formstate"
	"FIC_Backend/metrics"
	"FIC_Backend/models"
	"FIC_Backend/store"
)

// BackFormController is the submission endpoint for page 2 (paint microns
// and parts changes). Valid payloads become pending-update rows for an open
// form to pick up.
type BackFormController struct {
	Store store.PendingStore
}

// POST /api/v1/fic/back-form
func (bc *BackFormController) Post(c *gin.Context) {
	var payload formstate.BackFormPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	if payload.VIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "VIN is required"})
		return
	}
	if !models.ValidSection(payload.Section) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Section is required. Valid values: paintMicrons, partsChanges, both",
		})
		return
	}
	if models.SectionCoversPaint(payload.Section) && payload.PaintMicrons == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "paintMicrons array is required when section is paintMicrons or both",
		})
		return
	}
	if models.SectionCoversParts(payload.Section) && payload.PartsChanges == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "partsChanges array is required when section is partsChanges or both",
		})
		return
	}
	for _, entry := range payload.PaintMicrons {
		if entry.Row < 0 || entry.Row > formstate.PaintMicronRows-1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Invalid paint microns row: %d. Valid range is 0-9", entry.Row),
			})
			return
		}
	}
	for _, entry := range payload.PartsChanges {
		if entry.Row < 0 || entry.Row > formstate.PartsChangeRows-1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Invalid parts change row: %d. Valid range is 0-11", entry.Row),
			})
			return
		}
	}

	data, err := json.Marshal(gin.H{
		"paintMicrons": payload.PaintMicrons,
		"partsChanges": payload.PartsChanges,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	rec := models.PendingUpdate{
		VIN:       payload.VIN,
		FormType:  models.FormTypeBack,
		Section:   payload.Section,
		Data:      datatypes.JSON(data),
		Processed: false,
	}
	if err := bc.Store.Insert(c.Request.Context(), &rec); err != nil {
		log.Printf("back form: insert pending update failed: %v", err)
		metrics.StoreErrors.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to store form data",
			"details": err.Error(),
		})
		return
	}

	metrics.UpdatesReceived.WithLabelValues(models.FormTypeBack).Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "FIC Back Form data received and queued for form update",
		"receivedData": payload,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/v1/fic/back-form — schema documentation, no side effects.
func (bc *BackFormController) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"endpoint":    "/api/v1/fic/back-form",
		"methods":     []string{"POST", "GET"},
		"description": "API endpoint for FIC Back Form (Page 2) - Paint Microns and Parts Changes. Data sent via POST will automatically populate the form in real-time.",
		"schema": gin.H{
			"vin": gin.H{"type": "string", "required": true, "description": "Vehicle Identification Number"},
			"section": gin.H{
				"type":        "string",
				"required":    true,
				"enum":        []string{"paintMicrons", "partsChanges", "both"},
				"description": "Which section(s) to update",
			},
			"paintMicrons": gin.H{
				"type":        "array",
				"description": "Paint micron readings (rows 0-9)",
				"items": gin.H{
					"row":               gin.H{"type": "number", "required": true, "description": "Row index (0-9)"},
					"fillLid":           gin.H{"type": "string"},
					"allBody":           gin.H{"type": "string"},
					"hood":              gin.H{"type": "string"},
					"roof":              gin.H{"type": "string"},
					"trunkTailgate":     gin.H{"type": "string"},
					"fenderLeft":        gin.H{"type": "string"},
					"fenderRight":       gin.H{"type": "string"},
					"rearPanelLeft":     gin.H{"type": "string"},
					"rearPanelRight":    gin.H{"type": "string"},
					"frontDoor1":        gin.H{"type": "string"},
					"frontDoor2":        gin.H{"type": "string"},
					"rearDoor3":         gin.H{"type": "string"},
					"rearDoor4":         gin.H{"type": "string"},
					"pillarLeft":        gin.H{"type": "string"},
					"pillarRight":       gin.H{"type": "string"},
					"locationMain":      gin.H{"type": "string"},
					"locationFinal":     gin.H{"type": "string"},
					"repairConfirmedBy": gin.H{"type": "string"},
				},
			},
			"partsChanges": gin.H{
				"type":        "array",
				"description": "Parts on/off changes (rows 0-11)",
				"items": gin.H{
					"row":         gin.H{"type": "number", "required": true, "description": "Row index (0-11)"},
					"partName":    gin.H{"type": "string"},
					"removeX":     gin.H{"type": "boolean"},
					"removedBy":   gin.H{"type": "string"},
					"installedBy": gin.H{"type": "string"},
					"inspectedBy": gin.H{"type": "string"},
				},
			},
		},
		"exampleRequests": gin.H{
			"paintMicronsOnly": gin.H{
				"vin":     "5J8YD9H43TL000680",
				"section": "paintMicrons",
				"paintMicrons": []gin.H{
					{"row": 0, "hood": "85", "roof": "90", "fenderLeft": "82", "fenderRight": "84", "repairConfirmedBy": "John"},
					{"row": 1, "hood": "88", "roof": "92", "locationMain": "Bay 3", "repairConfirmedBy": "Jane"},
				},
			},
			"partsChangesOnly": gin.H{
				"vin":     "5J8YD9H43TL000680",
				"section": "partsChanges",
				"partsChanges": []gin.H{
					{"row": 0, "partName": "Front Bumper", "removeX": true, "removedBy": "Mike", "installedBy": "Mike", "inspectedBy": "Sarah"},
					{"row": 1, "partName": "Headlight Assembly", "removeX": false, "removedBy": "Tom", "installedBy": "Tom", "inspectedBy": "Sarah"},
				},
			},
			"bothSections": gin.H{
				"vin":     "5J8YD9H43TL000680",
				"section": "both",
				"paintMicrons": []gin.H{
					{"row": 0, "hood": "85", "roof": "90", "repairConfirmedBy": "John"},
				},
				"partsChanges": []gin.H{
					{"row": 0, "partName": "Front Bumper", "removeX": true, "removedBy": "Mike", "installedBy": "Mike", "inspectedBy": "Sarah"},
				},
			},
		},
	})
}
