package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"FIC_Backend/formstate"
	"FIC_Backend/metrics"
	"FIC_Backend/models"
)

// TrunkTailgateController is the submission endpoint for the trunk/tailgate
// block of page 1. Unlike the back-form endpoint it validates and echoes but
// does NOT queue a pending update — the upstream system never wired this
// side through the store, and the asymmetry is preserved deliberately.
// Front-form sessions still consume records of this form type inserted by
// other means.
type TrunkTailgateController struct{}

// POST /api/v1/fic/trunk-tailgate
func (tc *TrunkTailgateController) Post(c *gin.Context) {
	var payload formstate.TrunkTailgatePayload
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

	metrics.UpdatesReceived.WithLabelValues(models.FormTypeFront).Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "TRUNK/TAILGATE data received successfully",
		"receivedData": payload,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/v1/fic/trunk-tailgate — schema documentation, no side effects.
func (tc *TrunkTailgateController) Schema(c *gin.Context) {
	itemSchema := gin.H{
		"type": "object",
		"properties": gin.H{
			"wiuAssoc":    gin.H{"type": "string", "description": "WIU Associate number"},
			"rej":         gin.H{"type": "boolean", "description": "Rejection status"},
			"repairedBy":  gin.H{"type": "string", "description": "Repaired by associate name"},
			"inspectedBy": gin.H{"type": "string", "description": "Inspected by associate name"},
		},
	}
	c.JSON(http.StatusOK, gin.H{
		"endpoint":    "/api/v1/fic/trunk-tailgate",
		"methods":     []string{"POST", "GET"},
		"description": "API endpoint for TRUNK/TAILGATE inspection data",
		"schema": gin.H{
			"vin":                      gin.H{"type": "string", "required": true, "description": "Vehicle Identification Number"},
			"tailgateFunction":         itemSchema,
			"seatbeltFunction":         itemSchema,
			"seatHeadrest":             itemSchema,
			"vinLabelPrintedCondition": itemSchema,
		},
		"exampleRequest": gin.H{
			"vin": "5J8YD9H43TL000680",
			"tailgateFunction": gin.H{
				"wiuAssoc": "W-1042", "rej": false, "repairedBy": "", "inspectedBy": "Sarah",
			},
			"seatbeltFunction": gin.H{
				"wiuAssoc": "W-1042", "rej": true, "repairedBy": "Mike", "inspectedBy": "Sarah",
			},
		},
	})
}
