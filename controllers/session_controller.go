package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"FIC_Backend/formstate"
	"FIC_Backend/models"
	"FIC_Backend/session"
)

// SessionController exposes form-page instances over HTTP: open a page, read
// its reconciled state, push user edits, close it.
type SessionController struct {
	Sessions *session.Manager
}

type openSessionRequest struct {
	VIN      string `json:"vin"`
	FormType string `json:"form_type"`
}

// POST /api/v1/fic/sessions
func (sc *SessionController) Open(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidFormType(req.FormType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form_type must be back_form or front_trunk_tailgate"})
		return
	}
	s, err := sc.Sessions.Open(c.Request.Context(), req.FormType, req.VIN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s.Snapshot())
}

// GET /api/v1/fic/sessions/:id
func (sc *SessionController) Get(c *gin.Context) {
	s, err := sc.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// PUT /api/v1/fic/sessions/:id/fields — direct user edit, bypassing the
// pending-update queue. Remote applies arriving concurrently win per field,
// last writer takes the cell.
func (sc *SessionController) UpdateFields(c *gin.Context) {
	s, err := sc.Sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var res formstate.ApplyResult
	switch s.FormType {
	case models.FormTypeBack:
		var edit formstate.BackFormEdit
		if err := c.ShouldBindJSON(&edit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err = s.EditBack(edit)
	case models.FormTypeFront:
		var edit formstate.FrontFormEdit
		if err := c.ShouldBindJSON(&edit); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err = s.EditFront(edit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "session": s.Snapshot()})
}

// DELETE /api/v1/fic/sessions/:id
func (sc *SessionController) Close(c *gin.Context) {
	if err := sc.Sessions.Close(c.Param("id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
