package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FIC_Backend/store"
)

// PendingController is a read-only listing of the pending-update queue,
// mostly for operators checking why a form did not update.
type PendingController struct {
	Store store.PendingStore
}

type pendingListQuery struct {
	FormType  string `form:"form_type"`
	Processed *bool  `form:"processed"`
	Page      int    `form:"page,default=1"`
	Size      int    `form:"size,default=20"`
}

// GET /api/v1/fic/pending?form_type=back_form&processed=false&page=1&size=20
func (pc *PendingController) List(c *gin.Context) {
	var q pendingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recs, total, err := pc.Store.List(c.Request.Context(), store.ListQuery{
		FormType:  q.FormType,
		Processed: q.Processed,
		Page:      q.Page,
		Size:      q.Size,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       recs,
		"pagination": gin.H{"page": q.Page, "size": q.Size, "total": total},
	})
}
