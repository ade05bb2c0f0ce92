package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/activity"
)

// RateContentInput defines the JSON for rating content.
type RateContentInput struct {
	ProfileID int64 `json:"profileId" binding:"required,gt=0"`
	ContentID int64 `json:"contentId" binding:"required,gt=0"`
	Score     int   `json:"score" binding:"required,min=1,max=5"`
}

// RateContent is the handler for POST /v1/ratings.
// A profile holds one score per content; rating again replaces it.
func (h *Handlers) RateContent(c *gin.Context) {
	userID := h.currentUserID(c)

	var input RateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := activity.RateContent(h.DB, userID, input.ProfileID, input.ContentID, input.Score)
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile or content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating saved successfully"})
}
