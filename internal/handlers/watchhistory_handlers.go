package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/activity"
)

//
// --- Watch History Handlers ---
//

// AddWatchHistoryInput defines the JSON for recording watch progress.
type AddWatchHistoryInput struct {
	ProfileID int64  `json:"profileId" binding:"required,gt=0"`
	ContentID int64  `json:"contentId" binding:"required,gt=0"`
	EpisodeID *int64 `json:"episodeId"`
	Progress  int    `json:"progress" binding:"gte=0"`
	Completed bool   `json:"completed"`
}

// AddWatchHistory is the handler for POST /v1/watchhistory.
// Repeated reports for the same (profile, content, episode) key update
// the existing row in place.
func (h *Handlers) AddWatchHistory(c *gin.Context) {
	userID := h.currentUserID(c)

	var input AddWatchHistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := activity.RecordProgress(h.DB, userID, activity.ProgressInput{
		ProfileID: input.ProfileID,
		ContentID: input.ContentID,
		EpisodeID: input.EpisodeID,
		Progress:  input.Progress,
		Completed: input.Completed,
	})
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile or content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record watch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watch history updated successfully"})
}

// GetWatchHistory is the handler for GET /v1/watchhistory.
func (h *Handlers) GetWatchHistory(c *gin.Context) {
	userID := h.currentUserID(c)

	profileID, ok := optionalProfileID(c)
	if !ok {
		return
	}

	history, err := activity.ListHistory(h.DB, userID, profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load watch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// GetContinueWatching is the handler for GET /v1/watchhistory/continue-watching.
func (h *Handlers) GetContinueWatching(c *gin.Context) {
	userID := h.currentUserID(c)

	profileID, ok := optionalProfileID(c)
	if !ok {
		return
	}

	entries, err := activity.ContinueWatching(h.DB, userID, profileID, limitQuery(c, 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load continue watching"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"continueWatching": entries})
}

// DeleteWatchHistory is the handler for DELETE /v1/watchhistory/:id.
func (h *Handlers) DeleteWatchHistory(c *gin.Context) {
	userID := h.currentUserID(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := activity.DeleteHistory(h.DB, userID, id); err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Watch history not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete watch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watch history deleted successfully"})
}
