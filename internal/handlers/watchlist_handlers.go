package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/activity"
)

//
// --- Watchlist Handlers ---
//

// AddToWatchlistInput defines the JSON for adding content to a watchlist.
type AddToWatchlistInput struct {
	ProfileID int64 `json:"profileId" binding:"required,gt=0"`
	ContentID int64 `json:"contentId" binding:"required,gt=0"`
}

// AddToWatchlist is the handler for POST /v1/watchlist.
// Adding the same pair twice is a conflict, never a second row.
func (h *Handlers) AddToWatchlist(c *gin.Context) {
	userID := h.currentUserID(c)

	var input AddToWatchlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := activity.AddToWatchlist(h.DB, userID, input.ProfileID, input.ContentID)
	if err != nil {
		switch {
		case errors.Is(err, activity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile or content not found"})
		case errors.Is(err, activity.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Content is already in the watchlist"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to watchlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to watchlist", "entry": entry})
}

// GetWatchlist is the handler for GET /v1/watchlist.
func (h *Handlers) GetWatchlist(c *gin.Context) {
	userID := h.currentUserID(c)

	profileID, ok := optionalProfileID(c)
	if !ok {
		return
	}

	entries, err := activity.ListWatchlist(h.DB, userID, profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": entries})
}

// RemoveFromWatchlist is the handler for DELETE /v1/watchlist/:id.
func (h *Handlers) RemoveFromWatchlist(c *gin.Context) {
	userID := h.currentUserID(c)

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := activity.RemoveFromWatchlist(h.DB, userID, id); err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from watchlist"})
}

// RemoveContentFromWatchlist is the handler for DELETE /v1/watchlist/content/:contentId.
// It removes the content from every profile of the caller.
func (h *Handlers) RemoveContentFromWatchlist(c *gin.Context) {
	userID := h.currentUserID(c)

	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	removed, err := activity.RemoveContentFromWatchlist(h.DB, userID, contentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from watchlist"})
		return
	}
	if removed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found in watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from watchlist", "removed": removed})
}

// CheckWatchlist is the handler for GET /v1/watchlist/check/:contentId.
func (h *Handlers) CheckWatchlist(c *gin.Context) {
	userID := h.currentUserID(c)

	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}
	profileID, ok := optionalProfileID(c)
	if !ok {
		return
	}

	inList, err := activity.InWatchlist(h.DB, userID, profileID, contentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inWatchlist": inList})
}
