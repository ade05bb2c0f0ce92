package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/recommend"
)

//
// --- Recommendation Handlers ---
//

// GetRecommendations is the handler for GET /v1/recommendation.
func (h *Handlers) GetRecommendations(c *gin.Context) {
	userID := h.currentUserID(c)

	profileID, ok := optionalProfileID(c)
	if !ok {
		return
	}

	items, err := recommend.ForUser(h.DB, userID, profileID, limitQuery(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// GetTrending is the handler for GET /v1/recommendation/trending.
func (h *Handlers) GetTrending(c *gin.Context) {
	items, err := recommend.Trending(h.DB, limitQuery(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trending content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trending": items})
}

// GetSimilar is the handler for GET /v1/recommendation/similar/:contentId.
func (h *Handlers) GetSimilar(c *gin.Context) {
	contentID, ok := pathID(c, "contentId")
	if !ok {
		return
	}

	items, err := recommend.Similar(h.DB, contentID, limitQuery(c, 10))
	if err != nil {
		if errors.Is(err, recommend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load similar content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"similar": items})
}
