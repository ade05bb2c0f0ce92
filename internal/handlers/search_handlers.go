package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/catalog"
)

//
// --- Search Handlers ---
//

// Search is the handler for GET /v1/search.
func (h *Handlers) Search(c *gin.Context) {
	filter := catalog.SearchFilter{
		Query: c.Query("query"),
		Type:  c.Query("type"),
		Genre: c.Query("genre"),
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
			return
		}
		filter.Year = year
	}
	if raw := c.Query("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minRating parameter"})
			return
		}
		filter.MinRating = minRating
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
			return
		}
		filter.Page = page
	}
	if raw := c.Query("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pageSize parameter"})
			return
		}
		filter.PageSize = pageSize
	}

	result, err := catalog.Search(h.DB, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchGenres is the handler for GET /v1/search/genres.
func (h *Handlers) SearchGenres(c *gin.Context) {
	genres, err := catalog.Genres(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load genres"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// SearchYears is the handler for GET /v1/search/years.
func (h *Handlers) SearchYears(c *gin.Context) {
	years, err := catalog.Years(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load years"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}
