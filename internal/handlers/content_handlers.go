package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/catalog"
	"github.com/streamhaven/streamhaven-golang/internal/models"
)

//
// --- Public Catalog Handlers ---
//

// GetContentList is the handler for GET /v1/content.
// Soft-deleted rows never show up here; the catalog package filters them.
func (h *Handlers) GetContentList(c *gin.Context) {
	items, err := catalog.List(h.DB, catalog.Filter{
		Type:  c.Query("type"),
		Genre: c.Query("genre"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// GetContentDetail is the handler for GET /v1/content/:id.
func (h *Handlers) GetContentDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := catalog.Get(h.DB, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

//
// --- Admin Catalog Handlers ---
//

// ContentInput defines the JSON for creating or updating content.
type ContentInput struct {
	Title        string  `json:"title" binding:"required"`
	Description  *string `json:"description"`
	Type         string  `json:"type" binding:"required,oneof=Movie Series"`
	Genre        string  `json:"genre" binding:"required"`
	ReleaseYear  int     `json:"releaseYear" binding:"required,gte=1888"`
	Rating       float64 `json:"rating" binding:"gte=0,lte=10"`
	Duration     int     `json:"duration" binding:"gte=0"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	TrailerURL   *string `json:"trailerUrl"`
	VideoURL     *string `json:"videoUrl"`
}

// CreateContent is the handler for POST /v1/admin/content.
func (h *Handlers) CreateContent(c *gin.Context) {
	var input ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO content (title, description, type, genre, release_year, rating, duration,
		                     thumbnail_url, trailer_url, video_url, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		input.Title, input.Description, input.Type, input.Genre, input.ReleaseYear,
		input.Rating, input.Duration, input.ThumbnailURL, input.TrailerURL, input.VideoURL, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Content created successfully", "contentId": id})
}

// UpdateContent is the handler for PUT /v1/admin/content/:id.
func (h *Handlers) UpdateContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.DB.Exec(`
		UPDATE content
		SET title = ?, description = ?, type = ?, genre = ?, release_year = ?,
		    rating = ?, duration = ?, thumbnail_url = ?, trailer_url = ?, video_url = ?
		WHERE id = ?`,
		input.Title, input.Description, input.Type, input.Genre, input.ReleaseYear,
		input.Rating, input.Duration, input.ThumbnailURL, input.TrailerURL, input.VideoURL, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content updated successfully"})
}

// DeleteContent is the handler for DELETE /v1/admin/content/:id.
// Content is soft-deleted: the row stays for admin reporting but drops
// out of every viewer-facing read path.
func (h *Handlers) DeleteContent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.DB.Exec("UPDATE content SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// SeasonInput defines the JSON for adding a season to a series.
type SeasonInput struct {
	SeasonNumber int    `json:"seasonNumber" binding:"required,gt=0"`
	Title        string `json:"title" binding:"required"`
}

// CreateSeason is the handler for POST /v1/admin/content/:id/seasons.
func (h *Handlers) CreateSeason(c *gin.Context) {
	contentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input SeasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Seasons only make sense on a series.
	var contentType string
	err := h.DB.QueryRow("SELECT type FROM content WHERE id = ?", contentID).Scan(&contentType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	if contentType != models.ContentTypeSeries {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seasons can only be added to a series"})
		return
	}

	res, err := h.DB.Exec(
		"INSERT INTO seasons (content_id, season_number, title) VALUES (?, ?, ?)",
		contentID, input.SeasonNumber, input.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create season"})
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create season"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Season created successfully", "seasonId": id})
}

// EpisodeInput defines the JSON for adding an episode to a season.
type EpisodeInput struct {
	EpisodeNumber int     `json:"episodeNumber" binding:"required,gt=0"`
	Title         string  `json:"title" binding:"required"`
	Description   *string `json:"description"`
	Duration      int     `json:"duration" binding:"gte=0"`
	VideoURL      *string `json:"videoUrl"`
	ThumbnailURL  *string `json:"thumbnailUrl"`
}

// CreateEpisode is the handler for POST /v1/admin/seasons/:id/episodes.
func (h *Handlers) CreateEpisode(c *gin.Context) {
	seasonID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int64
	if err := h.DB.QueryRow("SELECT id FROM seasons WHERE id = ?", seasonID).Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Season not found"})
		return
	}

	res, err := h.DB.Exec(`
		INSERT INTO episodes (season_id, episode_number, title, description, duration, video_url, thumbnail_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seasonID, input.EpisodeNumber, input.Title, input.Description,
		input.Duration, input.VideoURL, input.ThumbnailURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create episode"})
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create episode"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Episode created successfully", "episodeId": id})
}
