package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

//
// --- Profile Handlers ---
//

// profilesForUser loads all profiles owned by a user.
func (h *Handlers) profilesForUser(userID int64) ([]models.Profile, error) {
	rows, err := h.DB.Query(`
		SELECT id, user_id, name, avatar_url, is_kids, created_at
		FROM profiles WHERE user_id = ?
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.AvatarURL, &p.IsKids, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetProfiles is the handler for GET /v1/profiles.
func (h *Handlers) GetProfiles(c *gin.Context) {
	profiles, err := h.profilesForUser(h.currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// ProfileInput defines the JSON for creating or updating a profile.
type ProfileInput struct {
	Name      string  `json:"name" binding:"required,max=100"`
	AvatarURL *string `json:"avatarUrl"`
	IsKids    bool    `json:"isKidsProfile"`
}

// CreateProfile is the handler for POST /v1/profiles.
func (h *Handlers) CreateProfile(c *gin.Context) {
	userID := h.currentUserID(c)

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO profiles (user_id, name, avatar_url, is_kids, created_at) VALUES (?, ?, ?, ?, ?)",
		userID, input.Name, input.AvatarURL, input.IsKids, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": models.Profile{
		ID: id, UserID: userID, Name: input.Name,
		AvatarURL: input.AvatarURL, IsKids: input.IsKids, CreatedAt: now,
	}})
}

// UpdateProfile is the handler for PUT /v1/profiles/:id.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	userID := h.currentUserID(c)
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.DB.Exec(`
		UPDATE profiles SET name = ?, avatar_url = ?, is_kids = ?
		WHERE id = ? AND user_id = ?`,
		input.Name, input.AvatarURL, input.IsKids, profileID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteProfile is the handler for DELETE /v1/profiles/:id.
// It removes the profile's activity with it; a user cannot delete their
// last remaining profile.
func (h *Handlers) DeleteProfile(c *gin.Context) {
	userID := h.currentUserID(c)
	profileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var owned int64
	err := h.DB.QueryRow("SELECT id FROM profiles WHERE id = ? AND user_id = ?", profileID, userID).Scan(&owned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var count int
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM profiles WHERE user_id = ?", userID).Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if count <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete the last profile"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction failed"})
		return
	}
	defer tx.Rollback()

	// Explicit cascade keeps the behavior identical on every backend.
	for _, table := range []string{"watch_history", "watchlist", "ratings"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE profile_id = ?", profileID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile data"})
			return
		}
	}
	if _, err := tx.Exec("DELETE FROM profiles WHERE id = ?", profileID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
