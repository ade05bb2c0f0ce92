package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/config"
	"github.com/streamhaven/streamhaven-golang/internal/middleware"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB     *sql.DB
	Config *config.Config
}

// currentUserID reads the user id the auth middleware stored on the context.
func (h *Handlers) currentUserID(c *gin.Context) int64 {
	userID_raw, _ := c.Get(middleware.CtxUserIDKey)
	return userID_raw.(int64)
}

// pathID parses a numeric path parameter, replying 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// optionalProfileID parses the optional ?profileId query parameter.
func optionalProfileID(c *gin.Context) (*int64, bool) {
	raw := c.Query("profileId")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profileId parameter"})
		return nil, false
	}
	return &id, true
}

// limitQuery parses the optional ?limit parameter, falling back to def.
func limitQuery(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
