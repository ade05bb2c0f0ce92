package middleware

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/models"
)

// AdminMiddleware gates a route group to admin users. The role is
// re-checked against the database rather than trusted from the token, so
// a demoted admin loses access without waiting for token expiry.
func AdminMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID_raw, exists := c.Get(CtxUserIDKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		userID := userID_raw.(int64)

		var role string
		var isActive bool
		err := db.QueryRow("SELECT role, is_active FROM users WHERE id = ?", userID).Scan(&role, &isActive)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			c.Abort()
			return
		}

		if !isActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
			c.Abort()
			return
		}
		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
