package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhaven/streamhaven-golang/internal/config"
	"github.com/streamhaven/streamhaven-golang/internal/handlers"
	"github.com/streamhaven/streamhaven-golang/internal/middleware"
)

// CORSMiddleware tells the browser which frontends may talk to us.
// Allowed origins come from configuration instead of a hardcoded host.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if cfg.AllowedOrigin(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204 reply.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware(h.Config))

	secret := h.Config.JWTSecret

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)

		// --- Public Catalog Routes ---
		v1.GET("/content", h.GetContentList)
		v1.GET("/content/:id", h.GetContentDetail)

		// --- Public Search Routes ---
		v1.GET("/search", h.Search)
		v1.GET("/search/genres", h.SearchGenres)
		v1.GET("/search/years", h.SearchYears)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(secret))
		{
			// --- Profile Routes ---
			auth.GET("/profiles", h.GetProfiles)
			auth.POST("/profiles", h.CreateProfile)
			auth.PUT("/profiles/:id", h.UpdateProfile)
			auth.DELETE("/profiles/:id", h.DeleteProfile)

			// --- Watch History Routes ---
			auth.POST("/watchhistory", h.AddWatchHistory)
			auth.GET("/watchhistory", h.GetWatchHistory)
			auth.GET("/watchhistory/continue-watching", h.GetContinueWatching)
			auth.DELETE("/watchhistory/:id", h.DeleteWatchHistory)

			// --- Watchlist Routes ---
			auth.POST("/watchlist", h.AddToWatchlist)
			auth.GET("/watchlist", h.GetWatchlist)
			auth.DELETE("/watchlist/:id", h.RemoveFromWatchlist)
			auth.DELETE("/watchlist/content/:contentId", h.RemoveContentFromWatchlist)
			auth.GET("/watchlist/check/:contentId", h.CheckWatchlist)

			// --- Rating Routes ---
			auth.POST("/ratings", h.RateContent)

			// --- Recommendation Routes ---
			auth.GET("/recommendation", h.GetRecommendations)
			auth.GET("/recommendation/trending", h.GetTrending)
			auth.GET("/recommendation/similar/:contentId", h.GetSimilar)

			// --- Subscription & Payment Routes ---
			auth.GET("/payment/plans", h.GetPlans)
			auth.POST("/payment/create-checkout-session", h.CreateCheckoutSession)
			auth.GET("/payment/subscription", h.GetSubscription)
			auth.POST("/payment/cancel-subscription", h.CancelSubscription)
			auth.GET("/payment/payment-history", h.GetPaymentHistory)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(secret))
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.GET("/dashboard", h.GetDashboard)
			admin.GET("/users", h.GetUsers)
			admin.PUT("/users/:id/status", h.UpdateUserStatus)
			admin.PUT("/users/:id/role", h.UpdateUserRole)
			admin.GET("/analytics", h.GetAnalytics)

			admin.POST("/content", h.CreateContent)
			admin.PUT("/content/:id", h.UpdateContent)
			admin.DELETE("/content/:id", h.DeleteContent)
			admin.POST("/content/:id/seasons", h.CreateSeason)
			admin.POST("/seasons/:id/episodes", h.CreateEpisode)
		}
	}

	return router
}
