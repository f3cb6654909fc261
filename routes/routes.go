package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookmycourt/handlers"
	"bookmycourt/middleware"
	"bookmycourt/utils"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
	}
}

// RegisterCourtRoutes registers court browsing, availability and admin
// management endpoints.
func RegisterCourtRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/courts")
	{
		api.GET("", hb.ListCourtsHandler)
		api.GET("/:id", hb.GetCourtHandler)
		api.GET("/:id/availability", hb.CourtAvailabilityHandler)

		// Court management requires admin.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnlyMiddleware())
		protected.POST("", hb.CreateCourtHandler)
		protected.PUT("/:id", hb.UpdateCourtHandler)
		protected.DELETE("/:id", hb.DeactivateCourtHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.POST("/:id/confirm", hb.ConfirmBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
		bookingGroup.POST("/:id/rating", hb.RateBookingHandler)
		bookingGroup.GET("/mine", hb.MyBookingsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnlyMiddleware())
		adminGroup.GET("/users", hb.AdminListUsersHandler)
		adminGroup.GET("/bookings", hb.AdminListBookingsHandler)
		adminGroup.PUT("/bookings/:id/status", hb.AdminUpdateBookingStatusHandler)
		adminGroup.POST("/notifications", hb.AdminBroadcastHandler)
	}
}

// RegisterRealtimeRoute registers the WebSocket notification channel.
func RegisterRealtimeRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws/notifications", hb.NotificationsWSHandler)
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic connectivity monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterCourtRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoute(r, hb)
	RegisterHealthRoute(r)
}
