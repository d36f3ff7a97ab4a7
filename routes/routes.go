package routes

import (
	"net/http"
	"time"

	"slotify/handlers"
	"slotify/middleware"
	"slotify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCalendarRoutes registers the slot calendar endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/:serviceID/slots", hb.Calendar.GetDaySlotsHandler)
		api.GET("/:serviceID/slots/available", hb.Calendar.GetAvailableSlotsHandler)
		api.GET("/:serviceID/slots/live", hb.Calendar.GetLiveAvailabilityHandler)
		api.GET("/:serviceID/calendar", hb.Calendar.GetServiceCalendarHandler)

		api.POST("/:serviceID/calendar", hb.Calendar.PublishCalendarHandler)
		api.PATCH("/:serviceID/slots", hb.Calendar.SetSlotAvailabilityHandler)
		api.DELETE("/:serviceID/calendar", hb.Calendar.ClearCalendarHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for slot booking.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("", hb.Booking.CreateBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.POST("/calendars/migrate", hb.Admin.MigrateCalendarsHandler)
		adminGroup.POST("/calendars/refresh/:serviceID", hb.Admin.RefreshCalendarHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterCalendarRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
