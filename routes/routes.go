package routes

import (
	"net/http"
	"time"

	"studiobook/handlers"
	"studiobook/middleware"
	"studiobook/services/booking"
	"studiobook/services/calendar"
	"studiobook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the services the route tree needs.
type HandlerBundle struct {
	Intake   booking.IntakeService
	Approval booking.ApprovalService
	Calendar calendar.Service
}

// RegisterBookingRoutes sets up intake and the approve/deny links.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", handlers.SubmitBookingHandler(hb.Intake))
		// Approve/deny arrive as GETs from email links.
		api.GET("/approve", handlers.ApproveBookingHandler(hb.Approval))
		api.GET("/deny", handlers.DenyBookingHandler(hb.Approval))
	}
}

// RegisterCalendarRoutes sets up the public calendar reads.
func RegisterCalendarRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.GET("", handlers.MonthViewHandler(hb.Calendar))
		api.GET("/slots", handlers.AvailableSlotsHandler(hb.Calendar))
	}
}

// RegisterAdminRoutes sets up the authenticated administrator endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.POST("/calendar", handlers.UpsertCalendarDayHandler(hb.Calendar))
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  "ok",
			"mongo":   status.Mongo,
			"redis":   status.Redis,
			"checked": status.CheckedAt,
		})
	})
}

// RegisterRoutes applies global middleware and mounts every route group.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
