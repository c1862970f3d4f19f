package reservations

import (
	"boothreserve/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	events.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleVendor, middleware.RoleAdmin))
	{
		events.POST("/:eventId/reservations", controller.CreateReservation) // POST /api/v1/events/:eventId/reservations
	}

	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleVendor, middleware.RoleAdmin))
	{
		reservations.GET("/:id", controller.GetReservation) // GET /api/v1/reservations/:id
	}

	admin := rg.Group("/admin/reservations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListReservations)                      // GET /api/v1/admin/reservations
		admin.GET("/stats", controller.Stats)                           // GET /api/v1/admin/reservations/stats
		admin.POST("/sweep", controller.Sweep)                          // POST /api/v1/admin/reservations/sweep
		admin.POST("/:id/transition", controller.TransitionReservation) // POST /api/v1/admin/reservations/:id/transition
	}
}
