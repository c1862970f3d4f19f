package availability

import "github.com/gin-gonic/gin"

func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/events/:eventId/availability", controller.GetAvailability) // GET /api/v1/events/:eventId/availability
}
