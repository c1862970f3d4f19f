package catalog

import "github.com/gin-gonic/gin"

// SetupCatalogRoutes configures the read-only booth catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	booths := rg.Group("/booths")
	{
		booths.GET("", controller.ListBooths)        // GET /api/v1/booths?category=craft
		booths.GET("/:boothId", controller.GetBooth) // GET /api/v1/booths/:boothId
	}
}
