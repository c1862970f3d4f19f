package catalog

import (
	"net/http"
	"strconv"

	"boothreserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	catalog *Catalog
}

func NewController(catalog *Catalog) *Controller {
	return &Controller{catalog: catalog}
}

// ListBooths handles GET /api/v1/booths
func (ctrl *Controller) ListBooths(c *gin.Context) {
	category := Category(c.Query("category"))

	booths := make([]BoothResponse, 0, ctrl.catalog.Len())
	for _, b := range ctrl.catalog.All() {
		if category != "" && b.Category != category {
			continue
		}
		booths = append(booths, toBoothResponse(b))
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booths retrieved successfully",
		BoothListResponse{Booths: booths, Total: len(booths)}, nil)
}

// GetBooth handles GET /api/v1/booths/:boothId
func (ctrl *Controller) GetBooth(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("boothId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid booth ID", "VALIDATION_ERROR", nil)
		return
	}

	b, ok := ctrl.catalog.Lookup(id)
	if !ok {
		response.RespondError(c, http.StatusNotFound, "Booth not found", "BOOTH_NOT_FOUND", nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booth retrieved successfully", toBoothResponse(b), nil)
}
