package availability

import (
	"context"
	"net/http"

	"boothreserve/internal/catalog"
	"boothreserve/internal/shared/utils/response"
	"boothreserve/pkg/clock"
	"boothreserve/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AvailabilityProjector is implemented by *Projector
type AvailabilityProjector interface {
	ProjectAvailability(ctx context.Context, eventID string) ([]BoothAvailability, error)
}

type Controller struct {
	projector AvailabilityProjector
	clk       clock.Clock
}

func NewController(projector AvailabilityProjector, clk clock.Clock) *Controller {
	return &Controller{projector: projector, clk: clk}
}

// GetAvailability godoc
// @Summary Booth availability for an event
// @Tags availability
// @Produce json
// @Param eventId path string true "Event ID"
// @Param category query string false "Only booths of this category"
// @Success 200 {object} response.StandardApiResponse{data=AvailabilityResponse}
// @Router /events/{eventId}/availability [get]
func (c *Controller) GetAvailability(ctx *gin.Context) {
	eventID := ctx.Param("eventId")

	booths, err := c.projector.ProjectAvailability(ctx.Request.Context(), eventID)
	if err != nil {
		logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondError(ctx, http.StatusInternalServerError, "Failed to load availability", "INTERNAL_ERROR", nil)
		return
	}

	if category := catalog.Category(ctx.Query("category")); category != "" {
		filtered := make([]BoothAvailability, 0, len(booths))
		for _, b := range booths {
			if b.Category == category {
				filtered = append(filtered, b)
			}
		}
		booths = filtered
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully",
		toAvailabilityResponse(eventID, booths, c.clk.Now()), nil)
}
