package promos

import (
	"errors"
	"net/http"

	"boothreserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ValidateCode godoc
// @Summary Check a promo code
// @Tags promos
// @Produce json
// @Param code path string true "Promo code"
// @Param eventId query string false "Event the code would be used for"
// @Param amount query string false "Booth price to evaluate against"
// @Success 200 {object} response.StandardApiResponse{data=ValidationResponse}
// @Router /promos/validate/{code} [get]
func (c *Controller) ValidateCode(ctx *gin.Context) {
	var query ValidatePromoQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid query parameters", "VALIDATION_ERROR", map[string]interface{}{"query": err.Error()})
		return
	}

	result, err := c.service.ValidateCode(ctx.Request.Context(), ctx.Param("code"), query)
	if err != nil {
		c.respondServiceError(ctx, "Failed to validate promo code", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, result.Message, result, nil)
}

func (c *Controller) CreatePromo(ctx *gin.Context) {
	var req CreatePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid request data", "VALIDATION_ERROR", map[string]interface{}{"body": err.Error()})
		return
	}

	promo, err := c.service.CreatePromo(ctx.Request.Context(), req)
	if err != nil {
		c.respondServiceError(ctx, "Failed to create promo", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Promo created successfully", promo, nil)
}

func (c *Controller) GetPromo(ctx *gin.Context) {
	promo, err := c.service.GetPromo(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondServiceError(ctx, "Failed to get promo", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo retrieved successfully", promo, nil)
}

func (c *Controller) ListPromos(ctx *gin.Context) {
	var query ListPromosQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid query parameters", "VALIDATION_ERROR", map[string]interface{}{"query": err.Error()})
		return
	}

	promos, err := c.service.ListPromos(ctx.Request.Context(), query)
	if err != nil {
		c.respondServiceError(ctx, "Failed to list promos", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promos retrieved successfully", promos, nil)
}

func (c *Controller) UpdatePromo(ctx *gin.Context) {
	var req UpdatePromoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid request data", "VALIDATION_ERROR", map[string]interface{}{"body": err.Error()})
		return
	}

	promo, err := c.service.UpdatePromo(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		c.respondServiceError(ctx, "Failed to update promo", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo updated successfully", promo, nil)
}

func (c *Controller) DeletePromo(ctx *gin.Context) {
	if err := c.service.DeletePromo(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondServiceError(ctx, "Failed to delete promo", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Promo deleted successfully", nil, nil)
}

func (c *Controller) respondServiceError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		response.RespondError(ctx, http.StatusNotFound, message, "NOT_FOUND", nil)
	case errors.Is(err, ErrDuplicateCode):
		response.RespondError(ctx, http.StatusConflict, message, "DUPLICATE_CODE", nil)
	case errors.Is(err, ErrInvalidPromo):
		response.RespondError(ctx, http.StatusBadRequest, message, "VALIDATION_ERROR", map[string]interface{}{"promo": err.Error()})
	default:
		response.RespondError(ctx, http.StatusInternalServerError, message, "INTERNAL_ERROR", nil)
	}
}
