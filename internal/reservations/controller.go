package reservations

import (
	"errors"
	"net/http"

	"boothreserve/internal/catalog"
	"boothreserve/internal/shared/middleware"
	"boothreserve/internal/shared/utils/response"
	"boothreserve/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateReservation godoc
// @Summary Hold a booth for an event
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Param request body CreateReservationRequest true "Vendor application"
// @Success 201 {object} response.StandardApiResponse{data=ReservationResponse}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /events/{eventId}/reservations [post]
func (c *Controller) CreateReservation(ctx *gin.Context) {
	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid request data", "VALIDATION_ERROR",
			map[string]interface{}{"body": err.Error()})
		return
	}
	req.EventID = ctx.Param("eventId")
	req.VendorRef = middleware.CurrentUserID(ctx)

	reservation, err := c.service.CreateReservation(ctx.Request.Context(), req)
	if err != nil {
		respondServiceError(ctx, "Failed to reserve booth", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booth held successfully", ToReservationResponse(reservation), nil)
}

// GetReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.StandardApiResponse{data=ReservationResponse}
// @Router /reservations/{id} [get]
func (c *Controller) GetReservation(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	reservation, err := c.service.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, "Failed to get reservation", err)
		return
	}
	if !middleware.IsAdmin(ctx) && reservation.VendorRef != middleware.CurrentUserID(ctx) {
		respondServiceError(ctx, "Failed to get reservation", ErrForbidden)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", ToReservationResponse(reservation), nil)
}

// ListReservations godoc
// @Summary List reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Vendor name or email"
// @Param status query string false "Status"
// @Param category query string false "Booth category"
// @Param eventId query string false "Event ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.StandardApiResponse{data=ReservationListResponse}
// @Router /admin/reservations [get]
func (c *Controller) ListReservations(ctx *gin.Context) {
	var query ListReservationsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid query parameters", "VALIDATION_ERROR",
			map[string]interface{}{"query": err.Error()})
		return
	}

	page, err := c.service.ListReservations(ctx.Request.Context(), ListFilter{
		Query:    query.Q,
		Status:   Status(query.Status),
		Category: catalog.Category(query.Category),
		EventID:  query.EventID,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		respondServiceError(ctx, "Failed to list reservations", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", toListResponse(page), nil)
}

// Stats godoc
// @Summary Reservation counts by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventId query string false "Event ID"
// @Success 200 {object} response.StandardApiResponse{data=StatusCounts}
// @Router /admin/reservations/stats [get]
func (c *Controller) Stats(ctx *gin.Context) {
	var query StatsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid query parameters", "VALIDATION_ERROR",
			map[string]interface{}{"query": err.Error()})
		return
	}

	counts, err := c.service.Stats(ctx.Request.Context(), query.EventID)
	if err != nil {
		respondServiceError(ctx, "Failed to get reservation stats", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation stats retrieved successfully", counts, nil)
}

// TransitionReservation godoc
// @Summary Change a reservation's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body TransitionRequest true "Target status"
// @Success 200 {object} response.StandardApiResponse{data=ReservationResponse}
// @Failure 409 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse
// @Router /admin/reservations/{id}/transition [post]
func (c *Controller) TransitionReservation(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid request data", "VALIDATION_ERROR",
			map[string]interface{}{"body": err.Error()})
		return
	}

	reservation, err := c.service.TransitionReservation(ctx.Request.Context(), id, Status(req.Status), Status(req.ExpectedFrom))
	if err != nil {
		respondServiceError(ctx, "Failed to change reservation status", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation status updated successfully", ToReservationResponse(reservation), nil)
}

// Sweep godoc
// @Summary Expire lapsed holds now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.StandardApiResponse{data=SweepResult}
// @Router /admin/reservations/sweep [post]
func (c *Controller) Sweep(ctx *gin.Context) {
	result, err := c.service.RunSweep(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, "Expiry sweep failed", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Expiry sweep completed", result, nil)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "Invalid reservation ID", "VALIDATION_ERROR",
			map[string]interface{}{"fields": map[string]string{"id": "must be a UUID"}})
		return uuid.Nil, false
	}
	return id, true
}

func respondServiceError(ctx *gin.Context, message string, err error) {
	var validationErr *ValidationError
	var promoErr *PromoRejectedError

	switch {
	case errors.As(err, &validationErr):
		response.RespondError(ctx, http.StatusBadRequest, message, "VALIDATION_ERROR",
			map[string]interface{}{"fields": validationErr.Fields})
	case errors.Is(err, catalog.ErrCategoryNotSupported):
		response.RespondError(ctx, http.StatusBadRequest, message, "CATEGORY_NOT_SUPPORTED", nil)
	case errors.Is(err, ErrCategoryMismatch):
		response.RespondError(ctx, http.StatusBadRequest, message, "CATEGORY_MISMATCH", nil)
	case errors.As(err, &promoErr):
		response.RespondError(ctx, http.StatusBadRequest, message, "PROMO_REJECTED",
			map[string]interface{}{"reason": promoErr.Reason, "message": promoErr.Reason.Message()})
	case errors.Is(err, ErrBoothNotFound):
		response.RespondError(ctx, http.StatusNotFound, message, "BOOTH_NOT_FOUND", nil)
	case errors.Is(err, ErrReservationNotFound):
		response.RespondError(ctx, http.StatusNotFound, message, "NOT_FOUND", nil)
	case errors.Is(err, ErrForbidden):
		response.RespondError(ctx, http.StatusForbidden, message, "FORBIDDEN", nil)
	case errors.Is(err, ErrConflict):
		response.RespondError(ctx, http.StatusConflict, message, "BOOTH_UNAVAILABLE", nil)
	case errors.Is(err, ErrStaleState):
		details := map[string]interface{}(nil)
		if errors.Is(err, ErrHoldExpired) {
			details = map[string]interface{}{"reason": "HOLD_EXPIRED"}
		}
		response.RespondError(ctx, http.StatusConflict, message, "STALE_STATE", details)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondError(ctx, http.StatusUnprocessableEntity, message, "INVALID_TRANSITION",
			map[string]interface{}{"transition": err.Error()})
	default:
		logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondError(ctx, http.StatusInternalServerError, message, "INTERNAL_ERROR", nil)
	}
}
