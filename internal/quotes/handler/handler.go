package handler

import (
	"net/http"
	"strconv"

	"booking_portal_backend/internal/quotes/service"
	"booking_portal_backend/internal/quotes/transport"
	"booking_portal_backend/platform/httpkit"
	"booking_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for quotes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new quotes handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the quote routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/accept", h.Accept)
}

// Accept handles POST /api/v1/quotes/:id/accept
func (h *Handler) Accept(c *gin.Context) {
	quoteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || quoteID <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid quote id", nil)
		return
	}

	var req transport.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	attemptID, err := uuid.Parse(req.AttemptID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid attempt id", nil)
		return
	}

	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.AcceptQuote(c.Request.Context(), userID, quoteID, service.AcceptQuoteInput{
		AttemptID:         attemptID,
		Notes:             req.Notes,
		CreateAppointment: req.CreateAppointment,
		AppointmentDate:   req.AppointmentDate,
		AppointmentTime:   req.AppointmentTime,
		DurationHours:     req.DurationHours,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
