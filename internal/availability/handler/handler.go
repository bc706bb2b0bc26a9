package handler

import (
	"net/http"

	"booking_portal_backend/internal/availability/service"
	"booking_portal_backend/internal/availability/transport"
	"booking_portal_backend/platform/httpkit"
	"booking_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for availability lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new availability handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the availability routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.GetSlots)
	rg.GET("/slots/check", h.CheckSlot)
}

// GetSlots handles GET /api/v1/availability/slots
func (h *Handler) GetSlots(c *gin.Context) {
	var query transport.SlotQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	list, err := h.svc.FetchSlots(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, list)
}

// CheckSlot handles GET /api/v1/availability/slots/check
func (h *Handler) CheckSlot(c *gin.Context) {
	var query transport.SlotCheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	available, err := h.svc.IsSlotStillAvailable(c.Request.Context(), query.SlotQuery, query.Time)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SlotCheckResult{Available: available})
}
