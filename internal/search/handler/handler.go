package handler

import (
	"net/http"

	"booking_portal_backend/internal/search/service"
	"booking_portal_backend/internal/search/transport"
	"booking_portal_backend/platform/httpkit"
	"booking_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for search suggestions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new search handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/suggestions", h.Suggestions)
}

// Suggestions handles GET /api/v1/search/suggestions
func (h *Handler) Suggestions(c *gin.Context) {
	var query transport.SuggestionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	suggestions, err := h.svc.Suggest(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"suggestions": suggestions})
}
