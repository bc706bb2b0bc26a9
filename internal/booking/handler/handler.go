package handler

import (
	"net/http"

	"booking_portal_backend/internal/booking/domain"
	"booking_portal_backend/internal/booking/service"
	"booking_portal_backend/internal/booking/transport"
	"booking_portal_backend/platform/httpkit"
	"booking_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidDraftID   = "invalid draft id"
)

// Handler handles HTTP requests for the booking wizard.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new booking handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the wizard and booking routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListBookings)

	drafts := rg.Group("/drafts")
	drafts.POST("", h.StartDraft)
	drafts.GET("/:id", h.GetDraft)
	drafts.PATCH("/:id", h.UpdateDraft)
	drafts.GET("/:id/slots", h.RefreshSlots)
	drafts.POST("/:id/slot", h.SelectSlot)
	drafts.POST("/:id/advance", h.Advance)
	drafts.POST("/:id/retreat", h.Retreat)
	drafts.POST("/:id/jump", h.Jump)
	drafts.POST("/:id/submit", h.Submit)
	drafts.DELETE("/:id", h.AbandonDraft)
}

func draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidDraftID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func sessionResponse(session *service.Session) transport.SessionResponse {
	return transport.SessionResponse{
		Draft:    session.Draft,
		Step:     int(session.Step),
		StepName: session.Step.String(),
		Service:  session.Service,
		Provider: session.Provider,
		Quote:    session.Quote,
	}
}

// StartDraft handles POST /api/v1/bookings/drafts
func (h *Handler) StartDraft(c *gin.Context) {
	var req transport.StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	input := service.StartSessionInput{
		ServiceID:  req.ServiceID,
		ProviderID: req.ProviderID,
		QuoteID:    req.QuoteID,
	}
	if req.Date != "" && req.Time != "" {
		input.Slot = &service.SlotSelection{Date: req.Date, Time: req.Time}
	}

	session, err := h.svc.StartSession(c.Request.Context(), userID, input)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, sessionResponse(session))
}

// GetDraft handles GET /api/v1/bookings/drafts/:id
func (h *Handler) GetDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.GetSession(c.Request.Context(), userID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// UpdateDraft handles PATCH /api/v1/bookings/drafts/:id
func (h *Handler) UpdateDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req transport.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.ApplyUpdate(c.Request.Context(), userID, id, req.ToDomain())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// RefreshSlots handles GET /api/v1/bookings/drafts/:id/slots
func (h *Handler) RefreshSlots(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.RefreshSlots(c.Request.Context(), userID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, list)
}

// SelectSlot handles POST /api/v1/bookings/drafts/:id/slot
func (h *Handler) SelectSlot(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req transport.SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.SelectExternalSlot(c.Request.Context(), userID, id,
		service.SlotSelection{Date: req.Date, Time: req.Time})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// Advance handles POST /api/v1/bookings/drafts/:id/advance
func (h *Handler) Advance(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.Advance(c.Request.Context(), userID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// Retreat handles POST /api/v1/bookings/drafts/:id/retreat
func (h *Handler) Retreat(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.Retreat(c.Request.Context(), userID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// Jump handles POST /api/v1/bookings/drafts/:id/jump
func (h *Handler) Jump(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req transport.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.svc.JumpTo(c.Request.Context(), userID, id, domain.Step(req.Step))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, sessionResponse(session))
}

// Submit handles POST /api/v1/bookings/drafts/:id/submit
func (h *Handler) Submit(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}

	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
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

	result, err := h.svc.Submit(c.Request.Context(), userID, id, attemptID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// AbandonDraft handles DELETE /api/v1/bookings/drafts/:id
func (h *Handler) AbandonDraft(c *gin.Context) {
	id, ok := draftID(c)
	if !ok {
		return
	}
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Abandon(c.Request.Context(), userID, id)) {
		return
	}

	httpkit.NoContent(c)
}

// ListBookings handles GET /api/v1/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	userID, ok := httpkit.MustGetUserID(c)
	if !ok {
		return
	}

	bookings, err := h.svc.ListBookings(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"bookings": bookings})
}
