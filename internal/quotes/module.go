// Package quotes provides the quote acceptance bounded context module.
package quotes

import (
	apphttp "booking_portal_backend/internal/http"
	"booking_portal_backend/internal/quotes/handler"
	"booking_portal_backend/internal/quotes/repository"
	"booking_portal_backend/internal/quotes/service"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"
	"booking_portal_backend/platform/validator"
)

// Module is the quotes bounded context module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	// Repository is exported for the booking module's quote reader adapter.
	Repository *repository.Repository
}

// NewModule creates a new quotes module with all dependencies wired. The
// repository is built by the caller because the acceptance submitter adapter
// wraps it too.
func NewModule(
	repo *repository.Repository,
	slots service.SlotResolver,
	submitter service.AcceptanceSubmitter,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(repo, slots, submitter, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		Service:    svc,
		Repository: repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// RegisterRoutes registers the module's routes under /api/v1/quotes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	quotes := ctx.Protected.Group("/quotes")
	m.handler.RegisterRoutes(quotes)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
