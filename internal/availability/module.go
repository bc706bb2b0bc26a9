// Package availability provides the slot resolution bounded context module.
package availability

import (
	"booking_portal_backend/internal/availability/client"
	"booking_portal_backend/internal/availability/handler"
	"booking_portal_backend/internal/availability/service"
	apphttp "booking_portal_backend/internal/http"
	"booking_portal_backend/platform/config"
	"booking_portal_backend/platform/logger"
	"booking_portal_backend/platform/validator"
)

// Module is the availability bounded context module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates and initializes the availability module. When no upstream
// calendar API is configured the module still works, serving fallback slots
// only.
func NewModule(cfg config.AvailabilityConfig, val *validator.Validator, log *logger.Logger) *Module {
	var fetcher service.SlotFetcher
	if cfg.IsAvailabilityEnabled() {
		fetcher = client.New(cfg.GetAvailabilityAPIURL(), cfg.GetAvailabilityTimeout(), log)
		log.Info("availability module initialized with upstream calendar")
	} else {
		log.Info("availability upstream not configured, serving fallback slots only")
	}

	svc := service.New(fetcher, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "availability"
}

// RegisterRoutes registers the module's routes under /api/v1/availability.
// Slot browsing is public: the wizard queries it before the user signs in.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	slots := ctx.V1.Group("/availability")
	m.handler.RegisterRoutes(slots)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
