// Package booking provides the booking wizard bounded context module.
package booking

import (
	"time"

	"booking_portal_backend/internal/booking/handler"
	"booking_portal_backend/internal/booking/repository"
	"booking_portal_backend/internal/booking/service"
	apphttp "booking_portal_backend/internal/http"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"
	"booking_portal_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module is the booking wizard bounded context module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	// Repository is exported for the activity-log event subscriber.
	Repository *repository.Repository
}

// NewModule creates a new booking module with all dependencies wired. The
// cross-context collaborators (catalog, quotes, availability, submission)
// come in as narrow ports implemented in internal/adapters. The repository
// is built by the caller because the submitter adapter wraps it too.
func NewModule(
	repo *repository.Repository,
	rdb *redis.Client,
	sessionTTL time.Duration,
	catalog service.CatalogReader,
	quotes service.QuoteReader,
	slots service.SlotResolver,
	submitter service.BookingSubmitter,
	bookings service.BookingReader,
	scheduler service.ExpiryScheduler,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	store := service.NewStore(rdb, sessionTTL)
	svc := service.New(store, catalog, quotes, slots, submitter, bookings, scheduler, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		Service:    svc,
		Repository: repo,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes registers the module's routes under /api/v1/bookings.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	bookings := ctx.Protected.Group("/bookings")
	m.handler.RegisterRoutes(bookings)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
