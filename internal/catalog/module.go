// Package catalog provides the service catalog bounded context module.
package catalog

import (
	"booking_portal_backend/internal/catalog/handler"
	"booking_portal_backend/internal/catalog/repository"
	"booking_portal_backend/internal/catalog/service"
	apphttp "booking_portal_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes registers the module's routes under /api/v1/catalog.
// The catalog is public: the wizard browses it before sign-in.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	catalog := ctx.V1.Group("/catalog")
	m.handler.RegisterRoutes(catalog)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
