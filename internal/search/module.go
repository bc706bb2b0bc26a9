// Package search provides the suggestions bounded context module.
package search

import (
	apphttp "booking_portal_backend/internal/http"
	"booking_portal_backend/internal/search/handler"
	"booking_portal_backend/internal/search/repository"
	"booking_portal_backend/internal/search/service"
	"booking_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the search bounded context module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new search module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "search"
}

// RegisterRoutes registers the module's routes under /api/v1/search.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	search := ctx.V1.Group("/search")
	m.handler.RegisterRoutes(search)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
