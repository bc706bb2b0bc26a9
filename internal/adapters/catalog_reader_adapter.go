// Package adapters contains narrow adapters that let bounded contexts
// collaborate without importing each other's internals.
package adapters

import (
	"context"

	"booking_portal_backend/internal/booking/domain"
	bookingservice "booking_portal_backend/internal/booking/service"
	catalogservice "booking_portal_backend/internal/catalog/service"
)

// CatalogReaderAdapter adapts the catalog service for the booking wizard.
// It implements booking/service.CatalogReader.
type CatalogReaderAdapter struct {
	svc *catalogservice.Service
}

// NewCatalogReaderAdapter creates a new adapter over the catalog service.
func NewCatalogReaderAdapter(svc *catalogservice.Service) *CatalogReaderAdapter {
	return &CatalogReaderAdapter{svc: svc}
}

// GetService fetches a catalog service with its add-ons and maps it to the
// booking domain's read model.
func (a *CatalogReaderAdapter) GetService(ctx context.Context, id int64) (domain.Service, error) {
	svc, err := a.svc.GetService(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}

	out := domain.Service{
		ID:                   svc.ID,
		Title:                svc.Title,
		BasePrice:            svc.BasePrice,
		PricingType:          domain.PricingType(svc.PricingType),
		DefaultDurationHours: svc.DefaultDurationHours,
	}
	for _, addOn := range svc.AddOns {
		out.AddOns = append(out.AddOns, domain.AddOn{ID: addOn.ID, Name: addOn.Name, Price: addOn.Price})
	}
	return out, nil
}

// GetProvider fetches a provider profile and maps it to the booking domain's
// read model.
func (a *CatalogReaderAdapter) GetProvider(ctx context.Context, id int64) (domain.Provider, error) {
	p, err := a.svc.GetProvider(ctx, id)
	if err != nil {
		return domain.Provider{}, err
	}

	return domain.Provider{
		ID:                 p.ID,
		Name:               p.Name,
		TravelFeeRatePerKm: p.TravelFeeRatePerKm,
		AverageRating:      p.AverageRating,
		ResponseTimeLabel:  p.ResponseTimeLabel,
	}, nil
}

// Compile-time check that the adapter implements the booking port.
var _ bookingservice.CatalogReader = (*CatalogReaderAdapter)(nil)
