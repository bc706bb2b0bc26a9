// Package service provides catalog lookups for the public API and for
// seeding wizard drafts.
package service

import (
	"context"

	"booking_portal_backend/internal/catalog/repository"
	"booking_portal_backend/internal/catalog/transport"
	"booking_portal_backend/platform/apperr"
)

// Reader reads catalog rows. Satisfied by *repository.Repository.
type Reader interface {
	ListServices(ctx context.Context) ([]repository.Service, error)
	GetService(ctx context.Context, id int64) (*repository.Service, error)
	ListAddOns(ctx context.Context, serviceID int64) ([]repository.AddOn, error)
	GetProvider(ctx context.Context, id int64) (*repository.Provider, error)
}

// Service handles catalog lookups.
type Service struct {
	repo Reader
}

// New creates a new catalog service.
func New(repo Reader) *Service {
	return &Service{repo: repo}
}

// ListServices returns all bookable services.
func (s *Service) ListServices(ctx context.Context) ([]transport.ServiceResponse, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ServiceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, toServiceResponse(svc, nil))
	}
	return out, nil
}

// GetService returns one service with its add-ons. Inactive services read as
// not found.
func (s *Service) GetService(ctx context.Context, id int64) (*transport.ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, apperr.NotFound("service not found")
	}

	addOns, err := s.repo.ListAddOns(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toServiceResponse(*svc, addOns)
	return &resp, nil
}

// GetProvider returns one active provider profile.
func (s *Service) GetProvider(ctx context.Context, id int64) (*transport.ProviderResponse, error) {
	p, err := s.repo.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, apperr.NotFound("provider not found")
	}

	return &transport.ProviderResponse{
		ID:                 p.ID,
		Name:               p.Name,
		TravelFeeRatePerKm: p.TravelFeeRatePerKm,
		AverageRating:      p.AverageRating,
		ResponseTimeLabel:  p.ResponseTimeLabel,
	}, nil
}

// AddOnsForService returns the add-ons of a service without the service row.
func (s *Service) AddOnsForService(ctx context.Context, serviceID int64) ([]repository.AddOn, error) {
	return s.repo.ListAddOns(ctx, serviceID)
}

func toServiceResponse(svc repository.Service, addOns []repository.AddOn) transport.ServiceResponse {
	resp := transport.ServiceResponse{
		ID:                   svc.ID,
		Title:                svc.Title,
		Description:          svc.Description,
		BasePrice:            svc.BasePrice,
		PricingType:          svc.PricingType,
		DefaultDurationHours: svc.DefaultDurationHours,
	}
	for _, a := range addOns {
		resp.AddOns = append(resp.AddOns, transport.AddOnResponse{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return resp
}
