// Package repository provides read access to the service catalog.
package repository

import (
	"context"
	"errors"
	"fmt"

	"booking_portal_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service is the services database model.
type Service struct {
	ID                   int64   `db:"id"`
	Title                string  `db:"title"`
	Description          string  `db:"description"`
	BasePrice            float64 `db:"base_price"`
	PricingType          string  `db:"pricing_type"`
	DefaultDurationHours float64 `db:"default_duration_hours"`
	Active               bool    `db:"active"`
}

// AddOn is the service_add_ons database model.
type AddOn struct {
	ID        int64   `db:"id"`
	ServiceID int64   `db:"service_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
}

// Provider is the providers database model.
type Provider struct {
	ID                 int64   `db:"id"`
	Name               string  `db:"name"`
	TravelFeeRatePerKm float64 `db:"travel_fee_rate_per_km"`
	AverageRating      float64 `db:"average_rating"`
	ResponseTimeLabel  string  `db:"response_time_label"`
	Active             bool    `db:"active"`
}

// Repository provides database operations for the catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListServices returns all active services.
func (r *Repository) ListServices(ctx context.Context) ([]Service, error) {
	query := `SELECT id, title, description, base_price, pricing_type, default_duration_hours, active
		FROM services WHERE active ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.BasePrice, &s.PricingType, &s.DefaultDurationHours, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}

	return services, nil
}

// GetService retrieves one service by ID.
func (r *Repository) GetService(ctx context.Context, id int64) (*Service, error) {
	var s Service
	query := `SELECT id, title, description, base_price, pricing_type, default_duration_hours, active
		FROM services WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Title, &s.Description, &s.BasePrice, &s.PricingType, &s.DefaultDurationHours, &s.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return &s, nil
}

// ListAddOns returns the add-ons offered for a service.
func (r *Repository) ListAddOns(ctx context.Context, serviceID int64) ([]AddOn, error) {
	query := `SELECT id, service_id, name, price FROM service_add_ons
		WHERE service_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	defer rows.Close()

	var addOns []AddOn
	for rows.Next() {
		var a AddOn
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.Name, &a.Price); err != nil {
			return nil, fmt.Errorf("failed to scan add-on: %w", err)
		}
		addOns = append(addOns, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read add-ons: %w", err)
	}

	return addOns, nil
}

// GetProvider retrieves one provider by ID.
func (r *Repository) GetProvider(ctx context.Context, id int64) (*Provider, error) {
	var p Provider
	query := `SELECT id, name, travel_fee_rate_per_km, average_rating, response_time_label, active
		FROM providers WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.TravelFeeRatePerKm, &p.AverageRating, &p.ResponseTimeLabel, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("provider not found")
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return &p, nil
}
