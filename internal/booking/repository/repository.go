// Package repository provides database operations for submitted bookings.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking_portal_backend/internal/booking/domain"
	"booking_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking is the bookings database model.
type Booking struct {
	ID                  uuid.UUID `db:"id"`
	AttemptID           uuid.UUID `db:"attempt_id"`
	UserID              uuid.UUID `db:"user_id"`
	ServiceID           int64     `db:"service_id"`
	ProviderID          int64     `db:"provider_id"`
	QuoteID             *int64    `db:"quote_id"`
	BookingSource       string    `db:"booking_source"`
	Date                string    `db:"date"`
	Time                string    `db:"time"`
	BasePrice           float64   `db:"base_price"`
	PricingType         string    `db:"pricing_type"`
	DurationHours       float64   `db:"duration_hours"`
	AddOns              []byte    `db:"add_ons"`
	TravelFee           float64   `db:"travel_fee"`
	TotalPrice          float64   `db:"total_price"`
	LocationType        string    `db:"location_type"`
	Address             string    `db:"address"`
	City                string    `db:"city"`
	PostalCode          string    `db:"postal_code"`
	Phone               string    `db:"phone"`
	Email               string    `db:"email"`
	ContactPreference   string    `db:"contact_preference"`
	SpecialInstructions string    `db:"special_instructions"`
	PaymentMethod       string    `db:"payment_method"`
	Status              string    `db:"status"`
	CreatedAt           time.Time `db:"created_at"`
}

// Activity is one audit-trail row for a booking.
type Activity struct {
	ID          uuid.UUID `db:"id"`
	BookingID   uuid.UUID `db:"booking_id"`
	Type        string    `db:"activity_type"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Repository provides database operations for bookings.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new bookings repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FromDraft maps a finished draft onto the database model.
func FromDraft(attemptID, userID uuid.UUID, d domain.Draft) (*Booking, error) {
	addOns, err := json.Marshal(d.AddOns)
	if err != nil {
		return nil, fmt.Errorf("marshal add-ons: %w", err)
	}

	booking := &Booking{
		ID:                  uuid.New(),
		AttemptID:           attemptID,
		UserID:              userID,
		ServiceID:           d.ServiceID,
		ProviderID:          d.ProviderID,
		BookingSource:       d.BookingSource,
		Date:                d.EffectiveDate(),
		Time:                d.EffectiveTime(),
		BasePrice:           d.BasePrice,
		PricingType:         string(d.PricingType),
		DurationHours:       d.DurationHours,
		AddOns:              addOns,
		TravelFee:           d.TravelFee,
		TotalPrice:          d.TotalPrice,
		LocationType:        string(d.LocationType),
		Address:             d.Address,
		City:                d.City,
		PostalCode:          d.PostalCode,
		Phone:               d.Phone,
		Email:               d.Email,
		ContactPreference:   string(d.ContactPreference),
		SpecialInstructions: d.SpecialInstructions,
		PaymentMethod:       d.PaymentMethod,
		Status:              domain.StatusSubmitted,
		CreatedAt:           time.Now(),
	}
	if d.QuoteID != 0 {
		quoteID := d.QuoteID
		booking.QuoteID = &quoteID
	}
	return booking, nil
}

// Create inserts a new booking. A duplicate attempt ID means the same submit
// already landed and maps to a conflict.
func (r *Repository) Create(ctx context.Context, booking *Booking) error {
	query := `
		INSERT INTO bookings (
			id, attempt_id, user_id, service_id, provider_id, quote_id, booking_source,
			date, time, base_price, pricing_type, duration_hours, add_ons, travel_fee,
			total_price, location_type, address, city, postal_code, phone, email,
			contact_preference, special_instructions, payment_method, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)`

	_, err := r.pool.Exec(ctx, query,
		booking.ID, booking.AttemptID, booking.UserID, booking.ServiceID, booking.ProviderID,
		booking.QuoteID, booking.BookingSource, booking.Date, booking.Time, booking.BasePrice,
		booking.PricingType, booking.DurationHours, booking.AddOns, booking.TravelFee,
		booking.TotalPrice, booking.LocationType, booking.Address, booking.City,
		booking.PostalCode, booking.Phone, booking.Email, booking.ContactPreference,
		booking.SpecialInstructions, booking.PaymentMethod, booking.Status, booking.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("booking already submitted for this attempt")
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// ListByUser returns the user's bookings, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	query := `SELECT id, attempt_id, user_id, service_id, provider_id, quote_id, booking_source,
		date, time, base_price, pricing_type, duration_hours, add_ons, travel_fee,
		total_price, location_type, address, city, postal_code, phone, email,
		contact_preference, special_instructions, payment_method, status, created_at
		FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.AttemptID, &b.UserID, &b.ServiceID, &b.ProviderID, &b.QuoteID,
			&b.BookingSource, &b.Date, &b.Time, &b.BasePrice, &b.PricingType,
			&b.DurationHours, &b.AddOns, &b.TravelFee, &b.TotalPrice, &b.LocationType,
			&b.Address, &b.City, &b.PostalCode, &b.Phone, &b.Email, &b.ContactPreference,
			&b.SpecialInstructions, &b.PaymentMethod, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return bookings, nil
}

// CreateActivity appends one audit-trail row for a booking.
func (r *Repository) CreateActivity(ctx context.Context, activity *Activity) error {
	query := `
		INSERT INTO booking_activities (id, booking_id, activity_type, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		activity.ID, activity.BookingID, activity.Type, activity.Description, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking activity: %w", err)
	}

	return nil
}
