// Package repository provides database operations for quotes.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Quote statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

const quoteNotFoundMsg = "quote not found"

// Quote is the quotes database model.
type Quote struct {
	ID                     int64      `db:"id"`
	UserID                 uuid.UUID  `db:"user_id"`
	ProviderID             int64      `db:"provider_id"`
	ServiceID              int64      `db:"service_id"`
	QuotedPrice            float64    `db:"quoted_price"`
	EstimatedDurationHours float64    `db:"estimated_duration_hours"`
	RequestedDate          string     `db:"requested_date"`
	RequestedTime          string     `db:"requested_time"`
	Status                 string     `db:"status"`
	Notes                  *string    `db:"notes"`
	AcceptedAt             *time.Time `db:"accepted_at"`
	CreatedAt              time.Time  `db:"created_at"`
}

// Acceptance holds the fields persisted when a quote is accepted. The whole
// acceptance lands in one UPDATE so a crash can never leave a half-accepted
// quote.
type Acceptance struct {
	QuoteID           int64
	AttemptID         uuid.UUID
	Notes             string
	CreateAppointment bool
	AppointmentDate   string
	AppointmentTime   string
	DurationHours     float64
}

// Repository provides database operations for quotes.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID retrieves a quote by its ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Quote, error) {
	var q Quote
	query := `SELECT id, user_id, provider_id, service_id, quoted_price, estimated_duration_hours,
		requested_date, requested_time, status, notes, accepted_at, created_at
		FROM quotes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.ProviderID, &q.ServiceID, &q.QuotedPrice, &q.EstimatedDurationHours,
		&q.RequestedDate, &q.RequestedTime, &q.Status, &q.Notes, &q.AcceptedAt, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return &q, nil
}

// Accept marks a pending quote accepted and persists the appointment fields
// in the same statement. A quote that is no longer pending conflicts, as
// does a replayed attempt ID (unique index on acceptance_attempt_id).
func (r *Repository) Accept(ctx context.Context, a Acceptance) error {
	query := `
		UPDATE quotes SET
			status = $2,
			acceptance_attempt_id = $3,
			notes = NULLIF($4, ''),
			create_appointment = $5,
			appointment_date = NULLIF($6, ''),
			appointment_time = NULLIF($7, ''),
			appointment_duration_hours = $8,
			accepted_at = $9
		WHERE id = $1 AND status = $10`

	tag, err := r.pool.Exec(ctx, query,
		a.QuoteID, StatusAccepted, a.AttemptID, a.Notes, a.CreateAppointment,
		a.AppointmentDate, a.AppointmentTime, a.DurationHours, time.Now(), StatusPending,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("quote acceptance already submitted for this attempt")
		}
		return fmt.Errorf("failed to accept quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("quote is no longer pending")
	}

	return nil
}
