package service

import (
	"context"
	"time"

	"booking_portal_backend/internal/booking/domain"

	"github.com/google/uuid"
)

// CatalogReader looks up the read models a draft is seeded from.
// Implemented by an adapter over the catalog module.
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (domain.Service, error)
	GetProvider(ctx context.Context, id int64) (domain.Provider, error)
}

// QuoteReader looks up the quote a quote-originated draft descends from.
type QuoteReader interface {
	GetQuote(ctx context.Context, id int64) (domain.Quote, error)
}

// SlotQuery identifies a calendar day to resolve for a draft.
type SlotQuery struct {
	ProviderID    int64
	ServiceID     int64
	Date          string
	DurationHours float64
}

// Slot is one bookable time as the wizard sees it.
type Slot struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	FormattedTime string `json:"formattedTime"`
	IsPopular     bool   `json:"isPopular"`
	Fallback      bool   `json:"fallback"`
}

// SlotList is the result of a per-draft slot refresh.
type SlotList struct {
	Slots    []Slot `json:"slots"`
	Fallback bool   `json:"fallback"`
}

// SlotResolver resolves open slots. Implemented by an adapter over the
// availability module. The wizard only ever needs the full day; slot
// re-validation on acceptance is the quotes flow's concern.
type SlotResolver interface {
	FetchSlots(ctx context.Context, query SlotQuery) (SlotList, error)
}

// SubmissionPayload is the final, validated booking handed to the submitter.
// AttemptID makes retries idempotent: the same attempt can never produce two
// bookings.
type SubmissionPayload struct {
	AttemptID uuid.UUID
	UserID    uuid.UUID
	Draft     domain.Draft
}

// BookingSubmitter persists a finished booking. Implemented by an adapter
// over the booking repository.
type BookingSubmitter interface {
	Submit(ctx context.Context, payload SubmissionPayload) (uuid.UUID, error)
}

// BookingReader lists a user's submitted bookings.
type BookingReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BookingSummary, error)
}

// BookingSummary is one row in the my-bookings listing.
type BookingSummary struct {
	ID         uuid.UUID `json:"id"`
	ServiceID  int64     `json:"serviceId"`
	ProviderID int64     `json:"providerId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ExpiryScheduler queues the abandonment sweep for a draft session.
// Implemented by the asynq scheduler client; scheduling failures are logged,
// never fatal.
type ExpiryScheduler interface {
	ScheduleDraftExpiry(ctx context.Context, draftID uuid.UUID, delay time.Duration) error
}
