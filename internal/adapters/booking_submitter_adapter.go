package adapters

import (
	"context"

	bookingrepo "booking_portal_backend/internal/booking/repository"
	bookingservice "booking_portal_backend/internal/booking/service"

	"github.com/google/uuid"
)

// BookingSubmitterAdapter persists finished drafts as bookings. It
// implements booking/service.BookingSubmitter and BookingReader.
type BookingSubmitterAdapter struct {
	repo *bookingrepo.Repository
}

// NewBookingSubmitterAdapter creates a new adapter over the booking
// repository.
func NewBookingSubmitterAdapter(repo *bookingrepo.Repository) *BookingSubmitterAdapter {
	return &BookingSubmitterAdapter{repo: repo}
}

// Submit writes the booking row. The attempt ID's unique index turns a
// duplicate submit into a conflict inside the repository.
func (a *BookingSubmitterAdapter) Submit(ctx context.Context, payload bookingservice.SubmissionPayload) (uuid.UUID, error) {
	booking, err := bookingrepo.FromDraft(payload.AttemptID, payload.UserID, payload.Draft)
	if err != nil {
		return uuid.Nil, err
	}

	if err := a.repo.Create(ctx, booking); err != nil {
		return uuid.Nil, err
	}
	return booking.ID, nil
}

// ListByUser maps booking rows onto the wizard's listing shape.
func (a *BookingSubmitterAdapter) ListByUser(ctx context.Context, userID uuid.UUID) ([]bookingservice.BookingSummary, error) {
	bookings, err := a.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]bookingservice.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summaries = append(summaries, bookingservice.BookingSummary{
			ID:         b.ID,
			ServiceID:  b.ServiceID,
			ProviderID: b.ProviderID,
			Date:       b.Date,
			Time:       b.Time,
			TotalPrice: b.TotalPrice,
			Status:     b.Status,
			CreatedAt:  b.CreatedAt,
		})
	}
	return summaries, nil
}

// Compile-time checks that the adapter implements the booking ports.
var (
	_ bookingservice.BookingSubmitter = (*BookingSubmitterAdapter)(nil)
	_ bookingservice.BookingReader    = (*BookingSubmitterAdapter)(nil)
)
