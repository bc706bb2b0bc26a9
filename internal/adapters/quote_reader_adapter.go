package adapters

import (
	"context"

	"booking_portal_backend/internal/booking/domain"
	bookingservice "booking_portal_backend/internal/booking/service"
	quotesrepo "booking_portal_backend/internal/quotes/repository"
)

// QuoteReaderAdapter adapts the quotes repository for the booking wizard.
// It implements booking/service.QuoteReader.
type QuoteReaderAdapter struct {
	repo *quotesrepo.Repository
}

// NewQuoteReaderAdapter creates a new adapter over the quotes repository.
func NewQuoteReaderAdapter(repo *quotesrepo.Repository) *QuoteReaderAdapter {
	return &QuoteReaderAdapter{repo: repo}
}

// GetQuote fetches a quote and maps it to the booking domain's read model.
func (a *QuoteReaderAdapter) GetQuote(ctx context.Context, id int64) (domain.Quote, error) {
	q, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		ID:                     q.ID,
		ProviderID:             q.ProviderID,
		ServiceID:              q.ServiceID,
		QuotedPrice:            q.QuotedPrice,
		EstimatedDurationHours: q.EstimatedDurationHours,
		RequestedDate:          q.RequestedDate,
		RequestedTime:          q.RequestedTime,
		Status:                 q.Status,
	}, nil
}

// Compile-time check that the adapter implements the booking port.
var _ bookingservice.QuoteReader = (*QuoteReaderAdapter)(nil)
