package adapters

import (
	"context"

	quotesrepo "booking_portal_backend/internal/quotes/repository"
	quoteservice "booking_portal_backend/internal/quotes/service"
)

// QuoteAcceptanceSubmitter persists quote acceptances. It implements
// quotes/service.AcceptanceSubmitter.
type QuoteAcceptanceSubmitter struct {
	repo *quotesrepo.Repository
}

// NewQuoteAcceptanceSubmitter creates a new adapter over the quotes
// repository.
func NewQuoteAcceptanceSubmitter(repo *quotesrepo.Repository) *QuoteAcceptanceSubmitter {
	return &QuoteAcceptanceSubmitter{repo: repo}
}

// Submit lands the acceptance in one atomic update.
func (a *QuoteAcceptanceSubmitter) Submit(ctx context.Context, acceptance quotesrepo.Acceptance) error {
	return a.repo.Accept(ctx, acceptance)
}

// Compile-time check that the adapter implements the quotes port.
var _ quoteservice.AcceptanceSubmitter = (*QuoteAcceptanceSubmitter)(nil)
