package adapters

import (
	"context"
	"fmt"
	"time"

	bookingrepo "booking_portal_backend/internal/booking/repository"
	appevents "booking_portal_backend/internal/events"
	"booking_portal_backend/platform/events"

	"github.com/google/uuid"
)

// BookingActivityWriter subscribes to booking events and writes the audit
// trail, one booking_activities row per event.
type BookingActivityWriter struct {
	repo *bookingrepo.Repository
}

// NewBookingActivityWriter creates the writer and registers it on the bus.
func NewBookingActivityWriter(repo *bookingrepo.Repository, bus events.Bus) *BookingActivityWriter {
	w := &BookingActivityWriter{repo: repo}
	bus.Subscribe(appevents.BookingSubmittedName, events.HandlerFunc(w.onBookingSubmitted))
	return w
}

func (w *BookingActivityWriter) onBookingSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(appevents.BookingSubmitted)
	if !ok {
		return nil
	}

	return w.repo.CreateActivity(ctx, &bookingrepo.Activity{
		ID:          uuid.New(),
		BookingID:   e.BookingID,
		Type:        "submitted",
		Description: fmt.Sprintf("booking submitted for %s %s, total %.2f", e.Date, e.Time, e.TotalPrice),
		CreatedAt:   time.Now(),
	})
}
