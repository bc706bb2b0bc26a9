package adapters

import (
	"context"

	availservice "booking_portal_backend/internal/availability/service"
	availtransport "booking_portal_backend/internal/availability/transport"
	bookingservice "booking_portal_backend/internal/booking/service"
	quoteservice "booking_portal_backend/internal/quotes/service"
)

// BookingSlotResolver adapts the availability service for the booking
// wizard. It implements booking/service.SlotResolver.
type BookingSlotResolver struct {
	svc *availservice.Service
}

// NewBookingSlotResolver creates a new adapter over the availability service.
func NewBookingSlotResolver(svc *availservice.Service) *BookingSlotResolver {
	return &BookingSlotResolver{svc: svc}
}

// FetchSlots resolves slots and maps them to the wizard's slot shape.
func (a *BookingSlotResolver) FetchSlots(ctx context.Context, query bookingservice.SlotQuery) (bookingservice.SlotList, error) {
	list, err := a.svc.FetchSlots(ctx, availtransport.SlotQuery{
		ProviderID:    query.ProviderID,
		ServiceID:     query.ServiceID,
		Date:          query.Date,
		DurationHours: query.DurationHours,
	})
	if err != nil {
		return bookingservice.SlotList{}, err
	}

	out := bookingservice.SlotList{Fallback: list.Fallback}
	for _, slot := range list.Slots {
		out.Slots = append(out.Slots, bookingservice.Slot{
			Date:          slot.Date,
			Time:          slot.Time,
			FormattedTime: slot.FormattedTime,
			IsPopular:     slot.IsPopular,
			Fallback:      slot.Fallback,
		})
	}
	return out, nil
}

// QuoteSlotResolver adapts the availability service for quote acceptance.
// It implements quotes/service.SlotResolver.
type QuoteSlotResolver struct {
	svc *availservice.Service
}

// NewQuoteSlotResolver creates a new adapter over the availability service.
func NewQuoteSlotResolver(svc *availservice.Service) *QuoteSlotResolver {
	return &QuoteSlotResolver{svc: svc}
}

// FetchSlots resolves slots and maps them to the acceptance flow's shape.
func (a *QuoteSlotResolver) FetchSlots(ctx context.Context, providerID, serviceID int64, date string, durationHours float64) ([]quoteservice.Slot, error) {
	list, err := a.svc.FetchSlots(ctx, availtransport.SlotQuery{
		ProviderID:    providerID,
		ServiceID:     serviceID,
		Date:          date,
		DurationHours: durationHours,
	})
	if err != nil {
		return nil, err
	}

	slots := make([]quoteservice.Slot, 0, len(list.Slots))
	for _, slot := range list.Slots {
		slots = append(slots, quoteservice.Slot{Date: slot.Date, Time: slot.Time})
	}
	return slots, nil
}

// Compile-time checks that the adapters implement their ports.
var (
	_ bookingservice.SlotResolver = (*BookingSlotResolver)(nil)
	_ quoteservice.SlotResolver   = (*QuoteSlotResolver)(nil)
)
