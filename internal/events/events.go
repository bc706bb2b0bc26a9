// Package events defines the cross-module domain events published on the
// platform event bus.
package events

import (
	"booking_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Event names for subscription.
const (
	BookingSubmittedName     = "booking.submitted"
	QuoteAcceptedName        = "quote.accepted"
	ExternalSlotSelectedName = "booking.external_slot_selected"
)

// BookingSubmitted is published when a wizard draft becomes a booking.
type BookingSubmitted struct {
	events.BaseEvent
	BookingID  uuid.UUID `json:"bookingId"`
	DraftID    uuid.UUID `json:"draftId"`
	UserID     uuid.UUID `json:"userId"`
	ServiceID  int64     `json:"serviceId"`
	ProviderID int64     `json:"providerId"`
	QuoteID    int64     `json:"quoteId,omitempty"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	TotalPrice float64   `json:"totalPrice"`
}

// EventName returns the event identifier.
func (e BookingSubmitted) EventName() string { return BookingSubmittedName }

// QuoteAccepted is published when a client accepts a provider's quote.
type QuoteAccepted struct {
	events.BaseEvent
	QuoteID            int64     `json:"quoteId"`
	UserID             uuid.UUID `json:"userId"`
	ProviderID         int64     `json:"providerId"`
	AppointmentCreated bool      `json:"appointmentCreated"`
	AppointmentDate    string    `json:"appointmentDate,omitempty"`
	AppointmentTime    string    `json:"appointmentTime,omitempty"`
}

// EventName returns the event identifier.
func (e QuoteAccepted) EventName() string { return QuoteAcceptedName }

// ExternalSlotSelected is published when a time slot chosen outside the
// wizard (provider profile, quote detail page) lands in a draft.
type ExternalSlotSelected struct {
	events.BaseEvent
	DraftID uuid.UUID `json:"draftId"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
}

// EventName returns the event identifier.
func (e ExternalSlotSelected) EventName() string { return ExternalSlotSelectedName }
