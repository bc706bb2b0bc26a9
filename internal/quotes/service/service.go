// Package service implements the quote acceptance flow: appointment
// validation, slot re-validation against the live calendar, and the atomic
// acceptance submit.
package service

import (
	"context"
	"time"

	appevents "booking_portal_backend/internal/events"
	"booking_portal_backend/internal/quotes/repository"
	"booking_portal_backend/internal/quotes/transport"
	"booking_portal_backend/platform/apperr"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// Slot is one open time on the provider's calendar.
type Slot struct {
	Date string
	Time string
}

// SlotResolver re-reads the provider's live calendar for a day. Implemented
// by an adapter over the availability module.
type SlotResolver interface {
	FetchSlots(ctx context.Context, providerID, serviceID int64, date string, durationHours float64) ([]Slot, error)
}

// AcceptanceSubmitter persists the acceptance atomically. Implemented by an
// adapter over the quotes repository.
type AcceptanceSubmitter interface {
	Submit(ctx context.Context, acceptance repository.Acceptance) error
}

// QuoteGetter reads a quote. Satisfied by *repository.Repository.
type QuoteGetter interface {
	GetByID(ctx context.Context, id int64) (*repository.Quote, error)
}

// AcceptQuoteInput is the validated acceptance command.
type AcceptQuoteInput struct {
	AttemptID         uuid.UUID
	Notes             string
	CreateAppointment bool
	AppointmentDate   string
	AppointmentTime   string
	DurationHours     float64
}

// Service orchestrates quote acceptance.
type Service struct {
	repo      QuoteGetter
	slots     SlotResolver
	submitter AcceptanceSubmitter
	bus       events.Bus
	log       *logger.Logger
	now       func() time.Time
}

// New creates the quote acceptance service.
func New(repo QuoteGetter, slots SlotResolver, submitter AcceptanceSubmitter, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		slots:     slots,
		submitter: submitter,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
}

// AcceptQuote accepts a pending quote on the user's behalf.
//
// Without an appointment the acceptance goes straight through. With one, the
// chosen slot is re-validated against the provider's live calendar first: a
// slot that disappeared between the offer and the click yields a 410 and
// nothing is submitted. When the quote's originally requested time is still
// open on the chosen day the result carries a non-blocking hint so the
// client can offer it back to the user.
func (s *Service) AcceptQuote(ctx context.Context, userID uuid.UUID, quoteID int64, input AcceptQuoteInput) (*transport.AcceptanceResult, error) {
	quote, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.UserID != userID {
		return nil, apperr.NotFound("quote not found")
	}

	result := &transport.AcceptanceResult{
		QuoteID: quoteID,
		Status:  repository.StatusAccepted,
	}

	acceptance := repository.Acceptance{
		QuoteID:           quoteID,
		AttemptID:         input.AttemptID,
		Notes:             input.Notes,
		CreateAppointment: input.CreateAppointment,
	}

	if input.CreateAppointment {
		if err := s.validateAppointment(input); err != nil {
			return nil, err
		}

		duration := input.DurationHours
		if duration <= 0 {
			duration = quote.EstimatedDurationHours
		}

		fresh, err := s.slots.FetchSlots(ctx, quote.ProviderID, quote.ServiceID, input.AppointmentDate, duration)
		if err != nil {
			return nil, err
		}
		if !containsSlot(fresh, input.AppointmentTime) {
			return nil, apperr.Gone("slot no longer available").
				WithDetails(map[string]string{"date": input.AppointmentDate, "time": input.AppointmentTime})
		}

		if quote.RequestedDate == input.AppointmentDate && containsSlot(fresh, quote.RequestedTime) {
			result.OriginalTimeStillAvailable = true
		}

		acceptance.AppointmentDate = input.AppointmentDate
		acceptance.AppointmentTime = input.AppointmentTime
		acceptance.DurationHours = duration
		result.AppointmentCreated = true
		result.AppointmentDate = input.AppointmentDate
		result.AppointmentTime = input.AppointmentTime
	}

	if err := s.submitter.Submit(ctx, acceptance); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, appevents.QuoteAccepted{
		BaseEvent:          events.NewBaseEvent(),
		QuoteID:            quoteID,
		UserID:             userID,
		ProviderID:         quote.ProviderID,
		AppointmentCreated: result.AppointmentCreated,
		AppointmentDate:    result.AppointmentDate,
		AppointmentTime:    result.AppointmentTime,
	})
	s.log.Info("quote accepted", "quote_id", quoteID, "appointment", result.AppointmentCreated)

	return result, nil
}

func (s *Service) validateAppointment(input AcceptQuoteInput) error {
	if input.AppointmentDate == "" || input.AppointmentTime == "" {
		return apperr.Validation("invalid appointment slot")
	}

	if _, err := time.Parse("2006-01-02", input.AppointmentDate); err != nil {
		return apperr.Validation("invalid appointment slot")
	}
	if input.AppointmentDate < s.now().Format("2006-01-02") {
		return apperr.Validation("invalid appointment slot").
			WithDetails("appointment date is in the past")
	}

	return nil
}

func containsSlot(slots []Slot, startTime string) bool {
	for _, slot := range slots {
		if slot.Time == startTime {
			return true
		}
	}
	return false
}
