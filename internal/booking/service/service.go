// Package service implements the booking wizard: session lifecycle, draft
// merging, step navigation, slot refresh and final submission.
package service

import (
	"context"
	"fmt"

	"booking_portal_backend/internal/booking/domain"
	appevents "booking_portal_backend/internal/events"
	"booking_portal_backend/platform/apperr"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// StartSessionInput seeds a new wizard session.
type StartSessionInput struct {
	ServiceID  int64
	ProviderID int64
	QuoteID    *int64
	// Slot is an optional pre-selected time, e.g. picked on the provider's
	// profile before the wizard opened.
	Slot *SlotSelection
}

// SlotSelection is a concrete date/time pick.
type SlotSelection struct {
	Date string
	Time string
}

// SubmissionResult is returned from a successful submit.
type SubmissionResult struct {
	BookingID  uuid.UUID `json:"bookingId"`
	TotalPrice float64   `json:"totalPrice"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
}

// Service orchestrates wizard sessions. All state lives in the session
// store; the service itself is stateless and safe for concurrent use.
type Service struct {
	store     *Store
	catalog   CatalogReader
	quotes    QuoteReader
	slots     SlotResolver
	submitter BookingSubmitter
	bookings  BookingReader
	scheduler ExpiryScheduler
	bus       events.Bus
	log       *logger.Logger
}

// New creates the wizard service. The scheduler may be nil when the
// background worker is not deployed.
func New(
	store *Store,
	catalog CatalogReader,
	quotes QuoteReader,
	slots SlotResolver,
	submitter BookingSubmitter,
	bookings BookingReader,
	scheduler ExpiryScheduler,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		catalog:   catalog,
		quotes:    quotes,
		slots:     slots,
		submitter: submitter,
		bookings:  bookings,
		scheduler: scheduler,
		bus:       bus,
		log:       log,
	}
}

// StartSession seeds a draft from the catalog (and optionally a quote or a
// pre-selected slot) and opens a wizard session for it.
func (s *Service) StartSession(ctx context.Context, userID uuid.UUID, input StartSessionInput) (*Session, error) {
	svc, err := s.catalog.GetService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	provider, err := s.catalog.GetProvider(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}

	draft := domain.Draft{
		ID:            uuid.New(),
		ServiceID:     svc.ID,
		ProviderID:    provider.ID,
		BasePrice:     svc.BasePrice,
		PricingType:   svc.PricingType,
		DurationHours: svc.DefaultDurationHours,
		LocationType:  domain.LocationClientAddress,
		BookingSource: domain.SourceDirect,
		Status:        domain.StatusDraft,
	}
	draft.TravelFee = domain.EstimateTravelFee(provider, draft.LocationType)

	session := &Session{
		UserID:   userID,
		Draft:    draft,
		Service:  svc,
		Provider: provider,
		Step:     domain.StepService,
	}

	if input.QuoteID != nil {
		quote, err := s.quotes.GetQuote(ctx, *input.QuoteID)
		if err != nil {
			return nil, err
		}
		if quote.ServiceID != svc.ID || quote.ProviderID != provider.ID {
			return nil, apperr.Validation("quote does not match the selected service and provider")
		}
		session.Quote = &quote
		seedFromQuote(&session.Draft, quote)
	}

	if input.Slot != nil {
		session.Draft.Date = input.Slot.Date
		session.Draft.Time = input.Slot.Time
		session.Draft.AppointmentDate = input.Slot.Date
		session.Draft.AppointmentTime = input.Slot.Time
		session.Step = domain.StepAfterExternalSlot(session.Step)
	}

	session.Draft.TotalPrice = domain.ComputeTotal(
		session.Draft.BasePrice, session.Draft.DurationHours,
		session.Draft.PricingType, session.Draft.AddOns, session.Draft.TravelFee,
	)

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleDraftExpiry(ctx, session.Draft.ID, s.store.TTL()); err != nil {
			s.log.Warn("draft expiry scheduling failed", "error", err, "draft_id", session.Draft.ID)
		}
	}

	s.log.DraftEvent("created", session.Draft.ID.String(), int(session.Step))
	return session, nil
}

// seedFromQuote copies the agreed terms of a quote into a fresh draft.
func seedFromQuote(draft *domain.Draft, quote domain.Quote) {
	draft.QuoteID = quote.ID
	draft.IsFromQuote = true
	draft.BookingSource = domain.SourceQuote
	draft.BasePrice = quote.QuotedPrice
	// A quoted price is all-in for the quoted scope.
	draft.PricingType = domain.PricingFixed
	if quote.EstimatedDurationHours > 0 {
		draft.DurationHours = quote.EstimatedDurationHours
	}
	if quote.RequestedDate != "" {
		draft.Date = quote.RequestedDate
		draft.AppointmentDate = quote.RequestedDate
	}
	if quote.RequestedTime != "" {
		draft.Time = quote.RequestedTime
		draft.AppointmentTime = quote.RequestedTime
	}
}

// GetSession loads a session, enforcing ownership. Foreign sessions read as
// not found so draft IDs cannot be probed.
func (s *Service) GetSession(ctx context.Context, userID, draftID uuid.UUID) (*Session, error) {
	session, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperr.NotFound(draftNotFoundMsg)
	}
	return session, nil
}

// ApplyUpdate merges a partial update into the draft and saves the session.
func (s *Service) ApplyUpdate(ctx context.Context, userID, draftID uuid.UUID, update domain.DraftUpdate) (*Session, error) {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	session.Draft = domain.Merge(session.Draft, update, session.MergeContext())

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.DraftEvent("merged", draftID.String(), int(session.Step))
	return session, nil
}

// RefreshSlots fetches the open slots for the draft's current parameters.
//
// The slot fetch races concurrent draft updates: by the time the calendar
// answers, the user may have picked a different day, duration or service.
// The session is re-read after the fetch and a response whose originating
// query no longer matches the draft is discarded, so only the
// last-submitted parameters ever reach the client.
func (s *Service) RefreshSlots(ctx context.Context, userID, draftID uuid.UUID) (SlotList, error) {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return SlotList{}, err
	}

	date := session.Draft.EffectiveDate()
	if date == "" {
		return SlotList{}, apperr.Validation("no date selected")
	}

	query := slotQueryFor(session.Draft)

	list, err := s.slots.FetchSlots(ctx, query)
	if err != nil {
		return SlotList{}, err
	}

	current, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return SlotList{}, err
	}
	if slotQueryFor(current.Draft) != query {
		return SlotList{}, apperr.Conflict("slot parameters changed during fetch")
	}

	return list, nil
}

// slotQueryFor captures the draft fields that parameterize a slot lookup.
// The full tuple takes part in the stale-response comparison: a change to
// any member mid-fetch invalidates the response.
func slotQueryFor(d domain.Draft) SlotQuery {
	return SlotQuery{
		ProviderID:    d.ProviderID,
		ServiceID:     d.ServiceID,
		Date:          d.EffectiveDate(),
		DurationHours: d.DurationHours,
	}
}

// SelectExternalSlot applies a slot picked outside the wizard and takes the
// automatic transition to the details step when applicable.
func (s *Service) SelectExternalSlot(ctx context.Context, userID, draftID uuid.UUID, slot SlotSelection) (*Session, error) {
	if slot.Date == "" || slot.Time == "" {
		return nil, apperr.Validation("slot date and time are required")
	}

	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	session.Draft = domain.Merge(session.Draft, domain.DraftUpdate{
		Date: &slot.Date,
		Time: &slot.Time,
	}, session.MergeContext())
	session.Step = domain.StepAfterExternalSlot(session.Step)

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, appevents.ExternalSlotSelected{
		BaseEvent: events.NewBaseEvent(),
		DraftID:   draftID,
		Date:      slot.Date,
		Time:      slot.Time,
	})
	s.log.DraftEvent("external_slot_selected", draftID.String(), int(session.Step))
	return session, nil
}

// Advance moves the wizard one step forward. The current step must be
// complete; the error details list what is still missing.
func (s *Service) Advance(ctx context.Context, userID, draftID uuid.UUID) (*Session, error) {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	next := domain.Advance(session.Step)
	if next == session.Step {
		return session, nil
	}
	if !domain.CanEnter(session.Step, session.Draft) {
		return nil, apperr.Validation(fmt.Sprintf("step %s is incomplete", session.Step)).
			WithDetails(domain.MissingForStep(session.Step, session.Draft))
	}

	session.Step = next
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Retreat moves the wizard one step back. Backward navigation is never gated.
func (s *Service) Retreat(ctx context.Context, userID, draftID uuid.UUID) (*Session, error) {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	session.Step = domain.Retreat(session.Step)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// JumpTo navigates directly to a step: backward always, forward only when
// the preceding step is complete.
func (s *Service) JumpTo(ctx context.Context, userID, draftID uuid.UUID, target domain.Step) (*Session, error) {
	if !target.Valid() {
		return nil, apperr.BadRequest("unknown step")
	}

	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	if !domain.CanJumpTo(target, session.Step, session.Draft) {
		return nil, apperr.Validation(fmt.Sprintf("cannot jump to step %s", target)).
			WithDetails(domain.MissingForStep(target-1, session.Draft))
	}

	session.Step = target
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit finalizes the draft into a booking. Every step must be complete.
// The attempt ID travels with the payload so a duplicate submit of the same
// attempt conflicts instead of double-booking. On any failure the session is
// left untouched for retry; only a successful submit consumes it.
func (s *Service) Submit(ctx context.Context, userID, draftID, attemptID uuid.UUID) (*SubmissionResult, error) {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	for step := domain.StepService; step <= domain.StepConfirmation; step++ {
		if !domain.CanEnter(step, session.Draft) {
			return nil, apperr.Validation(fmt.Sprintf("step %s is incomplete", step)).
				WithDetails(domain.MissingForStep(step, session.Draft))
		}
	}

	bookingID, err := s.submitter.Submit(ctx, SubmissionPayload{
		AttemptID: attemptID,
		UserID:    userID,
		Draft:     session.Draft,
	})
	if err != nil {
		s.log.Warn("booking submission failed, draft preserved", "error", err, "draft_id", draftID)
		return nil, err
	}

	if err := s.store.Delete(ctx, draftID); err != nil {
		s.log.Warn("submitted draft cleanup failed", "error", err, "draft_id", draftID)
	}

	// Synchronous publish: the activity trail is written before the client
	// sees the confirmation. Handler failures are logged, never surfaced.
	if err := s.bus.PublishSync(ctx, appevents.BookingSubmitted{
		BaseEvent:  events.NewBaseEvent(),
		BookingID:  bookingID,
		DraftID:    draftID,
		UserID:     userID,
		ServiceID:  session.Draft.ServiceID,
		ProviderID: session.Draft.ProviderID,
		QuoteID:    session.Draft.QuoteID,
		Date:       session.Draft.EffectiveDate(),
		Time:       session.Draft.EffectiveTime(),
		TotalPrice: session.Draft.TotalPrice,
	}); err != nil {
		s.log.Warn("booking submitted handlers failed", "error", err, "booking_id", bookingID)
	}
	s.log.DraftEvent("submitted", draftID.String(), int(session.Step))

	return &SubmissionResult{
		BookingID:  bookingID,
		TotalPrice: session.Draft.TotalPrice,
		Date:       session.Draft.EffectiveDate(),
		Time:       session.Draft.EffectiveTime(),
	}, nil
}

// Abandon discards the session. Nothing is persisted and no booking is
// created.
func (s *Service) Abandon(ctx context.Context, userID, draftID uuid.UUID) error {
	session, err := s.GetSession(ctx, userID, draftID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, draftID); err != nil {
		return err
	}
	s.log.DraftEvent("abandoned", draftID.String(), int(session.Step))
	return nil
}

// ListBookings returns the user's submitted bookings, newest first.
func (s *Service) ListBookings(ctx context.Context, userID uuid.UUID) ([]BookingSummary, error) {
	return s.bookings.ListByUser(ctx, userID)
}
