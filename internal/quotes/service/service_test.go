package service

import (
	"context"
	"testing"
	"time"

	"booking_portal_backend/internal/quotes/repository"
	"booking_portal_backend/platform/apperr"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeQuotes struct {
	quote repository.Quote
}

func (f *fakeQuotes) GetByID(ctx context.Context, id int64) (*repository.Quote, error) {
	if id != f.quote.ID {
		return nil, apperr.NotFound("quote not found")
	}
	q := f.quote
	return &q, nil
}

type fakeResolver struct {
	slots []Slot
	calls int
}

func (f *fakeResolver) FetchSlots(ctx context.Context, providerID, serviceID int64, date string, durationHours float64) ([]Slot, error) {
	f.calls++
	return f.slots, nil
}

type fakeSubmitter struct {
	err         error
	acceptances []repository.Acceptance
}

func (f *fakeSubmitter) Submit(ctx context.Context, acceptance repository.Acceptance) error {
	if f.err != nil {
		return f.err
	}
	f.acceptances = append(f.acceptances, acceptance)
	return nil
}

var testUserID = uuid.MustParse("7f9c24e5-2b31-4a41-9a44-1d7c4b3e9d10")

func pendingQuote() repository.Quote {
	return repository.Quote{
		ID:                     77,
		UserID:                 testUserID,
		ProviderID:             34,
		ServiceID:              12,
		QuotedPrice:            2100,
		EstimatedDurationHours: 2,
		RequestedDate:          "2026-09-14",
		RequestedTime:          "10:00",
		Status:                 repository.StatusPending,
	}
}

func newTestService(resolver *fakeResolver, submitter *fakeSubmitter) *Service {
	svc := New(&fakeQuotes{quote: pendingQuote()}, resolver, submitter,
		events.NewInMemoryBus(logger.New("test")), logger.New("test"))
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAcceptQuote_WithoutAppointment(t *testing.T) {
	resolver := &fakeResolver{}
	submitter := &fakeSubmitter{}
	svc := newTestService(resolver, submitter)

	result, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{
		AttemptID: uuid.New(),
		Notes:     "see you then",
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if result.AppointmentCreated {
		t.Fatal("no appointment was requested")
	}
	if resolver.calls != 0 {
		t.Fatal("calendar must not be consulted without an appointment")
	}
	if len(submitter.acceptances) != 1 || submitter.acceptances[0].Notes != "see you then" {
		t.Fatalf("acceptance not submitted: %+v", submitter.acceptances)
	}
}

func TestAcceptQuote_AppointmentRequiresDateAndSlot(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeSubmitter{})

	cases := []struct {
		name  string
		input AcceptQuoteInput
	}{
		{"missing date", AcceptQuoteInput{AttemptID: uuid.New(), CreateAppointment: true, AppointmentTime: "10:00"}},
		{"missing time", AcceptQuoteInput{AttemptID: uuid.New(), CreateAppointment: true, AppointmentDate: "2026-09-14"}},
		{"past date", AcceptQuoteInput{AttemptID: uuid.New(), CreateAppointment: true, AppointmentDate: "2026-08-14", AppointmentTime: "10:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AcceptQuote(context.Background(), testUserID, 77, tc.input)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAcceptQuote_SlotNoLongerAvailable(t *testing.T) {
	resolver := &fakeResolver{slots: []Slot{{Date: "2026-09-14", Time: "14:00"}}}
	submitter := &fakeSubmitter{}
	svc := newTestService(resolver, submitter)

	_, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{
		AttemptID:         uuid.New(),
		CreateAppointment: true,
		AppointmentDate:   "2026-09-14",
		AppointmentTime:   "10:00",
	})

	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected gone, got %v", err)
	}
	if len(submitter.acceptances) != 0 {
		t.Fatal("nothing may be submitted when the slot is gone")
	}
}

func TestAcceptQuote_SubmitsAtomicAcceptance(t *testing.T) {
	resolver := &fakeResolver{slots: []Slot{{Date: "2026-09-14", Time: "14:00"}}}
	submitter := &fakeSubmitter{}
	svc := newTestService(resolver, submitter)

	attemptID := uuid.New()
	result, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{
		AttemptID:         attemptID,
		CreateAppointment: true,
		AppointmentDate:   "2026-09-14",
		AppointmentTime:   "14:00",
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if !result.AppointmentCreated || result.AppointmentTime != "14:00" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(submitter.acceptances) != 1 {
		t.Fatalf("expected one acceptance, got %d", len(submitter.acceptances))
	}
	a := submitter.acceptances[0]
	if a.AttemptID != attemptID || a.AppointmentDate != "2026-09-14" || a.AppointmentTime != "14:00" {
		t.Fatalf("acceptance fields wrong: %+v", a)
	}
	if a.DurationHours != 2 {
		t.Fatalf("expected duration defaulted from the quote, got %v", a.DurationHours)
	}
}

func TestAcceptQuote_OriginalTimeHint(t *testing.T) {
	// The quote originally asked for 10:00 on the 14th; both 10:00 and 14:00
	// are still open, the user picks 14:00.
	resolver := &fakeResolver{slots: []Slot{
		{Date: "2026-09-14", Time: "10:00"},
		{Date: "2026-09-14", Time: "14:00"},
	}}
	svc := newTestService(resolver, &fakeSubmitter{})

	result, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{
		AttemptID:         uuid.New(),
		CreateAppointment: true,
		AppointmentDate:   "2026-09-14",
		AppointmentTime:   "14:00",
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if !result.OriginalTimeStillAvailable {
		t.Fatal("expected original-time hint")
	}
}

func TestAcceptQuote_NoHintOnDifferentDay(t *testing.T) {
	resolver := &fakeResolver{slots: []Slot{{Date: "2026-09-21", Time: "14:00"}}}
	svc := newTestService(resolver, &fakeSubmitter{})

	result, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{
		AttemptID:         uuid.New(),
		CreateAppointment: true,
		AppointmentDate:   "2026-09-21",
		AppointmentTime:   "14:00",
	})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if result.OriginalTimeStillAvailable {
		t.Fatal("hint must only fire for the originally requested day")
	}
}

func TestAcceptQuote_ForeignUserReadsAsNotFound(t *testing.T) {
	svc := newTestService(&fakeResolver{}, &fakeSubmitter{})

	_, err := svc.AcceptQuote(context.Background(), uuid.New(), 77, AcceptQuoteInput{AttemptID: uuid.New()})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAcceptQuote_DuplicateAttemptConflicts(t *testing.T) {
	submitter := &fakeSubmitter{err: apperr.Conflict("quote acceptance already submitted for this attempt")}
	svc := newTestService(&fakeResolver{}, submitter)

	_, err := svc.AcceptQuote(context.Background(), testUserID, 77, AcceptQuoteInput{AttemptID: uuid.New()})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
