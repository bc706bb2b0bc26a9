package service

import (
	"context"
	"testing"
	"time"

	"booking_portal_backend/internal/booking/domain"
	appevents "booking_portal_backend/internal/events"
	"booking_portal_backend/platform/apperr"
	"booking_portal_backend/platform/events"
	"booking_portal_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeCatalog struct {
	service  domain.Service
	provider domain.Provider
}

func (f *fakeCatalog) GetService(ctx context.Context, id int64) (domain.Service, error) {
	if id != f.service.ID {
		return domain.Service{}, apperr.NotFound("service not found")
	}
	return f.service, nil
}

func (f *fakeCatalog) GetProvider(ctx context.Context, id int64) (domain.Provider, error) {
	if id != f.provider.ID {
		return domain.Provider{}, apperr.NotFound("provider not found")
	}
	return f.provider, nil
}

type fakeQuotes struct {
	quote domain.Quote
}

func (f *fakeQuotes) GetQuote(ctx context.Context, id int64) (domain.Quote, error) {
	if id != f.quote.ID {
		return domain.Quote{}, apperr.NotFound("quote not found")
	}
	return f.quote, nil
}

type fakeResolver struct {
	list SlotList
	// onFetch runs during the fetch, before the stale-guard re-read. Lets
	// tests race a draft update against the in-flight call.
	onFetch func()
}

func (f *fakeResolver) FetchSlots(ctx context.Context, query SlotQuery) (SlotList, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.list, nil
}

type fakeSubmitter struct {
	err      error
	payloads []SubmissionPayload
}

func (f *fakeSubmitter) Submit(ctx context.Context, payload SubmissionPayload) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.payloads = append(f.payloads, payload)
	return uuid.New(), nil
}

func (f *fakeSubmitter) ListByUser(ctx context.Context, userID uuid.UUID) ([]BookingSummary, error) {
	return nil, nil
}

func newTestService(t *testing.T, resolver SlotResolver, submitter *fakeSubmitter) (*Service, *Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, 30*time.Minute)

	catalog := &fakeCatalog{
		service: domain.Service{
			ID: 12, Title: "Pipe repair", BasePrice: 1500,
			PricingType: domain.PricingHourly, DefaultDurationHours: 1,
		},
		provider: domain.Provider{ID: 34, Name: "Jansen Loodgieters", TravelFeeRatePerKm: 60},
	}
	quotes := &fakeQuotes{quote: domain.Quote{
		ID: 77, ProviderID: 34, ServiceID: 12, QuotedPrice: 2100,
		EstimatedDurationHours: 2, RequestedDate: "2026-09-14", RequestedTime: "10:00",
	}}

	svc := New(store, catalog, quotes, resolver, submitter, submitter, nil, events.NewInMemoryBus(logger.New("test")), logger.New("test"))
	return svc, store, mr
}

func start(t *testing.T, svc *Service, userID uuid.UUID) *Session {
	t.Helper()
	session, err := svc.StartSession(context.Background(), userID, StartSessionInput{ServiceID: 12, ProviderID: 34})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return session
}

func TestStartSession_SeedsFromCatalog(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	session := start(t, svc, uuid.New())

	d := session.Draft
	if d.ServiceID != 12 || d.ProviderID != 34 {
		t.Fatalf("identity not seeded: %+v", d)
	}
	if d.BasePrice != 1500 || d.PricingType != domain.PricingHourly || d.DurationHours != 1 {
		t.Fatalf("pricing not seeded from catalog: %+v", d)
	}
	// 1500×1 + 60/km × 5km travel fee
	if d.TotalPrice != 1800 {
		t.Fatalf("expected seeded total 1800, got %v", d.TotalPrice)
	}
	if session.Step != domain.StepService {
		t.Fatalf("expected wizard to open on the service step, got %v", session.Step)
	}
}

func TestStartSession_SeedsFromQuote(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})

	quoteID := int64(77)
	session, err := svc.StartSession(context.Background(), uuid.New(), StartSessionInput{
		ServiceID: 12, ProviderID: 34, QuoteID: &quoteID,
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	d := session.Draft
	if d.QuoteID != 77 || !d.IsFromQuote || d.BookingSource != domain.SourceQuote {
		t.Fatalf("quote provenance not seeded: %+v", d)
	}
	if d.BasePrice != 2100 || d.PricingType != domain.PricingFixed {
		t.Fatalf("quoted price not seeded: %+v", d)
	}
	if d.Date != "2026-09-14" || d.AppointmentDate != "2026-09-14" {
		t.Fatalf("requested date not mirrored: %+v", d)
	}
}

func TestStartSession_PreselectedSlotJumpsToDetails(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})

	session, err := svc.StartSession(context.Background(), uuid.New(), StartSessionInput{
		ServiceID: 12, ProviderID: 34,
		Slot: &SlotSelection{Date: "2026-09-14", Time: "10:00"},
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	if session.Step != domain.StepDetails {
		t.Fatalf("expected auto-advance to details, got %v", session.Step)
	}
	if session.Draft.Time != "10:00" || session.Draft.AppointmentTime != "10:00" {
		t.Fatalf("slot not applied to both mirrors: %+v", session.Draft)
	}
}

func TestApplyUpdate_MergesThroughStore(t *testing.T) {
	svc, store, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	two := 2.0
	updated, err := svc.ApplyUpdate(context.Background(), userID, session.Draft.ID, domain.DraftUpdate{DurationHours: &two})
	if err != nil {
		t.Fatalf("apply update: %v", err)
	}
	// 1500×2 + 300 travel fee
	if updated.Draft.TotalPrice != 3300 {
		t.Fatalf("expected recomputed total 3300, got %v", updated.Draft.TotalPrice)
	}

	reloaded, err := store.Get(context.Background(), session.Draft.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Draft.DurationHours != 2 {
		t.Fatalf("update not persisted: %+v", reloaded.Draft)
	}
}

func TestGetSession_ForeignUserReadsAsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	session := start(t, svc, uuid.New())

	_, err := svc.GetSession(context.Background(), uuid.New(), session.Draft.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
}

func TestGetSession_ExpiredSessionIsGone(t *testing.T) {
	svc, _, mr := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	mr.FastForward(31 * time.Minute)

	_, err := svc.GetSession(context.Background(), userID, session.Draft.ID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after TTL, got %v", err)
	}
}

func TestRefreshSlots_RequiresDate(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	_, err := svc.RefreshSlots(context.Background(), userID, session.Draft.ID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error without a date, got %v", err)
	}
}

func TestRefreshSlots_StaleResponseDiscarded(t *testing.T) {
	resolver := &fakeResolver{list: SlotList{Slots: []Slot{{Date: "2026-09-14", Time: "10:00"}}}}
	svc, _, _ := newTestService(t, resolver, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	ctx := context.Background()
	date := "2026-09-14"
	if _, err := svc.ApplyUpdate(ctx, userID, session.Draft.ID, domain.DraftUpdate{Date: &date}); err != nil {
		t.Fatalf("set date: %v", err)
	}

	// While the fetch is in flight the user switches days.
	resolver.onFetch = func() {
		other := "2026-09-21"
		if _, err := svc.ApplyUpdate(ctx, userID, session.Draft.ID, domain.DraftUpdate{Date: &other}); err != nil {
			t.Fatalf("concurrent update: %v", err)
		}
	}

	_, err := svc.RefreshSlots(ctx, userID, session.Draft.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for stale response, got %v", err)
	}
}

func TestRefreshSlots_StaleDurationDiscarded(t *testing.T) {
	resolver := &fakeResolver{list: SlotList{Slots: []Slot{{Date: "2026-09-14", Time: "10:00"}}}}
	svc, _, _ := newTestService(t, resolver, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	ctx := context.Background()
	date := "2026-09-14"
	if _, err := svc.ApplyUpdate(ctx, userID, session.Draft.ID, domain.DraftUpdate{Date: &date}); err != nil {
		t.Fatalf("set date: %v", err)
	}

	// Same day, but the duration changes while the fetch is in flight. The
	// slots were computed for the old duration and must not be served.
	resolver.onFetch = func() {
		three := 3.0
		if _, err := svc.ApplyUpdate(ctx, userID, session.Draft.ID, domain.DraftUpdate{DurationHours: &three}); err != nil {
			t.Fatalf("concurrent update: %v", err)
		}
	}

	_, err := svc.RefreshSlots(ctx, userID, session.Draft.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for stale duration, got %v", err)
	}
}

func TestSelectExternalSlot_AutoAdvances(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	updated, err := svc.SelectExternalSlot(context.Background(), userID, session.Draft.ID,
		SlotSelection{Date: "2026-09-14", Time: "10:00"})
	if err != nil {
		t.Fatalf("select slot: %v", err)
	}

	if updated.Step != domain.StepDetails {
		t.Fatalf("expected auto-advance to details, got %v", updated.Step)
	}
	if updated.Draft.Date != "2026-09-14" || updated.Draft.AppointmentDate != "2026-09-14" {
		t.Fatalf("slot date not mirrored: %+v", updated.Draft)
	}
}

func TestAdvance_GatedOnCompletion(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	// Step 1 is complete from seeding; advancing to step 2 works.
	updated, err := svc.Advance(context.Background(), userID, session.Draft.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if updated.Step != domain.StepDateTime {
		t.Fatalf("expected datetime step, got %v", updated.Step)
	}

	// Step 2 has no date yet; advancing again must fail with details.
	_, err = svc.Advance(context.Background(), userID, session.Draft.ID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func completeDraft(t *testing.T, svc *Service, userID, draftID uuid.UUID) {
	t.Helper()

	date, tm := "2026-09-14", "10:00"
	address, phone := "Keizersgracht 1", "+31612345678"
	agreed := true
	_, err := svc.ApplyUpdate(context.Background(), userID, draftID, domain.DraftUpdate{
		Date: &date, Time: &tm, Address: &address, Phone: &phone, AgreedToTerms: &agreed,
	})
	if err != nil {
		t.Fatalf("complete draft: %v", err)
	}
}

func TestSubmit_HappyPathConsumesSession(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc, store, _ := newTestService(t, &fakeResolver{}, submitter)
	userID := uuid.New()
	session := start(t, svc, userID)
	completeDraft(t, svc, userID, session.Draft.ID)

	attemptID := uuid.New()
	result, err := svc.Submit(context.Background(), userID, session.Draft.ID, attemptID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.BookingID == uuid.Nil {
		t.Fatal("expected a booking id")
	}
	if len(submitter.payloads) != 1 || submitter.payloads[0].AttemptID != attemptID {
		t.Fatalf("attempt id not forwarded: %+v", submitter.payloads)
	}

	if _, err := store.Get(context.Background(), session.Draft.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("session should be consumed after submit, got %v", err)
	}
}

func TestSubmit_DeliversEventBeforeReturning(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, 30*time.Minute)

	catalog := &fakeCatalog{
		service: domain.Service{
			ID: 12, Title: "Pipe repair", BasePrice: 1500,
			PricingType: domain.PricingHourly, DefaultDurationHours: 1,
		},
		provider: domain.Provider{ID: 34, Name: "Jansen Loodgieters", TravelFeeRatePerKm: 60},
	}
	quotes := &fakeQuotes{quote: domain.Quote{ID: 77, ProviderID: 34, ServiceID: 12}}
	submitter := &fakeSubmitter{}

	bus := events.NewInMemoryBus(logger.New("test"))
	var delivered *appevents.BookingSubmitted
	bus.Subscribe(appevents.BookingSubmittedName, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e := event.(appevents.BookingSubmitted)
		delivered = &e
		return nil
	}))

	svc := New(store, catalog, quotes, &fakeResolver{}, submitter, submitter, nil, bus, logger.New("test"))
	userID := uuid.New()
	session := start(t, svc, userID)
	completeDraft(t, svc, userID, session.Draft.ID)

	result, err := svc.Submit(context.Background(), userID, session.Draft.ID, uuid.New())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Delivery is synchronous: by the time Submit returns, the subscriber
	// has seen the event. No sleeps, no polling.
	if delivered == nil {
		t.Fatal("booking.submitted not delivered before Submit returned")
	}
	if delivered.BookingID != result.BookingID || delivered.UserID != userID {
		t.Fatalf("event payload mismatch: %+v", delivered)
	}
}

func TestSubmit_IncompleteDraftRejected(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeResolver{}, &fakeSubmitter{})
	userID := uuid.New()
	session := start(t, svc, userID)

	_, err := svc.Submit(context.Background(), userID, session.Draft.ID, uuid.New())
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmit_FailurePreservesDraft(t *testing.T) {
	submitter := &fakeSubmitter{err: apperr.Internal("submission failed")}
	svc, store, _ := newTestService(t, &fakeResolver{}, submitter)
	userID := uuid.New()
	session := start(t, svc, userID)
	completeDraft(t, svc, userID, session.Draft.ID)

	_, err := svc.Submit(context.Background(), userID, session.Draft.ID, uuid.New())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}

	reloaded, err := store.Get(context.Background(), session.Draft.ID)
	if err != nil {
		t.Fatalf("draft must survive a failed submit: %v", err)
	}
	if !reloaded.Draft.AgreedToTerms {
		t.Fatalf("draft content lost on failed submit: %+v", reloaded.Draft)
	}
}

func TestSubmit_DuplicateAttemptConflicts(t *testing.T) {
	submitter := &fakeSubmitter{err: apperr.Conflict("booking already submitted for this attempt")}
	svc, store, _ := newTestService(t, &fakeResolver{}, submitter)
	userID := uuid.New()
	session := start(t, svc, userID)
	completeDraft(t, svc, userID, session.Draft.ID)

	_, err := svc.Submit(context.Background(), userID, session.Draft.ID, uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if _, err := store.Get(context.Background(), session.Draft.ID); err != nil {
		t.Fatalf("draft must survive a conflicting submit: %v", err)
	}
}

func TestAbandon_DeletesWithoutSideEffects(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc, store, _ := newTestService(t, &fakeResolver{}, submitter)
	userID := uuid.New()
	session := start(t, svc, userID)

	if err := svc.Abandon(context.Background(), userID, session.Draft.ID); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	if _, err := store.Get(context.Background(), session.Draft.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
	if len(submitter.payloads) != 0 {
		t.Fatal("abandon must not submit anything")
	}
}
