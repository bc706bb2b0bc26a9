package domain

import (
	"math"
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func seededDraft() Draft {
	return Draft{
		ServiceID:     12,
		ProviderID:    34,
		BasePrice:     1500,
		PricingType:   PricingHourly,
		DurationHours: 1,
		TotalPrice:    1500,
		BookingSource: SourceDirect,
		Status:        StatusDraft,
	}
}

func seedCtx() MergeContext {
	return MergeContext{
		Service:  Service{ID: 12, Title: "Pipe repair", BasePrice: 1500, PricingType: PricingHourly},
		Provider: Provider{ID: 34, Name: "Jansen Loodgieters"},
	}
}

func TestMerge_IdentitySurvivesEmptyOverwrite(t *testing.T) {
	current := seededDraft()

	next := Merge(current, DraftUpdate{ServiceID: ptr[int64](0), ProviderID: ptr[int64](0)}, seedCtx())

	if next.ServiceID != 12 {
		t.Fatalf("serviceId lost: got %d", next.ServiceID)
	}
	if next.ProviderID != 34 {
		t.Fatalf("providerId lost: got %d", next.ProviderID)
	}
}

func TestMerge_IdentitySurvivesOmission(t *testing.T) {
	next := Merge(seededDraft(), DraftUpdate{City: ptr("Utrecht")}, seedCtx())

	if next.ServiceID != 12 || next.ProviderID != 34 {
		t.Fatalf("identity changed on unrelated update: service=%d provider=%d", next.ServiceID, next.ProviderID)
	}
	if next.City != "Utrecht" {
		t.Fatalf("expected city to be merged, got %q", next.City)
	}
}

func TestMerge_EmptyUpdateChangesNothing(t *testing.T) {
	current := seededDraft()
	current.AddOns = []AddOn{{ID: 1, Name: "drain camera", Price: 300}}
	current.Date = "2026-09-14"
	current.AppointmentDate = "2026-09-14"
	current.TotalPrice = 9999 // deliberately stale; no update means no recompute

	next := Merge(current, DraftUpdate{}, seedCtx())

	if !reflect.DeepEqual(next, current) {
		t.Fatalf("empty update changed the draft:\n got %+v\nwant %+v", next, current)
	}
}

func TestMerge_QuoteProvenanceRestoredWhenOmitted(t *testing.T) {
	mctx := seedCtx()
	mctx.Quote = &Quote{ID: 77, ProviderID: 34, ServiceID: 12, QuotedPrice: 2100}

	current := seededDraft()
	current.QuoteID = 77
	current.IsFromQuote = true
	current.BookingSource = SourceQuote

	// Simulate a client resending a form state that dropped the linkage.
	next := Merge(current, DraftUpdate{
		QuoteID:       nil,
		IsFromQuote:   nil,
		BookingSource: nil,
		Address:       ptr("Keizersgracht 1"),
	}, mctx)

	if next.QuoteID != 77 {
		t.Fatalf("quoteId lost: got %d", next.QuoteID)
	}
	if !next.IsFromQuote {
		t.Fatal("isFromQuote lost")
	}
	if next.BookingSource != SourceQuote {
		t.Fatalf("bookingSource lost: got %q", next.BookingSource)
	}
}

func TestMerge_QuoteProvenanceExplicitOverwriteWins(t *testing.T) {
	mctx := seedCtx()
	mctx.Quote = &Quote{ID: 77}

	current := seededDraft()
	current.QuoteID = 77
	current.IsFromQuote = true
	current.BookingSource = SourceQuote

	next := Merge(current, DraftUpdate{
		QuoteID:       ptr[int64](0),
		IsFromQuote:   ptr(false),
		BookingSource: ptr(SourceDirect),
	}, mctx)

	if next.QuoteID != 0 {
		t.Fatalf("explicit quoteId overwrite ignored: got %d", next.QuoteID)
	}
	if next.IsFromQuote {
		t.Fatal("explicit isFromQuote overwrite ignored")
	}
	if next.BookingSource != SourceDirect {
		t.Fatalf("explicit bookingSource overwrite ignored: got %q", next.BookingSource)
	}
}

func TestMerge_DateMirrorsStayInSync(t *testing.T) {
	next := Merge(seededDraft(), DraftUpdate{Date: ptr("2026-09-14")}, seedCtx())
	if next.AppointmentDate != "2026-09-14" {
		t.Fatalf("appointmentDate not mirrored: got %q", next.AppointmentDate)
	}

	next = Merge(next, DraftUpdate{AppointmentTime: ptr("10:00")}, seedCtx())
	if next.Time != "10:00" {
		t.Fatalf("time not mirrored from appointmentTime: got %q", next.Time)
	}

	// Both members in one update: the canonical field wins.
	next = Merge(next, DraftUpdate{Date: ptr("2026-09-15"), AppointmentDate: ptr("2026-09-20")}, seedCtx())
	if next.Date != "2026-09-15" || next.AppointmentDate != "2026-09-15" {
		t.Fatalf("canonical date should win the conflict: date=%q appointmentDate=%q", next.Date, next.AppointmentDate)
	}
}

func TestMerge_RecomputesTotalOnPricingFields(t *testing.T) {
	// Seed: 1500/h hourly, 1 hour. Add an add-on, then stretch the duration.
	current := seededDraft()

	next := Merge(current, DraftUpdate{AddOns: ptr([]AddOn{{ID: 1, Name: "drain camera", Price: 300}})}, seedCtx())
	if next.TotalPrice != 1800 {
		t.Fatalf("expected total 1800 after add-on, got %v", next.TotalPrice)
	}

	next = Merge(next, DraftUpdate{DurationHours: ptr(2.0)}, seedCtx())
	if next.TotalPrice != 3300 {
		t.Fatalf("expected total 3300 after duration change, got %v", next.TotalPrice)
	}
}

func TestMerge_NonPricingUpdateLeavesTotalAlone(t *testing.T) {
	current := seededDraft()
	current.TotalPrice = 9999 // deliberately stale

	next := Merge(current, DraftUpdate{Email: ptr("k.devries@example.nl")}, seedCtx())

	if next.TotalPrice != 9999 {
		t.Fatalf("total recomputed on non-pricing update: got %v", next.TotalPrice)
	}
}

func TestMerge_AddOnsDedupedByID(t *testing.T) {
	next := Merge(seededDraft(), DraftUpdate{AddOns: ptr([]AddOn{
		{ID: 1, Name: "drain camera", Price: 300},
		{ID: 2, Name: "weekend surcharge", Price: 250},
		{ID: 1, Name: "drain camera (dup)", Price: 300},
	})}, seedCtx())

	if len(next.AddOns) != 2 {
		t.Fatalf("expected 2 unique add-ons, got %d", len(next.AddOns))
	}
	if next.AddOns[0].ID != 1 || next.AddOns[1].ID != 2 {
		t.Fatalf("expected first occurrences kept in order, got %+v", next.AddOns)
	}
	if next.TotalPrice != 1500+300+250 {
		t.Fatalf("duplicate add-on counted in total: got %v", next.TotalPrice)
	}
}

func TestMerge_NonFiniteNumbersDegradeToZero(t *testing.T) {
	next := Merge(seededDraft(), DraftUpdate{
		BasePrice:     ptr(math.NaN()),
		DurationHours: ptr(math.Inf(1)),
		TravelFee:     ptr(math.Inf(-1)),
	}, seedCtx())

	if next.BasePrice != 0 || next.DurationHours != 0 || next.TravelFee != 0 {
		t.Fatalf("non-finite inputs not sanitized: base=%v dur=%v fee=%v", next.BasePrice, next.DurationHours, next.TravelFee)
	}
	if next.TotalPrice != 0 {
		t.Fatalf("expected total 0 after sanitation, got %v", next.TotalPrice)
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	current := seededDraft()
	current.AddOns = []AddOn{{ID: 5, Price: 100}}

	_ = Merge(current, DraftUpdate{AddOns: ptr([]AddOn{{ID: 9, Price: 50}})}, seedCtx())

	if len(current.AddOns) != 1 || current.AddOns[0].ID != 5 {
		t.Fatalf("input draft was mutated: %+v", current.AddOns)
	}
}

func TestMerge_PhoneNormalized(t *testing.T) {
	next := Merge(seededDraft(), DraftUpdate{Phone: ptr("06 1234 5678")}, seedCtx())

	if next.Phone != "+31612345678" {
		t.Fatalf("expected normalized E.164 phone, got %q", next.Phone)
	}
}
