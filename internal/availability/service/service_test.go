package service

import (
	"context"
	"errors"
	"testing"

	"booking_portal_backend/internal/availability/transport"
	"booking_portal_backend/platform/logger"
)

type stubFetcher struct {
	slots []transport.TimeSlot
	err   error
	calls int
}

func (f *stubFetcher) GetSlots(ctx context.Context, query transport.SlotQuery) ([]transport.TimeSlot, error) {
	f.calls++
	return f.slots, f.err
}

func mondayQuery() transport.SlotQuery {
	// 2026-09-14 is a Monday.
	return transport.SlotQuery{ProviderID: 34, ServiceID: 12, Date: "2026-09-14"}
}

func TestFetchSlots_UpstreamWins(t *testing.T) {
	fetcher := &stubFetcher{slots: []transport.TimeSlot{
		{Date: "2026-09-14", Time: "10:00", FormattedTime: "10:00"},
	}}
	svc := New(fetcher, logger.New("test"))

	list, err := svc.FetchSlots(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Fallback {
		t.Fatal("upstream result should not be flagged fallback")
	}
	if len(list.Slots) != 1 || list.Slots[0].Time != "10:00" {
		t.Fatalf("unexpected slots: %+v", list.Slots)
	}
}

func TestFetchSlots_FallbackOnUpstreamError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	svc := New(fetcher, logger.New("test"))

	list, err := svc.FetchSlots(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("upstream failure must not surface: %v", err)
	}
	if !list.Fallback {
		t.Fatal("expected fallback flag")
	}
	if len(list.Slots) != 8 {
		t.Fatalf("expected 8 weekday fallback slots, got %d", len(list.Slots))
	}
	for _, slot := range list.Slots {
		if !slot.Fallback {
			t.Fatalf("every fallback slot must be flagged: %+v", slot)
		}
	}
}

func TestFetchSlots_FallbackOnEmptyUpstream(t *testing.T) {
	svc := New(&stubFetcher{}, logger.New("test"))

	list, err := svc.FetchSlots(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !list.Fallback {
		t.Fatal("an empty upstream day should degrade to fallback slots")
	}
}

func TestFetchSlots_NoFetcherMeansAlwaysFallback(t *testing.T) {
	svc := New(nil, logger.New("test"))

	list, err := svc.FetchSlots(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !list.Fallback {
		t.Fatal("expected fallback when no upstream is configured")
	}
}

func TestFetchSlots_CachesPerQuery(t *testing.T) {
	fetcher := &stubFetcher{slots: []transport.TimeSlot{{Time: "10:00"}}}
	svc := New(fetcher, logger.New("test"))

	ctx := context.Background()
	if _, err := svc.FetchSlots(ctx, mondayQuery()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FetchSlots(ctx, mondayQuery()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected a single upstream call, got %d", fetcher.calls)
	}
}

func TestFallbackSlots_Deterministic(t *testing.T) {
	first := FallbackSlots("2026-09-14")
	second := FallbackSlots("2026-09-14")

	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFallbackSlots_WeekendMorningsOnly(t *testing.T) {
	// 2026-09-19 is a Saturday.
	slots := FallbackSlots("2026-09-19")

	if len(slots) != 3 {
		t.Fatalf("expected 3 weekend morning slots, got %d", len(slots))
	}
	weekday := FallbackSlots("2026-09-14")
	for _, slot := range slots {
		if slot.Time >= "12:00" {
			t.Fatalf("weekend slot past noon: %+v", slot)
		}
		if !containsTime(weekday, slot.Time) {
			t.Fatalf("weekend slot %s not a subset of the weekday set", slot.Time)
		}
	}
}

func TestIsSlotStillAvailable(t *testing.T) {
	fetcher := &stubFetcher{slots: []transport.TimeSlot{
		{Date: "2026-09-14", Time: "10:00"},
		{Date: "2026-09-14", Time: "14:00"},
	}}
	svc := New(fetcher, logger.New("test"))

	ctx := context.Background()
	ok, err := svc.IsSlotStillAvailable(ctx, mondayQuery(), "10:00")
	if err != nil || !ok {
		t.Fatalf("expected 10:00 available, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.IsSlotStillAvailable(ctx, mondayQuery(), "11:00")
	if err != nil || ok {
		t.Fatalf("expected 11:00 unavailable, got ok=%v err=%v", ok, err)
	}
}

func containsTime(slots []transport.TimeSlot, startTime string) bool {
	for _, slot := range slots {
		if slot.Time == startTime {
			return true
		}
	}
	return false
}
