// Package service resolves bookable time slots, favoring the upstream
// calendar and degrading to locally generated fallback slots.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"booking_portal_backend/internal/availability/transport"
	"booking_portal_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// SlotFetcher reads open slots from the upstream calendar API.
type SlotFetcher interface {
	GetSlots(ctx context.Context, query transport.SlotQuery) ([]transport.TimeSlot, error)
}

// cacheEntry holds a resolved slot list with expiration.
type cacheEntry struct {
	list      transport.SlotList
	expiresAt time.Time
}

// Service handles slot resolution with caching and request coalescing.
// Concurrent lookups for the same provider/service/date share one upstream
// call via singleflight.
type Service struct {
	fetcher  SlotFetcher
	log      *logger.Logger
	group    singleflight.Group
	cache    map[string]cacheEntry
	cacheMu  sync.RWMutex
	cacheTTL time.Duration
	now      func() time.Time
}

// New creates a new availability service. A nil fetcher disables the upstream
// entirely; every lookup then yields fallback slots.
func New(fetcher SlotFetcher, log *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		log:      log,
		cache:    make(map[string]cacheEntry),
		cacheTTL: 2 * time.Minute, // Calendars churn, keep this short
		now:      time.Now,
	}
}

// FetchSlots resolves the open slots for a provider/service/date. Upstream
// results win; when the upstream is unavailable, errors out or returns an
// empty day, deterministic fallback slots are generated so the wizard never
// dead-ends. Fallback results carry Fallback=true on the list and each slot.
func (s *Service) FetchSlots(ctx context.Context, query transport.SlotQuery) (transport.SlotList, error) {
	key := fmt.Sprintf("%d:%d:%s:%v", query.ProviderID, query.ServiceID, query.Date, query.DurationHours)

	if list, ok := s.getFromCache(key); ok {
		return list, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		list := s.resolve(ctx, query)
		s.setCache(key, list)
		return list, nil
	})
	if err != nil {
		return transport.SlotList{}, err
	}

	return v.(transport.SlotList), nil
}

// IsSlotStillAvailable re-resolves the day and reports whether the exact
// start time is still in the open set. Used to validate a slot the user
// picked earlier before committing to it.
func (s *Service) IsSlotStillAvailable(ctx context.Context, query transport.SlotQuery, startTime string) (bool, error) {
	list, err := s.FetchSlots(ctx, query)
	if err != nil {
		return false, err
	}

	for _, slot := range list.Slots {
		if slot.Time == startTime {
			return true, nil
		}
	}
	return false, nil
}

// ClearCache removes all cached slot lists.
func (s *Service) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[string]cacheEntry)
}

func (s *Service) resolve(ctx context.Context, query transport.SlotQuery) transport.SlotList {
	if s.fetcher != nil {
		slots, err := s.fetcher.GetSlots(ctx, query)
		if err != nil {
			s.log.Warn("availability upstream failed, using fallback slots",
				"error", err, "provider", query.ProviderID, "date", query.Date)
		} else if len(slots) > 0 {
			return transport.SlotList{Slots: slots}
		}
	}

	return transport.SlotList{Slots: FallbackSlots(query.Date), Fallback: true}
}

func (s *Service) getFromCache(key string) (transport.SlotList, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	entry, ok := s.cache[key]
	if !ok || s.now().After(entry.expiresAt) {
		return transport.SlotList{}, false
	}
	return entry.list, true
}

func (s *Service) setCache(key string, list transport.SlotList) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cacheEntry{list: list, expiresAt: s.now().Add(s.cacheTTL)}
}

// Fallback business hours. Weekdays run a full day of hourly starts; weekends
// only mornings, matching how most providers on the platform actually work.
const (
	fallbackOpenHour         = 9
	fallbackCloseHourWeekday = 17
	fallbackCloseHourWeekend = 12
)

// FallbackSlots deterministically generates hourly slots for a date. Same
// date in, same slots out; no randomness, no clock dependence. Mid-morning
// and early-afternoon starts are flagged popular to keep the wizard's
// highlighting stable.
func FallbackSlots(date string) []transport.TimeSlot {
	closeHour := fallbackCloseHourWeekday
	if day, err := time.Parse("2006-01-02", date); err == nil {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			closeHour = fallbackCloseHourWeekend
		}
	}

	slots := make([]transport.TimeSlot, 0, closeHour-fallbackOpenHour)
	for hour := fallbackOpenHour; hour < closeHour; hour++ {
		slots = append(slots, transport.TimeSlot{
			Date:          date,
			Time:          fmt.Sprintf("%02d:00", hour),
			FormattedTime: fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1),
			IsPopular:     hour == 10 || hour == 14,
			Fallback:      true,
		})
	}
	return slots
}
