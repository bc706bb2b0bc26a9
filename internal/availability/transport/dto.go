// Package transport defines request/response DTOs for availability lookups.
package transport

// TimeSlot is one bookable time on a provider's calendar.
type TimeSlot struct {
	Date          string `json:"date"`          // 2006-01-02
	Time          string `json:"time"`          // 15:04, start of the slot
	FormattedTime string `json:"formattedTime"` // display label, e.g. "09:00 - 10:00"
	IsPopular     bool   `json:"isPopular"`
	Fallback      bool   `json:"fallback"` // true when generated locally, not confirmed upstream
}

// SlotQuery identifies whose calendar to read and for which day.
type SlotQuery struct {
	ProviderID    int64   `form:"providerId" validate:"required,gt=0"`
	ServiceID     int64   `form:"serviceId" validate:"required,gt=0"`
	Date          string  `form:"date" validate:"required,datetime=2006-01-02"`
	DurationHours float64 `form:"durationHours" validate:"omitempty,gt=0"`
}

// SlotCheckQuery re-validates a previously picked start time on a calendar day.
type SlotCheckQuery struct {
	SlotQuery
	Time string `form:"time" validate:"required,datetime=15:04"`
}

// SlotCheckResult reports whether the checked time is still open.
type SlotCheckResult struct {
	Available bool `json:"available"`
}

// SlotList is the availability lookup result. Fallback mirrors the per-slot
// flag for the whole batch: either every slot came from upstream or none did.
type SlotList struct {
	Slots    []TimeSlot `json:"slots"`
	Fallback bool       `json:"fallback"`
}
