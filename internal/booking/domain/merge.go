package domain

import "booking_portal_backend/platform/phone"

// DraftUpdate is the enumerated set of fields a partial update may carry.
// A nil pointer means the field was absent from the update; a set pointer is
// an explicit value, including explicit zero values. Unrecognized keys never
// reach this struct — the transport layer drops them during decoding.
type DraftUpdate struct {
	ServiceID  *int64
	ProviderID *int64

	QuoteID       *int64
	IsFromQuote   *bool
	BookingSource *string

	Date            *string
	Time            *string
	AppointmentDate *string
	AppointmentTime *string

	BasePrice     *float64
	DurationHours *float64
	AddOns        *[]AddOn
	TravelFee     *float64

	LocationType *LocationType
	Address      *string
	City         *string
	PostalCode   *string
	Instructions *string

	Phone             *string
	Email             *string
	ContactPreference *ContactPreference

	SpecialInstructions *string
	PaymentMethod       *string
	AgreedToTerms       *bool
	Status              *string
	Timezone            *string
}

// TouchesPricing reports whether the update carries any pricing-relevant field.
func (u DraftUpdate) TouchesPricing() bool {
	return u.BasePrice != nil || u.DurationHours != nil || u.AddOns != nil || u.TravelFee != nil
}

// MergeContext carries the seeding data needed to restore identity and quote
// provenance fields when an update omits or blanks them.
type MergeContext struct {
	Service  Service
	Provider Provider
	Quote    *Quote
}

// Merge overlays the update onto the current draft and enforces the draft
// invariants, in order:
//
//  1. shallow overlay of every set field,
//  2. identity preservation — serviceId/providerId restored from context
//     when the merged value is empty,
//  3. quote provenance preservation — quoteId/isFromQuote/bookingSource
//     restored from the originating quote unless the update explicitly set
//     them,
//  4. date/time mirror propagation — whichever member of a mirrored pair the
//     update carried wins and is copied to its twin,
//  5. numeric sanitation of durationHours/basePrice/travelFee,
//  6. total recomputation whenever a pricing-relevant field was touched.
//
// The input draft is never mutated; Merge returns a new value so callers can
// detect change by identity. Merge never fails.
func Merge(current Draft, update DraftUpdate, mctx MergeContext) Draft {
	next := current.Clone()

	overlay(&next, update)
	preserveIdentity(&next, mctx)
	preserveProvenance(&next, update, mctx)
	propagateMirrors(&next, update)
	sanitizeNumbers(&next)

	if update.TouchesPricing() {
		next.TotalPrice = ComputeTotal(next.BasePrice, next.DurationHours, next.PricingType, next.AddOns, next.TravelFee)
	}

	return next
}

func overlay(next *Draft, u DraftUpdate) {
	if u.ServiceID != nil {
		next.ServiceID = *u.ServiceID
	}
	if u.ProviderID != nil {
		next.ProviderID = *u.ProviderID
	}
	if u.QuoteID != nil {
		next.QuoteID = *u.QuoteID
	}
	if u.IsFromQuote != nil {
		next.IsFromQuote = *u.IsFromQuote
	}
	if u.BookingSource != nil {
		next.BookingSource = *u.BookingSource
	}
	if u.Date != nil {
		next.Date = *u.Date
	}
	if u.Time != nil {
		next.Time = *u.Time
	}
	if u.AppointmentDate != nil {
		next.AppointmentDate = *u.AppointmentDate
	}
	if u.AppointmentTime != nil {
		next.AppointmentTime = *u.AppointmentTime
	}
	if u.BasePrice != nil {
		next.BasePrice = *u.BasePrice
	}
	if u.DurationHours != nil {
		next.DurationHours = *u.DurationHours
	}
	if u.AddOns != nil {
		next.AddOns = dedupeAddOns(*u.AddOns)
	}
	if u.TravelFee != nil {
		next.TravelFee = *u.TravelFee
	}
	if u.LocationType != nil {
		next.LocationType = *u.LocationType
	}
	if u.Address != nil {
		next.Address = *u.Address
	}
	if u.City != nil {
		next.City = *u.City
	}
	if u.PostalCode != nil {
		next.PostalCode = *u.PostalCode
	}
	if u.Instructions != nil {
		next.Instructions = *u.Instructions
	}
	if u.Phone != nil {
		next.Phone = phone.NormalizeE164(*u.Phone)
	}
	if u.Email != nil {
		next.Email = *u.Email
	}
	if u.ContactPreference != nil {
		next.ContactPreference = *u.ContactPreference
	}
	if u.SpecialInstructions != nil {
		next.SpecialInstructions = *u.SpecialInstructions
	}
	if u.PaymentMethod != nil {
		next.PaymentMethod = *u.PaymentMethod
	}
	if u.AgreedToTerms != nil {
		next.AgreedToTerms = *u.AgreedToTerms
	}
	if u.Status != nil {
		next.Status = *u.Status
	}
	if u.Timezone != nil {
		next.Timezone = *u.Timezone
	}
}

// preserveIdentity restores serviceId/providerId from the seeding context
// when a merge left them empty.
func preserveIdentity(next *Draft, mctx MergeContext) {
	if next.ServiceID == 0 && mctx.Service.ID != 0 {
		next.ServiceID = mctx.Service.ID
	}
	if next.ProviderID == 0 && mctx.Provider.ID != 0 {
		next.ProviderID = mctx.Provider.ID
	}
}

// preserveProvenance keeps quote linkage fields alive for quote-originated
// drafts. An update that explicitly carried one of these fields wins; an
// update that merely omitted them must not erase them.
func preserveProvenance(next *Draft, u DraftUpdate, mctx MergeContext) {
	if mctx.Quote == nil {
		return
	}
	if u.QuoteID == nil && next.QuoteID == 0 {
		next.QuoteID = mctx.Quote.ID
	}
	if u.IsFromQuote == nil && !next.IsFromQuote {
		next.IsFromQuote = true
	}
	if u.BookingSource == nil && next.BookingSource == "" {
		next.BookingSource = SourceQuote
	}
}

// propagateMirrors synchronizes the date/time pairs. When both members of a
// pair appear in one update the canonical field (date, time) wins.
func propagateMirrors(next *Draft, u DraftUpdate) {
	switch {
	case u.Date != nil:
		next.AppointmentDate = next.Date
	case u.AppointmentDate != nil:
		next.Date = next.AppointmentDate
	}
	switch {
	case u.Time != nil:
		next.AppointmentTime = next.Time
	case u.AppointmentTime != nil:
		next.Time = next.AppointmentTime
	}
}

func sanitizeNumbers(next *Draft) {
	next.BasePrice = finiteOrZero(next.BasePrice)
	next.DurationHours = finiteOrZero(next.DurationHours)
	next.TravelFee = finiteOrZero(next.TravelFee)
}

// dedupeAddOns keeps the first occurrence of each add-on ID. The set is
// unique by ID; insertion order is preserved but carries no meaning.
func dedupeAddOns(addOns []AddOn) []AddOn {
	seen := make(map[int64]struct{}, len(addOns))
	out := make([]AddOn, 0, len(addOns))
	for _, addOn := range addOns {
		if _, dup := seen[addOn.ID]; dup {
			continue
		}
		seen[addOn.ID] = struct{}{}
		out = append(out, addOn)
	}
	return out
}
