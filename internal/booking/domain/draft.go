// Package domain provides core business rules for the booking bounded context:
// the draft aggregate, price computation, the merge operation and the wizard
// step progression.
package domain

import "github.com/google/uuid"

// PricingType describes how a service's base price is applied.
type PricingType string

const (
	PricingFixed  PricingType = "fixed"
	PricingHourly PricingType = "hourly"
	PricingCustom PricingType = "custom"
)

// LocationType describes where the service takes place.
type LocationType string

const (
	LocationClientAddress    LocationType = "client_address"
	LocationProviderLocation LocationType = "provider_location"
	LocationCustomLocation   LocationType = "custom_location"
)

// ContactPreference is how the client wants to be reached.
type ContactPreference string

const (
	ContactByPhone   ContactPreference = "phone"
	ContactByMessage ContactPreference = "message"
)

// Booking source labels. SourceQuote marks drafts that originated from an
// accepted price quote rather than a fresh booking.
const (
	SourceDirect = "direct"
	SourceQuote  = "quote"
)

// Draft status labels. These are workflow annotations, not transition state.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// AddOn is an optional extra selected on top of the base service.
type AddOn struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service is the read-only catalog entry a draft is seeded from.
type Service struct {
	ID                   int64       `json:"id"`
	Title                string      `json:"title"`
	BasePrice            float64     `json:"basePrice"`
	PricingType          PricingType `json:"pricingType"`
	DefaultDurationHours float64     `json:"defaultDurationHours"`
	AddOns               []AddOn     `json:"addOns,omitempty"`
}

// Provider is the read-only provider profile a draft is seeded from.
type Provider struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	TravelFeeRatePerKm float64 `json:"travelFeeRatePerKm"`
	AverageRating      float64 `json:"averageRating"`
	ResponseTimeLabel  string  `json:"responseTimeLabel"`
}

// Quote is a previously issued price quote a draft may originate from.
type Quote struct {
	ID                     int64   `json:"id"`
	ProviderID             int64   `json:"providerId"`
	ServiceID              int64   `json:"serviceId"`
	QuotedPrice            float64 `json:"quotedPrice"`
	EstimatedDurationHours float64 `json:"estimatedDurationHours"`
	RequestedDate          string  `json:"requestedDate"`
	RequestedTime          string  `json:"requestedTime"`
	Status                 string  `json:"status"`
}

// Draft is the in-progress booking aggregate. It is owned exclusively by one
// wizard session and mutated only through Merge, which returns a new value.
//
// Date/Time are duplicated into the legacy-named AppointmentDate and
// AppointmentTime mirrors; Merge keeps each pair synchronized.
type Draft struct {
	ID uuid.UUID `json:"id"`

	// Identity. Never empty after seeding, regardless of what updates carry.
	ServiceID  int64 `json:"serviceId"`
	ProviderID int64 `json:"providerId"`

	// Quote provenance. Populated only for drafts seeded from a quote.
	QuoteID       int64  `json:"quoteId,omitempty"`
	IsFromQuote   bool   `json:"isFromQuote"`
	BookingSource string `json:"bookingSource"`

	// Scheduling.
	Date            string `json:"date"`
	Time            string `json:"time"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`

	// Pricing inputs. AddOns are unique by ID.
	BasePrice     float64     `json:"basePrice"`
	PricingType   PricingType `json:"pricingType"`
	DurationHours float64     `json:"durationHours"`
	AddOns        []AddOn     `json:"addOns"`
	TravelFee     float64     `json:"travelFee"`

	// TotalPrice is derived; it is recomputed by Merge and never accepted
	// from client input.
	TotalPrice float64 `json:"totalPrice"`

	// Location.
	LocationType LocationType `json:"locationType"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	PostalCode   string       `json:"postalCode"`
	Instructions string       `json:"instructions"`

	// Contact.
	Phone             string            `json:"phone"`
	Email             string            `json:"email"`
	ContactPreference ContactPreference `json:"contactPreference"`

	// Meta.
	SpecialInstructions string `json:"specialInstructions"`
	PaymentMethod       string `json:"paymentMethod"`
	AgreedToTerms       bool   `json:"agreedToTerms"`
	Status              string `json:"status"`
	Timezone            string `json:"timezone"`
}

// EffectiveDate returns the scheduled date, falling back to the legacy mirror.
func (d Draft) EffectiveDate() string {
	if d.Date != "" {
		return d.Date
	}
	return d.AppointmentDate
}

// EffectiveTime returns the scheduled time, falling back to the legacy mirror.
func (d Draft) EffectiveTime() string {
	if d.Time != "" {
		return d.Time
	}
	return d.AppointmentTime
}

// HasContact reports whether at least one way to reach the client is present.
func (d Draft) HasContact() bool {
	return d.Phone != "" || d.Email != ""
}

// Clone returns a deep copy of the draft so merges never alias the add-on
// slice of the input value.
func (d Draft) Clone() Draft {
	out := d
	if d.AddOns != nil {
		out.AddOns = append([]AddOn(nil), d.AddOns...)
	}
	return out
}
