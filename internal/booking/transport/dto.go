// Package transport defines request/response DTOs for the booking wizard.
package transport

import (
	"bytes"
	"encoding/json"
	"strconv"

	"booking_portal_backend/internal/booking/domain"
)

// FlexFloat decodes a JSON number, a numeric string, or null. Anything
// unparsable degrades to 0 instead of failing the request: the wizard's
// clients have historically sent prices and durations as strings, and a
// partial update must not bounce over one sloppy field.
type FlexFloat float64

// UnmarshalJSON implements lenient numeric decoding. It never errors.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// AddOnPayload is one add-on in a draft update.
type AddOnPayload struct {
	ID    int64     `json:"id" validate:"required,gt=0"`
	Name  string    `json:"name"`
	Price FlexFloat `json:"price"`
}

// StartDraftRequest opens a wizard session.
type StartDraftRequest struct {
	ServiceID  int64  `json:"serviceId" validate:"required,gt=0"`
	ProviderID int64  `json:"providerId" validate:"required,gt=0"`
	QuoteID    *int64 `json:"quoteId" validate:"omitempty,gt=0"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time       string `json:"time" validate:"omitempty,datetime=15:04"`
}

// UpdateDraftRequest is a partial draft update. Absent fields are left
// untouched; present fields overwrite, including explicit zero values.
// Unknown keys are dropped by the JSON decoder.
type UpdateDraftRequest struct {
	ServiceID  *int64 `json:"serviceId"`
	ProviderID *int64 `json:"providerId"`

	QuoteID       *int64  `json:"quoteId"`
	IsFromQuote   *bool   `json:"isFromQuote"`
	BookingSource *string `json:"bookingSource" validate:"omitempty,oneof=direct quote"`

	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time" validate:"omitempty,datetime=15:04"`
	AppointmentDate *string `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string `json:"appointmentTime" validate:"omitempty,datetime=15:04"`

	BasePrice     *FlexFloat      `json:"basePrice"`
	DurationHours *FlexFloat      `json:"durationHours"`
	AddOns        *[]AddOnPayload `json:"addOns" validate:"omitempty,dive"`
	TravelFee     *FlexFloat      `json:"travelFee"`

	LocationType *string `json:"locationType" validate:"omitempty,oneof=client_address provider_location custom_location"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postalCode"`
	Instructions *string `json:"instructions"`

	Phone             *string `json:"phone"`
	Email             *string `json:"email" validate:"omitempty,email"`
	ContactPreference *string `json:"contactPreference" validate:"omitempty,oneof=phone message"`

	SpecialInstructions *string `json:"specialInstructions"`
	PaymentMethod       *string `json:"paymentMethod"`
	AgreedToTerms       *bool   `json:"agreedToTerms"`
	Timezone            *string `json:"timezone"`
}

// ToDomain maps the request onto the domain update.
func (r UpdateDraftRequest) ToDomain() domain.DraftUpdate {
	update := domain.DraftUpdate{
		ServiceID:           r.ServiceID,
		ProviderID:          r.ProviderID,
		QuoteID:             r.QuoteID,
		IsFromQuote:         r.IsFromQuote,
		BookingSource:       r.BookingSource,
		Date:                r.Date,
		Time:                r.Time,
		AppointmentDate:     r.AppointmentDate,
		AppointmentTime:     r.AppointmentTime,
		BasePrice:           toFloat(r.BasePrice),
		DurationHours:       toFloat(r.DurationHours),
		TravelFee:           toFloat(r.TravelFee),
		Address:             r.Address,
		City:                r.City,
		PostalCode:          r.PostalCode,
		Instructions:        r.Instructions,
		Phone:               r.Phone,
		Email:               r.Email,
		SpecialInstructions: r.SpecialInstructions,
		PaymentMethod:       r.PaymentMethod,
		AgreedToTerms:       r.AgreedToTerms,
		Timezone:            r.Timezone,
	}

	if r.LocationType != nil {
		lt := domain.LocationType(*r.LocationType)
		update.LocationType = &lt
	}
	if r.ContactPreference != nil {
		cp := domain.ContactPreference(*r.ContactPreference)
		update.ContactPreference = &cp
	}
	if r.AddOns != nil {
		addOns := make([]domain.AddOn, 0, len(*r.AddOns))
		for _, a := range *r.AddOns {
			addOns = append(addOns, domain.AddOn{ID: a.ID, Name: a.Name, Price: float64(a.Price)})
		}
		update.AddOns = &addOns
	}

	return update
}

func toFloat(f *FlexFloat) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// SelectSlotRequest applies an externally chosen time slot.
type SelectSlotRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// JumpRequest navigates directly to a wizard step.
type JumpRequest struct {
	Step int `json:"step" validate:"required,min=1,max=4"`
}

// SubmitRequest finalizes the draft. AttemptID is generated client-side and
// reused verbatim on retries.
type SubmitRequest struct {
	AttemptID string `json:"attemptId" validate:"required,uuid"`
}

// SessionResponse is the wizard state returned from every draft operation.
type SessionResponse struct {
	Draft    domain.Draft    `json:"draft"`
	Step     int             `json:"step"`
	StepName string          `json:"stepName"`
	Service  domain.Service  `json:"service"`
	Provider domain.Provider `json:"provider"`
	Quote    *domain.Quote   `json:"quote,omitempty"`
}

// Compile-time check that FlexFloat customizes JSON decoding.
var _ json.Unmarshaler = (*FlexFloat)(nil)
