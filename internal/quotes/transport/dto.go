// Package transport defines request/response DTOs for quote acceptance.
package transport

// AcceptQuoteRequest is the quote acceptance payload. AttemptID is generated
// client-side and reused verbatim on retries.
type AcceptQuoteRequest struct {
	AttemptID         string  `json:"attemptId" validate:"required,uuid"`
	Notes             string  `json:"notes" validate:"max=2000"`
	CreateAppointment bool    `json:"createAppointment"`
	AppointmentDate   string  `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime   string  `json:"appointmentTime" validate:"omitempty,datetime=15:04"`
	DurationHours     float64 `json:"durationHours" validate:"omitempty,gt=0"`
}

// AcceptanceResult is returned from a successful acceptance.
type AcceptanceResult struct {
	QuoteID            int64  `json:"quoteId"`
	Status             string `json:"status"`
	AppointmentCreated bool   `json:"appointmentCreated"`
	AppointmentDate    string `json:"appointmentDate,omitempty"`
	AppointmentTime    string `json:"appointmentTime,omitempty"`
	// OriginalTimeStillAvailable hints that the slot originally requested on
	// the quote is still open on the chosen day. Informational only.
	OriginalTimeStillAvailable bool `json:"originalTimeStillAvailable"`
}
