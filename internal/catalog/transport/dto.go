// Package transport defines response DTOs for the catalog.
package transport

// AddOnResponse is one optional extra on a service.
type AddOnResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ServiceResponse is one catalog service.
type ServiceResponse struct {
	ID                   int64           `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	BasePrice            float64         `json:"basePrice"`
	PricingType          string          `json:"pricingType"`
	DefaultDurationHours float64         `json:"defaultDurationHours"`
	AddOns               []AddOnResponse `json:"addOns,omitempty"`
}

// ProviderResponse is one provider profile.
type ProviderResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	TravelFeeRatePerKm float64 `json:"travelFeeRatePerKm"`
	AverageRating      float64 `json:"averageRating"`
	ResponseTimeLabel  string  `json:"responseTimeLabel"`
}
