package domain

import "math"

// Travel fee estimation is deliberately approximate: without a geocoding
// backend the distance is assumed flat. See assumedTravelDistanceKm.
const assumedTravelDistanceKm = 5.0

// ComputeTotal calculates the draft total from its pricing inputs.
//
// The formula is basePrice × durationHours + Σ addOn.price + travelFee,
// where the duration multiplier only applies to hourly-priced services
// (fixed and custom pricing use a multiplier of 1). An hourly service with
// no duration yet defaults to 1 hour. The function is pure and never fails:
// non-finite inputs degrade to 0.
func ComputeTotal(basePrice, durationHours float64, pricingType PricingType, addOns []AddOn, travelFee float64) float64 {
	base := finiteOrZero(basePrice)
	fee := finiteOrZero(travelFee)

	multiplier := 1.0
	if pricingType == PricingHourly {
		multiplier = finiteOrZero(durationHours)
		if multiplier <= 0 {
			multiplier = 1
		}
	}

	total := base*multiplier + fee
	for _, addOn := range addOns {
		total += finiteOrZero(addOn.Price)
	}
	return total
}

// EstimateTravelFee returns the provider's travel fee for the given location
// choice. Bookings at the provider's own location carry no fee; everything
// else uses the provider's per-km rate over an assumed flat distance.
func EstimateTravelFee(provider Provider, locationType LocationType) float64 {
	if locationType == LocationProviderLocation {
		return 0
	}
	if provider.TravelFeeRatePerKm <= 0 {
		return 0
	}
	return finiteOrZero(provider.TravelFeeRatePerKm) * assumedTravelDistanceKm
}

// finiteOrZero replaces NaN and ±Inf with 0 so price math always yields a
// usable number.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
