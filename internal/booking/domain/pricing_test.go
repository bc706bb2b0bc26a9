package domain

import (
	"math"
	"testing"
)

func TestComputeTotal_HourlyWithAddOnsAndTravelFee(t *testing.T) {
	addOns := []AddOn{{ID: 1, Name: "deep clean", Price: 500}}

	total := ComputeTotal(2000, 3, PricingHourly, addOns, 300)

	if total != 6800 {
		t.Fatalf("expected total 6800, got %v", total)
	}
}

func TestComputeTotal_FixedPricingIgnoresDuration(t *testing.T) {
	total := ComputeTotal(2000, 3, PricingFixed, nil, 0)

	if total != 2000 {
		t.Fatalf("expected fixed price 2000 regardless of duration, got %v", total)
	}
}

func TestComputeTotal_HourlyMissingDurationDefaultsToOne(t *testing.T) {
	total := ComputeTotal(1500, 0, PricingHourly, nil, 0)

	if total != 1500 {
		t.Fatalf("expected 1500 with defaulted 1h duration, got %v", total)
	}
}

func TestComputeTotal_MissingInputsTreatedAsZero(t *testing.T) {
	if got := ComputeTotal(0, 0, PricingHourly, nil, 0); got != 0 {
		t.Fatalf("expected 0 for all-zero inputs, got %v", got)
	}
	if got := ComputeTotal(math.NaN(), 2, PricingHourly, []AddOn{{ID: 1, Price: math.Inf(1)}}, math.NaN()); got != 0 {
		t.Fatalf("expected non-finite inputs to degrade to 0, got %v", got)
	}
}

func TestComputeTotal_IsPure(t *testing.T) {
	addOns := []AddOn{{ID: 1, Price: 300}, {ID: 2, Price: 200}}

	first := ComputeTotal(1000, 2, PricingHourly, addOns, 100)
	second := ComputeTotal(1000, 2, PricingHourly, addOns, 100)

	if first != second {
		t.Fatalf("expected identical results for identical inputs, got %v and %v", first, second)
	}
	if addOns[0].Price != 300 || addOns[1].Price != 200 {
		t.Fatalf("add-on inputs were mutated: %+v", addOns)
	}
}

func TestEstimateTravelFee(t *testing.T) {
	provider := Provider{ID: 9, TravelFeeRatePerKm: 60}

	cases := []struct {
		name     string
		location LocationType
		want     float64
	}{
		{"client address pays the flat-distance fee", LocationClientAddress, 300},
		{"custom location pays the flat-distance fee", LocationCustomLocation, 300},
		{"provider location is free", LocationProviderLocation, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateTravelFee(provider, tc.location); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestEstimateTravelFee_NoRateMeansNoFee(t *testing.T) {
	if got := EstimateTravelFee(Provider{ID: 1}, LocationClientAddress); got != 0 {
		t.Fatalf("expected 0 fee for provider without a rate, got %v", got)
	}
}
