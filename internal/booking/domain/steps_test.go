package domain

import "testing"

func completeThroughDetails() Draft {
	return Draft{
		ServiceID:     12,
		ProviderID:    34,
		DurationHours: 2,
		Date:          "2026-09-14",
		Time:          "10:00",
		LocationType:  LocationClientAddress,
		Address:       "Keizersgracht 1",
		Phone:         "+31612345678",
	}
}

func TestAdvance_BlockedByIncompleteStep(t *testing.T) {
	d := Draft{ServiceID: 12} // provider and duration missing

	if CanEnter(StepService, d) {
		t.Fatal("service step should be incomplete")
	}
	if CanJumpTo(StepDateTime, StepService, d) {
		t.Fatal("forward navigation should be blocked")
	}
}

func TestAdvance_AllowedOnceStepComplete(t *testing.T) {
	d := Draft{ServiceID: 12, ProviderID: 34, DurationHours: 2}

	if !CanEnter(StepService, d) {
		t.Fatal("service step should be complete")
	}
	if got := Advance(StepService); got != StepDateTime {
		t.Fatalf("expected advance to datetime, got %v", got)
	}
}

func TestRetreat_AlwaysAllowedAndClamped(t *testing.T) {
	if got := Retreat(StepDetails); got != StepDateTime {
		t.Fatalf("expected retreat to datetime, got %v", got)
	}
	if got := Retreat(StepService); got != StepService {
		t.Fatalf("expected clamp at first step, got %v", got)
	}
}

func TestAdvance_ClampedAtConfirmation(t *testing.T) {
	if got := Advance(StepConfirmation); got != StepConfirmation {
		t.Fatalf("expected clamp at confirmation, got %v", got)
	}
}

func TestCanJumpTo_BackwardAlwaysAllowed(t *testing.T) {
	if !CanJumpTo(StepService, StepDetails, Draft{}) {
		t.Fatal("backward jump should never be gated")
	}
}

func TestCanJumpTo_ForwardRequiresPrecedingStepComplete(t *testing.T) {
	d := completeThroughDetails()

	if !CanJumpTo(StepDetails, StepDateTime, d) {
		t.Fatal("jump to details should be allowed once date/time set")
	}
	if CanJumpTo(StepConfirmation, StepDateTime, Draft{ServiceID: 12, ProviderID: 34, DurationHours: 2}) {
		t.Fatal("jump to confirmation should be blocked without details")
	}
}

func TestCanEnter_DateTimeSatisfiedByMirrorsAlone(t *testing.T) {
	// Clients that only write the appointment* pair still pass the gate;
	// the effective accessors look at both members.
	d := Draft{AppointmentDate: "2026-09-14", AppointmentTime: "10:00"}
	if !CanEnter(StepDateTime, d) {
		t.Fatal("mirror fields alone should satisfy the date/time step")
	}
	if CanEnter(StepDateTime, Draft{AppointmentDate: "2026-09-14"}) {
		t.Fatal("date without time should fail the date/time step")
	}
}

func TestCanEnter_DetailsRequiresAddressOnlyForOnSiteWork(t *testing.T) {
	base := Draft{Phone: "+31612345678"}

	atProvider := base
	atProvider.LocationType = LocationProviderLocation
	if !CanEnter(StepDetails, atProvider) {
		t.Fatal("provider-location booking should not require an address")
	}

	atClient := base
	atClient.LocationType = LocationClientAddress
	if CanEnter(StepDetails, atClient) {
		t.Fatal("client-address booking should require an address")
	}
}

func TestCanEnter_DetailsAcceptsEitherContactChannel(t *testing.T) {
	d := Draft{LocationType: LocationProviderLocation, Email: "k.devries@example.nl"}
	if !CanEnter(StepDetails, d) {
		t.Fatal("email alone should satisfy the contact requirement")
	}
	if CanEnter(StepDetails, Draft{LocationType: LocationProviderLocation}) {
		t.Fatal("no contact channel should fail the details step")
	}
}

func TestStepAfterExternalSlot(t *testing.T) {
	cases := []struct {
		current Step
		want    Step
	}{
		{StepService, StepDetails},
		{StepDateTime, StepDetails},
		{StepDetails, StepDetails},
		{StepConfirmation, StepConfirmation},
	}

	for _, tc := range cases {
		if got := StepAfterExternalSlot(tc.current); got != tc.want {
			t.Fatalf("from %v: expected %v, got %v", tc.current, tc.want, got)
		}
	}
}

func TestMissingForStep(t *testing.T) {
	missing := MissingForStep(StepService, Draft{ServiceID: 12})
	if len(missing) != 2 {
		t.Fatalf("expected providerId and durationHours missing, got %v", missing)
	}

	missing = MissingForStep(StepConfirmation, Draft{})
	if len(missing) != 1 || missing[0] != "agreedToTerms" {
		t.Fatalf("expected agreedToTerms missing, got %v", missing)
	}

	if missing := MissingForStep(StepDateTime, completeThroughDetails()); len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}
