package domain

// Step identifies a wizard step. The flow is linear:
// Service(1) → DateTime(2) → Details(3) → Confirmation(4).
type Step int

const (
	StepService      Step = 1
	StepDateTime     Step = 2
	StepDetails      Step = 3
	StepConfirmation Step = 4
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "datetime"
	case StepDetails:
		return "details"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= StepService && s <= StepConfirmation
}

// Advance moves one step forward, clamped to Confirmation.
func Advance(current Step) Step {
	if current >= StepConfirmation {
		return StepConfirmation
	}
	return current + 1
}

// Retreat moves one step back, clamped to Service. Backward navigation is
// always free.
func Retreat(current Step) Step {
	if current <= StepService {
		return StepService
	}
	return current - 1
}

// CanEnter is the per-step completion predicate over the draft. It reports
// whether the given step's required fields are filled in.
func CanEnter(step Step, d Draft) bool {
	switch step {
	case StepService:
		return d.ServiceID != 0 && d.ProviderID != 0 && d.DurationHours > 0
	case StepDateTime:
		return d.EffectiveDate() != "" && d.EffectiveTime() != ""
	case StepDetails:
		if d.LocationType == LocationClientAddress || d.LocationType == LocationCustomLocation {
			return d.Address != "" && d.HasContact()
		}
		return d.HasContact()
	case StepConfirmation:
		return d.AgreedToTerms
	default:
		return false
	}
}

// CanJumpTo reports whether direct navigation to step is permitted: backward
// jumps are always allowed, a forward jump only once the immediately
// preceding step is complete. This lets the user click ahead to the next
// reachable step without skipping incomplete ones.
func CanJumpTo(step, current Step, d Draft) bool {
	if step <= current {
		return true
	}
	return CanEnter(step-1, d)
}

// StepAfterExternalSlot resolves the automatic transition taken when a time
// slot arrives from outside the wizard (e.g. picked on a provider profile).
// While the user is still on the service or date/time step, the wizard jumps
// straight to details; later steps are left alone. This is the only
// non-user-initiated transition in the machine.
func StepAfterExternalSlot(current Step) Step {
	if current == StepService || current == StepDateTime {
		return StepDetails
	}
	return current
}

// MissingForStep lists the unmet requirements blocking entry to a step.
// Used to build inline validation details for the client.
func MissingForStep(step Step, d Draft) []string {
	var missing []string
	switch step {
	case StepService:
		if d.ServiceID == 0 {
			missing = append(missing, "serviceId")
		}
		if d.ProviderID == 0 {
			missing = append(missing, "providerId")
		}
		if d.DurationHours <= 0 {
			missing = append(missing, "durationHours")
		}
	case StepDateTime:
		if d.EffectiveDate() == "" {
			missing = append(missing, "date")
		}
		if d.EffectiveTime() == "" {
			missing = append(missing, "time")
		}
	case StepDetails:
		if (d.LocationType == LocationClientAddress || d.LocationType == LocationCustomLocation) && d.Address == "" {
			missing = append(missing, "address")
		}
		if !d.HasContact() {
			missing = append(missing, "phone or email")
		}
	case StepConfirmation:
		if !d.AgreedToTerms {
			missing = append(missing, "agreedToTerms")
		}
	}
	return missing
}
