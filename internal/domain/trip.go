package domain

import (
	"math"
	"strings"
)

// Maximum hours a driver may accumulate in a cycle; also the upper bound for cycle_used input.
const MaxCycleHours = 70

// Describes one trip to plan: where the driver is, where the load is picked up
// and delivered, and how many cycle hours are already used.
// Build it with NewTripParameters; the zero value is not valid.
type TripParameters struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsedHours  float64

	// Names reported by the geocoder; empty until the locations are resolved.
	PickupDisplayName  string
	DropoffDisplayName string
}

func NewTripParameters(current, pickup, dropoff string, cycleUsedHours float64) (TripParameters, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"current_location", current},
		{"pickup_location", pickup},
		{"dropoff_location", dropoff},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return TripParameters{}, NewValidationError(f.name, "is required")
		}
	}

	if math.IsNaN(cycleUsedHours) || cycleUsedHours < 0 || cycleUsedHours > MaxCycleHours {
		return TripParameters{}, NewValidationError(
			"cycle_used",
			"must be between 0 and %d hours",
			MaxCycleHours,
		)
	}

	return TripParameters{
		CurrentLocation: strings.TrimSpace(current),
		PickupLocation:  strings.TrimSpace(pickup),
		DropoffLocation: strings.TrimSpace(dropoff),
		CycleUsedHours:  cycleUsedHours,
	}, nil
}

// PickupLabel prefers the geocoded name over the address as entered.
func (t TripParameters) PickupLabel() string {
	return firstNonBlank(t.PickupDisplayName, t.PickupLocation)
}

func (t TripParameters) DropoffLabel() string {
	return firstNonBlank(t.DropoffDisplayName, t.DropoffLocation)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
