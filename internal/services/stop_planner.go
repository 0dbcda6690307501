package services

import (
	"fmt"
	"math"
	"time"
	"trip-planner-service/internal/domain"
)

// Distances closer than this are treated as equal when walking the route.
const mileEpsilon = 1e-9

// StopPlanner places the mandatory stops of a trip along its route.
type StopPlanner struct {
	rules domain.Rules
}

func NewStopPlanner(rules domain.Rules) *StopPlanner {
	return &StopPlanner{rules: rules}
}

// PlanStops returns the pickup, rest and dropoff stops in visiting order, and
// the fuel stops separately.
//
// The route is consumed in segments of one full day of driving (average speed x
// daily drive limit). Every segment that does not finish the trip is followed by
// a mandatory rest stop; the final segment is not. Fuel stops sit at every fuel
// interval strictly before the end of the route. Stop positions use linear index
// interpolation over the route path, not true along-path distance.
func (p *StopPlanner) PlanStops(
	route domain.RouteSummary,
	trip domain.TripParameters,
	startAt time.Time,
) ([]domain.Stop, []domain.Stop, error) {
	if len(route.Path) == 0 {
		return nil, nil, fmt.Errorf("plan stops: route path is empty: %w", domain.ErrPlanningFailed)
	}
	if err := route.Validate(); err != nil {
		return nil, nil, fmt.Errorf("plan stops: %w", err)
	}

	r := p.rules
	stops := make([]domain.Stop, 0, 4)

	pickupAt := route.Path[0]
	if len(route.Path) > 1 {
		pickupAt = route.Path[1]
	}
	stops = append(stops, domain.Stop{
		Kind:          domain.StopPickup,
		Position:      pickupAt,
		Label:         labelOr(trip.PickupLabel(), "Pickup Location"),
		ScheduledAt:   startAt,
		DurationHours: r.PickupDurationHours,
		Description:   "Pickup cargo",
	})

	current := startAt.Add(hoursToDuration(r.PickupDurationHours))
	maxDrive := r.MaxDriveDistanceMiles()
	traveled := 0.0
	remaining := route.DistanceMiles

	for remaining > mileEpsilon {
		segment := math.Min(maxDrive, remaining)
		driveHours := segment / r.AverageSpeedMPH

		traveled += segment
		current = current.Add(hoursToDuration(driveHours))

		if route.DistanceMiles-traveled > mileEpsilon {
			stops = append(stops, domain.Stop{
				Kind:          domain.StopRest,
				Position:      domain.InterpolatePosition(route.Path, traveled, route.DistanceMiles),
				Label:         "Rest Area",
				ScheduledAt:   current,
				DurationHours: r.MandatoryRestHours,
				Description: fmt.Sprintf(
					"Mandatory %g-hour rest period after %s of driving",
					r.MandatoryRestHours, domain.FormatDuration(driveHours),
				),
			})
			current = current.Add(hoursToDuration(r.MandatoryRestHours))
		}

		remaining -= segment
	}

	stops = append(stops, domain.Stop{
		Kind:          domain.StopDropoff,
		Position:      route.Path[len(route.Path)-1],
		Label:         labelOr(trip.DropoffLabel(), "Dropoff Location"),
		ScheduledAt:   current,
		DurationHours: r.DropoffDurationHours,
		Description:   "Deliver cargo",
	})

	return stops, p.planFuelStops(route, startAt), nil
}

func (p *StopPlanner) planFuelStops(route domain.RouteSummary, startAt time.Time) []domain.Stop {
	markers := domain.FuelMileMarkers(route.DistanceMiles, p.rules.FuelStopIntervalMiles)

	fuel := make([]domain.Stop, 0, len(markers))
	for _, mile := range markers {
		fuel = append(fuel, domain.Stop{
			Kind:     domain.StopFuel,
			Position: domain.InterpolatePosition(route.Path, mile, route.DistanceMiles),
			Label:    "Fuel Stop",
			// Advisory only; the duty log timeline places fuel stops in time.
			ScheduledAt:   startAt,
			DurationHours: p.rules.FuelStopDurationHours,
			Description:   fmt.Sprintf("Fuel stop at mile %.0f", mile),
		})
	}
	return fuel
}

// SequenceStops merges planner output into the order the log builder walks:
// pickup, then every fuel stop, then every rest stop, then dropoff.
//
// This is grouping by kind, not chronological order: fuel stops are spread
// along the route but are visited as one block ahead of the rest stops.
func SequenceStops(stops, fuelStops []domain.Stop) []domain.Stop {
	out := make([]domain.Stop, 0, len(stops)+len(fuelStops))

	out = appendKind(out, stops, domain.StopPickup)
	out = append(out, fuelStops...)
	out = appendKind(out, stops, domain.StopRest)
	out = appendKind(out, stops, domain.StopDropoff)

	return out
}

func appendKind(dst, src []domain.Stop, kind domain.StopKind) []domain.Stop {
	for _, s := range src {
		if s.Kind == kind {
			dst = append(dst, s)
		}
	}
	return dst
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

// hoursToDuration converts fractional hours to a time.Duration rounded to the nanosecond.
func hoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours * float64(time.Hour)))
}
