package services

import "trip-planner-service/internal/domain"

// Leg is the drive into To, coming from From. From is nil for the opening leg
// from the driver's current location to the first stop.
type Leg struct {
	Index int
	From  *domain.Stop
	To    domain.Stop
}

// LegDurationPolicy estimates the driving hours of one leg when only the
// route's total duration is known. Swap it out once per-segment timings exist.
type LegDurationPolicy interface {
	LegDurationHours(route domain.RouteSummary, leg Leg) float64
}

// LegDurationFunc adapts a plain function to LegDurationPolicy.
type LegDurationFunc func(route domain.RouteSummary, leg Leg) float64

func (f LegDurationFunc) LegDurationHours(route domain.RouteSummary, leg Leg) float64 {
	return f(route, leg)
}

// WeightedLegPolicy splits the route duration into ApproxLegCount equal shares
// and weights each leg by the kinds of stop around it.
type WeightedLegPolicy struct {
	ApproxLegCount float64
	AfterPickup    float64
	BeforeDropoff  float64
	Default        float64
}

// DefaultLegPolicy weights legs 0.2 after pickup, 0.3 before dropoff and 0.5
// otherwise, over an assumed five legs.
func DefaultLegPolicy() WeightedLegPolicy {
	return WeightedLegPolicy{
		ApproxLegCount: 5,
		AfterPickup:    0.2,
		BeforeDropoff:  0.3,
		Default:        0.5,
	}
}

func (p WeightedLegPolicy) LegDurationHours(route domain.RouteSummary, leg Leg) float64 {
	if leg.From == nil || p.ApproxLegCount <= 0 {
		return 0
	}

	share := route.DurationHours / p.ApproxLegCount
	switch {
	case leg.From.Kind == domain.StopPickup:
		return share * p.AfterPickup
	case leg.To.Kind == domain.StopDropoff:
		return share * p.BeforeDropoff
	default:
		return share * p.Default
	}
}
