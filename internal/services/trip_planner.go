package services

import (
	"fmt"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/clock"
)

// TripPlanner runs the stop planner, log builder and HOS checker over one
// resolved trip. It performs no I/O and keeps no per-request state, so a
// single instance can serve concurrent requests.
type TripPlanner struct {
	stops   *StopPlanner
	logs    *DutyLogBuilder
	checker *HOSChecker
}

func NewTripPlanner(rules domain.Rules, policy LegDurationPolicy, clk clock.Clock) *TripPlanner {
	return &TripPlanner{
		stops:   NewStopPlanner(rules),
		logs:    NewDutyLogBuilder(rules, policy),
		checker: NewHOSChecker(rules, clk),
	}
}

// Checker exposes the HOS checker for feasibility-only queries.
func (p *TripPlanner) Checker() *HOSChecker { return p.checker }

// Plan produces the full trip plan. Either the whole plan is returned or an
// error; validation problems come back as *domain.ValidationError.
func (p *TripPlanner) Plan(
	trip domain.TripParameters,
	route domain.RouteSummary,
	startAt time.Time,
) (*domain.TripPlan, error) {
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	stops, fuelStops, err := p.stops.PlanStops(route, trip, startAt)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	logs, err := p.logs.BuildLogs(route, SequenceStops(stops, fuelStops), startAt)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &domain.TripPlan{
		StartedAt:     startAt,
		Route:         route,
		Stops:         stops,
		FuelStops:     fuelStops,
		DailyLogs:     logs,
		LogViolations: p.logs.ValidateCompliance(logs),
		HOSStatus:     p.checker.Evaluate(trip, route, stops),
		WeeklyTotals:  p.checker.WeeklyTotals(logs),
		Feasibility:   p.checker.Feasibility(trip, route.DurationHours),
		RestPeriods:   p.checker.RequiredRestPeriods(route.DurationHours),
	}, nil
}
