package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/clock"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// TripRequest is the unvalidated input of a planning request.
type TripRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsedHours  float64
	StartAt         *time.Time
}

// FeasibilityReport answers whether a trip fits the driver's remaining hours
// without building the full plan.
type FeasibilityReport struct {
	Trip        domain.TripParameters
	Route       domain.RouteSummary
	Feasibility domain.Feasibility
	Available   domain.DriveTimeBudget
	RestPeriods []domain.RestPeriod
}

// TripService resolves a trip request through the geocoding and routing ports
// and hands the resolved trip to the TripPlanner.
type TripService struct {
	resolver  ports.LocationResolver
	routes    ports.RouteProvider
	planner   *TripPlanner
	publisher ports.TripEventPublisher
	metrics   *obs.Metrics
	clock     clock.Clock
	location  *time.Location
}

type TripServiceOption func(*TripService)

// WithPublisher announces every successful plan. Publish failures are only logged.
func WithPublisher(p ports.TripEventPublisher) TripServiceOption {
	return func(s *TripService) { s.publisher = p }
}

func WithMetrics(m *obs.Metrics) TripServiceOption {
	return func(s *TripService) { s.metrics = m }
}

func WithClock(c clock.Clock) TripServiceOption {
	return func(s *TripService) { s.clock = c }
}

// WithLocation sets the time zone whose midnights split the daily logs.
func WithLocation(loc *time.Location) TripServiceOption {
	return func(s *TripService) { s.location = loc }
}

func NewTripService(
	resolver ports.LocationResolver,
	routes ports.RouteProvider,
	planner *TripPlanner,
	opts ...TripServiceOption,
) *TripService {
	s := &TripService{
		resolver: resolver,
		routes:   routes,
		planner:  planner,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlanTrip validates the request, resolves locations and route, and returns the
// complete plan. No partial plan is ever returned.
func (s *TripService) PlanTrip(ctx context.Context, req TripRequest) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "trip.PlanTrip")(&err)
	started := time.Now()

	trip, plan, err := s.planTrip(ctx, req)
	if err != nil {
		s.metrics.ObservePlan(Outcome(err), time.Since(started), 0, 0)
		return nil, err
	}

	s.metrics.ObservePlan(Outcome(nil), time.Since(started), len(plan.HOSStatus.Violations), len(plan.DailyLogs))
	s.publish(ctx, trip, plan)

	return plan, nil
}

func (s *TripService) planTrip(ctx context.Context, req TripRequest) (domain.TripParameters, *domain.TripPlan, error) {
	trip, err := domain.NewTripParameters(req.CurrentLocation, req.PickupLocation, req.DropoffLocation, req.CycleUsedHours)
	if err != nil {
		return domain.TripParameters{}, nil, fmt.Errorf("plan trip: %w", err)
	}

	trip, route, err := s.resolveRoute(ctx, trip)
	if err != nil {
		return domain.TripParameters{}, nil, fmt.Errorf("plan trip: %w", err)
	}

	plan, err := s.planner.Plan(trip, route, s.startTime(req))
	if err != nil {
		return domain.TripParameters{}, nil, err
	}

	return trip, plan, nil
}

// CheckFeasibility resolves the route and reports whether the trip fits today's
// available drive time, plus the rest periods a multi-day trip needs.
func (s *TripService) CheckFeasibility(ctx context.Context, req TripRequest) (_ *FeasibilityReport, err error) {
	defer obs.Time(ctx, "trip.CheckFeasibility")(&err)

	trip, err := domain.NewTripParameters(req.CurrentLocation, req.PickupLocation, req.DropoffLocation, req.CycleUsedHours)
	if err != nil {
		return nil, fmt.Errorf("check feasibility: %w", err)
	}

	trip, route, err := s.resolveRoute(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("check feasibility: %w", err)
	}

	checker := s.planner.Checker()
	return &FeasibilityReport{
		Trip:        trip,
		Route:       route,
		Feasibility: checker.Feasibility(trip, route.DurationHours),
		Available:   checker.AvailableDriveTime(trip),
		RestPeriods: checker.RequiredRestPeriods(route.DurationHours),
	}, nil
}

// resolveRoute geocodes current, pickup and dropoff in that order and routes
// through them. The returned trip carries the geocoded pickup and dropoff names.
// Upstream failures are normalized to *domain.LocationError or
// domain.ErrRouteComputation.
func (s *TripService) resolveRoute(
	ctx context.Context,
	trip domain.TripParameters,
) (domain.TripParameters, domain.RouteSummary, error) {
	addresses := []string{trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation}

	waypoints := make([]domain.Coordinates, 0, len(addresses))
	names := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		loc, err := s.resolver.Resolve(ctx, addr)
		if err != nil {
			var le *domain.LocationError
			if !errors.As(err, &le) {
				err = &domain.LocationError{Address: addr, Err: err}
			}
			return trip, domain.RouteSummary{}, fmt.Errorf("resolve locations: %w", err)
		}
		if !loc.Coordinates.Valid() {
			return trip, domain.RouteSummary{}, fmt.Errorf("resolve locations: %w", &domain.LocationError{
				Address: addr,
				Err:     fmt.Errorf("coordinates out of range: %+v", loc.Coordinates),
			})
		}
		waypoints = append(waypoints, loc.Coordinates)
		names = append(names, loc.DisplayName)
	}

	route, err := s.routes.GetRoute(ctx, waypoints)
	if err != nil {
		if !errors.Is(err, domain.ErrRouteComputation) {
			err = fmt.Errorf("%w: %w", domain.ErrRouteComputation, err)
		}
		return trip, domain.RouteSummary{}, fmt.Errorf("get route: %w", err)
	}
	// A malformed provider route is an upstream failure, not a *ValidationError.
	if err := route.Validate(); err != nil {
		return trip, domain.RouteSummary{}, fmt.Errorf("get route: %w: invalid route: %v", domain.ErrRouteComputation, err)
	}

	trip.PickupDisplayName = names[1]
	trip.DropoffDisplayName = names[2]
	return trip, route, nil
}

func (s *TripService) startTime(req TripRequest) time.Time {
	start := s.clock.Now()
	if req.StartAt != nil {
		start = *req.StartAt
	}
	if s.location != nil {
		start = start.In(s.location)
	}
	return start
}

func (s *TripService) publish(ctx context.Context, trip domain.TripParameters, plan *domain.TripPlan) {
	if s.publisher == nil {
		return
	}

	rests := 0
	for _, st := range plan.Stops {
		if st.Kind == domain.StopRest {
			rests++
		}
	}

	ev := ports.TripPlannedEvent{
		RequestID:       obs.RequestID(ctx),
		PlannedAt:       s.clock.Now(),
		CurrentLocation: trip.CurrentLocation,
		PickupLocation:  trip.PickupLocation,
		DropoffLocation: trip.DropoffLocation,
		DistanceMiles:   plan.Route.DistanceMiles,
		DurationHours:   plan.Route.DurationHours,
		RestStops:       rests,
		FuelStops:       len(plan.FuelStops),
		LogDays:         len(plan.DailyLogs),
		Violations:      plan.HOSStatus.Violations,
	}

	err := s.publisher.PublishTripPlanned(ctx, ev)
	s.metrics.ObserveEvent(err)
	if err != nil {
		log.Printf("req_id=%s publish trip planned failed: %v", ev.RequestID, err)
	}
}

// Outcome classifies a planning error for metrics and HTTP status mapping.
func Outcome(err error) string {
	var ve *domain.ValidationError
	var le *domain.LocationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &le), errors.Is(err, domain.ErrRouteComputation):
		return "upstream"
	default:
		return "failed"
	}
}
