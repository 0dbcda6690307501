package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"trip-planner-service/internal/adapters/mock"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/clock"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.TripPlannedEvent
	err    error
}

func (p *recordingPublisher) PublishTripPlanned(ctx context.Context, ev ports.TripPlannedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

var testPoints = map[string]domain.Coordinates{
	"Los Angeles, CA": {Lon: -118.2437, Lat: 34.0522},
	"Phoenix, AZ":     {Lon: -112.074, Lat: 33.4484},
	"Dallas, TX":      {Lon: -96.797, Lat: 32.7767},
}

type serviceFixture struct {
	svc       *TripService
	routes    *mock.RouteProvider
	resolver  *mock.LocationResolver
	publisher *recordingPublisher
	metrics   *obs.Metrics
	clock     *clock.MockClock
}

func newServiceFixture(miles, hours float64) *serviceFixture {
	f := &serviceFixture{
		routes:    mock.NewRouteProvider(miles, hours, 50),
		resolver:  mock.NewLocationResolver(testPoints),
		publisher: &recordingPublisher{},
		metrics:   obs.NewMetrics(),
		clock:     clock.NewMockClock(tripStart),
	}
	planner := NewTripPlanner(domain.DefaultRules(), nil, f.clock)
	f.svc = NewTripService(f.resolver, f.routes, planner,
		WithPublisher(f.publisher),
		WithMetrics(f.metrics),
		WithClock(f.clock),
		WithLocation(time.UTC),
	)
	return f
}

func validRequest(cycleUsed float64) TripRequest {
	return TripRequest{
		CurrentLocation: "Los Angeles, CA",
		PickupLocation:  "Phoenix, AZ",
		DropoffLocation: "Dallas, TX",
		CycleUsedHours:  cycleUsed,
	}
}

func TestTripServicePlanTrip(t *testing.T) {
	f := newServiceFixture(1300, 24)
	ctx := obs.WithRequestID(context.Background(), "req-1")

	plan, err := f.svc.PlanTrip(ctx, validRequest(20))
	require.NoError(t, err)

	calls := f.routes.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []domain.Coordinates{
		testPoints["Los Angeles, CA"], testPoints["Phoenix, AZ"], testPoints["Dallas, TX"],
	}, calls[0])

	assert.Equal(t, tripStart, plan.StartedAt)
	assert.Equal(t, 2, countKind(plan.Stops, domain.StopRest))
	assert.Len(t, plan.FuelStops, 1)

	require.Len(t, f.publisher.events, 1)
	ev := f.publisher.events[0]
	assert.Equal(t, "req-1", ev.RequestID)
	assert.Equal(t, "Phoenix, AZ", ev.PickupLocation)
	assert.Equal(t, 2, ev.RestStops)
	assert.Equal(t, 1, ev.FuelStops)
	assert.Equal(t, len(plan.DailyLogs), ev.LogDays)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TripsPlanned.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("ok")))
}

func TestTripServiceLabelsStopsWithGeocodedNames(t *testing.T) {
	f := newServiceFixture(275, 5)
	f.resolver.Rename("Phoenix, AZ", "Phoenix, Maricopa County, Arizona, United States")
	f.resolver.Rename("Dallas, TX", "Dallas, Dallas County, Texas, United States")

	plan, err := f.svc.PlanTrip(context.Background(), validRequest(0))
	require.NoError(t, err)

	first, last := plan.Stops[0], plan.Stops[len(plan.Stops)-1]
	assert.Equal(t, domain.StopPickup, first.Kind)
	assert.Equal(t, "Phoenix, Maricopa County, Arizona, United States", first.Label)
	assert.Equal(t, domain.StopDropoff, last.Kind)
	assert.Equal(t, "Dallas, Dallas County, Texas, United States", last.Label)

	// the request keeps the address as entered
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "Phoenix, AZ", f.publisher.events[0].PickupLocation)
}

func TestTripServiceUsesRequestedStartTime(t *testing.T) {
	f := newServiceFixture(275, 5)
	loc := time.FixedZone("CST", -6*3600)
	start := time.Date(2026, 4, 1, 22, 0, 0, 0, loc)

	req := validRequest(0)
	req.StartAt = &start
	plan, err := f.svc.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	// converted to the service's day-boundary zone before planning
	assert.Equal(t, time.Date(2026, 4, 2, 4, 0, 0, 0, time.UTC), plan.StartedAt)
	assert.Equal(t, "2026-04-02", plan.DailyLogs[0].DateString())
}

func TestTripServiceValidationError(t *testing.T) {
	f := newServiceFixture(100, 2)

	plan, err := f.svc.PlanTrip(context.Background(), validRequest(71))
	require.Error(t, err)
	assert.Nil(t, plan)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "cycle_used", ve.Field)
	assert.Equal(t, "invalid", Outcome(err))

	assert.Zero(t, f.resolver.Lookups(), "no lookups before validation passes")
	assert.Empty(t, f.routes.Calls())
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TripsPlanned.WithLabelValues("invalid")))
}

func TestTripServiceUnknownLocation(t *testing.T) {
	f := newServiceFixture(100, 2)
	req := validRequest(0)
	req.DropoffLocation = "Atlantis"

	_, err := f.svc.PlanTrip(context.Background(), req)

	var le *domain.LocationError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "Atlantis", le.Address)
	assert.Equal(t, "upstream", Outcome(err))
	assert.Empty(t, f.routes.Calls())
}

func TestTripServiceRouteFailure(t *testing.T) {
	f := newServiceFixture(100, 2)
	f.routes.Err = errors.New("connection refused")

	plan, err := f.svc.PlanTrip(context.Background(), validRequest(0))
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, domain.ErrRouteComputation))
	assert.Equal(t, "upstream", Outcome(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TripsPlanned.WithLabelValues("upstream")))
}

func TestTripServicePublishFailureDoesNotFailPlan(t *testing.T) {
	f := newServiceFixture(100, 2)
	f.publisher.err = errors.New("nats: connection closed")

	plan, err := f.svc.PlanTrip(context.Background(), validRequest(0))
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("error")))
}

func TestTripServiceCheckFeasibility(t *testing.T) {
	f := newServiceFixture(825, 15)

	report, err := f.svc.CheckFeasibility(context.Background(), validRequest(30))
	require.NoError(t, err)

	assert.False(t, report.Feasibility.Feasible)
	assert.Equal(t, domain.ReasonMultiDay, report.Feasibility.Reason)
	assert.Equal(t, 11.0, report.Available.EffectiveLimitHours)
	assert.Len(t, report.RestPeriods, 2)
	assert.Equal(t, 825.0, report.Route.DistanceMiles)
	assert.Empty(t, f.publisher.events)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "failed", Outcome(domain.ErrLogGenerationFailed))
	assert.Equal(t, "upstream", Outcome(&domain.LocationError{Address: "x"}))
}
