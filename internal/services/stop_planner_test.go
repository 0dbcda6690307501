package services

import (
	"errors"
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopPlannerRestStopCount(t *testing.T) {
	tests := []struct {
		name      string
		miles     float64
		hours     float64
		wantRests int
		wantFuel  []float64
	}{
		{"zero length", 0, 0, 0, []float64{}},
		{"one day of driving", 605, 11, 0, []float64{}},
		{"just under two days", 1200, 22, 1, []float64{1000}},
		{"1300 miles", 1300, 24, 2, []float64{1000}},
		{"2200 miles", 2200, 40, 3, []float64{1000, 2000}},
	}

	planner := NewStopPlanner(domain.DefaultRules())
	trip := testTrip(t, 0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops, fuel, err := planner.PlanStops(testRoute(tt.miles, tt.hours), trip, tripStart)
			require.NoError(t, err)

			require.Len(t, stops, tt.wantRests+2)
			assert.Equal(t, domain.StopPickup, stops[0].Kind)
			assert.Equal(t, domain.StopDropoff, stops[len(stops)-1].Kind)
			assert.Equal(t, tt.wantRests, countKind(stops, domain.StopRest))

			require.Len(t, fuel, len(tt.wantFuel))
			for i, f := range fuel {
				assert.Equal(t, domain.StopFuel, f.Kind)
				assert.Contains(t, f.Description, "mile")
				assert.Equal(t,
					domain.InterpolatePosition(testRoute(tt.miles, tt.hours).Path, tt.wantFuel[i], tt.miles),
					f.Position,
				)
			}
		})
	}
}

func TestStopPlannerSchedulesRestsAfterFullDays(t *testing.T) {
	planner := NewStopPlanner(domain.DefaultRules())
	route := testRoute(2200, 40)

	stops, _, err := planner.PlanStops(route, testTrip(t, 45), tripStart)
	require.NoError(t, err)
	require.Len(t, stops, 5)

	pickup := stops[0]
	assert.Equal(t, "Phoenix, AZ", pickup.Label)
	assert.Equal(t, route.Path[1], pickup.Position)
	assert.Equal(t, tripStart, pickup.ScheduledAt)
	assert.Equal(t, 1.0, pickup.DurationHours)

	// pickup 1h, then 11h driving before each rest, rests are 10h
	assert.Equal(t, tripStart.Add(12*time.Hour), stops[1].ScheduledAt)
	assert.Equal(t, tripStart.Add(33*time.Hour), stops[2].ScheduledAt)
	assert.Equal(t, tripStart.Add(54*time.Hour), stops[3].ScheduledAt)
	for _, rest := range stops[1:4] {
		assert.Equal(t, domain.StopRest, rest.Kind)
		assert.Equal(t, "Rest Area", rest.Label)
		assert.Equal(t, 10.0, rest.DurationHours)
		assert.Equal(t, "Mandatory 10-hour rest period after 11 hours of driving", rest.Description)
	}

	// first rest at mile 605 of 2200 over 101 points: floor(0.275*100) = 27
	assert.Equal(t, route.Path[27], stops[1].Position)

	dropoff := stops[4]
	assert.Equal(t, "Dallas, TX", dropoff.Label)
	assert.Equal(t, route.Path[100], dropoff.Position)
	assert.Equal(t, tripStart.Add(54*time.Hour+10*time.Hour+7*time.Hour), dropoff.ScheduledAt)
}

func TestStopPlannerSinglePointPath(t *testing.T) {
	planner := NewStopPlanner(domain.DefaultRules())
	route := domain.RouteSummary{
		DistanceMiles: 0,
		Path:          []domain.Coordinates{{Lon: -96.8, Lat: 32.78}},
	}

	stops, fuel, err := planner.PlanStops(route, domain.TripParameters{}, tripStart)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Empty(t, fuel)
	assert.Equal(t, route.Path[0], stops[0].Position)
	assert.Equal(t, "Pickup Location", stops[0].Label)
	assert.Equal(t, "Dropoff Location", stops[1].Label)

	trip := domain.TripParameters{PickupLocation: "phx", PickupDisplayName: "Phoenix, AZ", DropoffLocation: "dal"}
	stops, _, err = planner.PlanStops(route, trip, tripStart)
	require.NoError(t, err)
	assert.Equal(t, "Phoenix, AZ", stops[0].Label)
	assert.Equal(t, "dal", stops[1].Label)
}

func TestStopPlannerRejectsEmptyPath(t *testing.T) {
	planner := NewStopPlanner(domain.DefaultRules())

	stops, fuel, err := planner.PlanStops(domain.RouteSummary{DistanceMiles: 10}, testTrip(t, 0), tripStart)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPlanningFailed))
	assert.Nil(t, stops)
	assert.Nil(t, fuel)
}

func TestStopPlannerUsesInjectedRules(t *testing.T) {
	rules := domain.DefaultRules()
	rules.DailyDriveLimitHours = 10
	rules.AverageSpeedMPH = 50
	rules.FuelStopIntervalMiles = 300

	stops, fuel, err := NewStopPlanner(rules).PlanStops(testRoute(1000, 20), testTrip(t, 0), tripStart)
	require.NoError(t, err)

	// 500 miles per day: exactly two days, one rest in between
	assert.Equal(t, 1, countKind(stops, domain.StopRest))
	assert.Len(t, fuel, 3)
}

func TestSequenceStopsGroupsByKind(t *testing.T) {
	stops := []domain.Stop{
		{Kind: domain.StopPickup, Label: "P"},
		{Kind: domain.StopRest, Label: "R1"},
		{Kind: domain.StopRest, Label: "R2"},
		{Kind: domain.StopDropoff, Label: "D"},
	}
	fuel := []domain.Stop{
		{Kind: domain.StopFuel, Label: "F1"},
		{Kind: domain.StopFuel, Label: "F2"},
	}

	got := SequenceStops(stops, fuel)

	labels := make([]string, 0, len(got))
	for _, s := range got {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"P", "F1", "F2", "R1", "R2", "D"}, labels)
}
