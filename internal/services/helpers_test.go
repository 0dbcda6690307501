package services

import (
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/require"
)

var tripStart = time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

func testRoute(miles, hours float64) domain.RouteSummary {
	path := make([]domain.Coordinates, 0, 101)
	for i := 0; i <= 100; i++ {
		path = append(path, domain.Coordinates{Lon: -120 + float64(i)*0.4, Lat: 34 + float64(i)*0.05})
	}
	return domain.RouteSummary{DistanceMiles: miles, DurationHours: hours, Path: path}
}

func testTrip(t *testing.T, cycleUsed float64) domain.TripParameters {
	t.Helper()
	trip, err := domain.NewTripParameters("Los Angeles, CA", "Phoenix, AZ", "Dallas, TX", cycleUsed)
	require.NoError(t, err)
	return trip
}

func countKind(stops []domain.Stop, kind domain.StopKind) int {
	n := 0
	for _, s := range stops {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
