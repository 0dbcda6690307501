package mock

import (
	"context"
	"fmt"
	"sync"
	"trip-planner-service/internal/domain"
)

// RouteProvider returns a fixed route, or Err, and records the waypoints of every call.
type RouteProvider struct {
	Route domain.RouteSummary
	Err   error

	mu    sync.Mutex
	calls [][]domain.Coordinates
}

func NewRouteProvider(distanceMiles, durationHours float64, points int) *RouteProvider {
	path := make([]domain.Coordinates, 0, points)
	for i := 0; i < points; i++ {
		path = append(path, domain.Coordinates{Lon: -100 + float64(i)*0.01, Lat: 35 + float64(i)*0.005})
	}
	return &RouteProvider{Route: domain.RouteSummary{
		DistanceMiles: distanceMiles,
		DurationHours: durationHours,
		Path:          path,
	}}
}

func (p *RouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteSummary, error) {
	p.mu.Lock()
	p.calls = append(p.calls, append([]domain.Coordinates(nil), waypoints...))
	p.mu.Unlock()

	if p.Err != nil {
		return domain.RouteSummary{}, fmt.Errorf("mock route: %w", p.Err)
	}
	return p.Route, nil
}

// Calls returns the waypoint lists passed to GetRoute so far.
func (p *RouteProvider) Calls() [][]domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]domain.Coordinates(nil), p.calls...)
}
