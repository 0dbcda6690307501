package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for routing a trip through an ordered list of waypoints.
type RouteProvider interface {
	// Return total distance, duration and path geometry for the waypoints, in order.
	// Failures wrap domain.ErrRouteComputation.
	GetRoute(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteSummary, error)
}
