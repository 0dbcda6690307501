package domain

import "math"

// Aggregate result of routing a trip through its waypoints.
// Path holds the route geometry as ordered (lon, lat) pairs.
type RouteSummary struct {
	DistanceMiles float64
	DurationHours float64
	Path          []Coordinates
}

// NewRouteSummary validates the provider output before any planning starts.
func NewRouteSummary(distanceMiles, durationHours float64, path []Coordinates) (RouteSummary, error) {
	if math.IsNaN(distanceMiles) || distanceMiles < 0 {
		return RouteSummary{}, NewValidationError("distance_miles", "must not be negative")
	}
	if math.IsNaN(durationHours) || durationHours < 0 {
		return RouteSummary{}, NewValidationError("duration_hours", "must not be negative")
	}
	if len(path) == 0 {
		return RouteSummary{}, NewValidationError("path", "must contain at least one coordinate")
	}

	return RouteSummary{
		DistanceMiles: distanceMiles,
		DurationHours: durationHours,
		Path:          path,
	}, nil
}

// Validate re-checks the invariants for summaries built without NewRouteSummary.
func (r RouteSummary) Validate() error {
	_, err := NewRouteSummary(r.DistanceMiles, r.DurationHours, r.Path)
	return err
}

// InterpolatePosition picks the path coordinate nearest to a mile marker by
// linear index interpolation: Path[floor((m/D)*(len-1))], clamped to both ends.
func InterpolatePosition(path []Coordinates, mileMarker, totalMiles float64) Coordinates {
	if len(path) == 0 {
		return Coordinates{}
	}
	if mileMarker <= 0 {
		return path[0]
	}
	if mileMarker >= totalMiles {
		return path[len(path)-1]
	}

	index := int(math.Floor(mileMarker / totalMiles * float64(len(path)-1)))
	if index >= len(path) {
		return path[len(path)-1]
	}
	return path[index]
}

// FuelMileMarkers lists every interval multiple strictly below the total distance.
func FuelMileMarkers(totalMiles, intervalMiles float64) []float64 {
	if intervalMiles <= 0 {
		return nil
	}

	markers := []float64{}
	for mile := intervalMiles; mile < totalMiles; mile += intervalMiles {
		markers = append(markers, mile)
	}
	return markers
}
