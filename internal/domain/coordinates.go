package domain

import "math"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Valid reports whether the coordinates fall inside the WGS84 range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Round returns the coordinates rounded to the given number of decimals.
func (c Coordinates) Round(decimals int) Coordinates {
	p := math.Pow10(decimals)
	return Coordinates{
		Lon: math.Round(c.Lon*p) / p,
		Lat: math.Round(c.Lat*p) / p,
	}
}

// A resolved place: the provider's display name plus its coordinates.
type Location struct {
	DisplayName string
	Coordinates Coordinates
}

// RoundCoordinates rounds every point of a path to 6 decimals (~0.1m).
func RoundCoordinates(path []Coordinates) []Coordinates {
	out := make([]Coordinates, 0, len(path))
	for _, c := range path {
		out = append(out, c.Round(6))
	}
	return out
}

// ChunkCoordinates thins a path to roughly maxPoints by keeping every n-th point.
// The last point is always kept so the path still ends at the destination.
func ChunkCoordinates(path []Coordinates, maxPoints int) []Coordinates {
	if maxPoints <= 0 || len(path) <= maxPoints {
		return path
	}

	step := len(path) / maxPoints
	out := make([]Coordinates, 0, maxPoints+1)
	for i := 0; i < len(path); i += step {
		out = append(out, path[i])
	}
	if last := path[len(path)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}
