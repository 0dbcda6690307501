// Package geometry converts route paths to and from the encoded polyline
// format (precision 5, lat/lon order) used by OpenRouteService.
package geometry

import (
	"trip-planner-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

// Decode turns an encoded polyline into a (lon, lat) path.
// An empty string yields an empty path.
func Decode(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return nil, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	path := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		path = append(path, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return path, nil
}

func Encode(path []domain.Coordinates) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
