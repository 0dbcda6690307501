package ors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

var errNoResults = errors.New("no geocode results")

// Geocoder resolves addresses with the ORS /geocode/search endpoint,
// restricted to the US.
type Geocoder struct {
	client *Client
}

func NewGeocoder(client *Client) *Geocoder {
	return &Geocoder{client: client}
}

func (g *Geocoder) Resolve(ctx context.Context, address string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	loc, err := g.search(ctx, address)
	g.client.metrics.ObserveUpstream("ors_geocode", err)
	if err != nil {
		return domain.Location{}, &domain.LocationError{Address: address, Err: err}
	}
	return loc, nil
}

func (g *Geocoder) search(ctx context.Context, address string) (domain.Location, error) {
	endpoint := g.client.baseURL + "/geocode/search"

	resp, err := g.client.http.Do(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Location{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Location{}, errNoResults
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Location{}, fmt.Errorf("invalid coordinate format: %v", coords)
	}

	name := f.Properties.Label
	if name == "" {
		name = address
	}

	return domain.Location{
		DisplayName: name,
		Coordinates: domain.Coordinates{Lon: coords[0], Lat: coords[1]},
	}, nil
}
