package ors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"trip-planner-service/internal/platform/httpclient"
	"trip-planner-service/internal/platform/obs"
)

const (
	DefaultBaseURL = "https://api.openrouteservice.org"
	DefaultProfile = "driving-car"
)

// Client holds what every OpenRouteService call needs: credentials, endpoint
// and the shared retrying HTTP client. It is safe for concurrent use.
type Client struct {
	http    *httpclient.Client
	apiKey  string
	baseURL string
	profile string
	metrics *obs.Metrics
}

func NewClient(apiKey, baseURL, profile string, hc *httpclient.Client, metrics *obs.Metrics) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if hc == nil {
		return nil, errors.New("ORS http client is nil")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if profile == "" {
		profile = DefaultProfile
	}

	return &Client{
		http:    hc,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
		metrics: metrics,
	}, nil
}

func (c *Client) Profile() string { return c.profile }

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
