// Package maps wraps the external mapping provider: directions with waypoint
// optimization, address geocoding, and coarse device geolocation. Route
// optimization itself is entirely the provider's job; this package only
// shapes requests and classifies failures.
package maps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// MaxCombinedStops is the provider's ceiling on origin + destination +
// intermediate waypoints per directions request.
const MaxCombinedStops = 25

// Client is a mapping-provider API client.
type Client struct {
	http           *resty.Client
	apiKey         string
	baseURL        string
	geolocationURL string
}

// Config holds configuration for the maps client.
type Config struct {
	APIKey         string
	BaseURL        string
	GeolocationURL string
	Timeout        time.Duration
}

// NewClient creates a mapping-provider client.
// Parameters:
//   - cfg: client configuration including the API key.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := resty.New()
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api"
	}
	geoURL := cfg.GeolocationURL
	if geoURL == "" {
		geoURL = "https://www.googleapis.com/geolocation/v1/geolocate"
	}

	return &Client{
		http:           client,
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		geolocationURL: geoURL,
	}
}

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the coordinate as "lat,lng" for request parameters.
func (p LatLng) String() string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

// DirectionsRequest describes one directions call.
type DirectionsRequest struct {
	Origin            string
	Destination       string
	Waypoints         []string
	OptimizeWaypoints bool
}

// Leg is one segment of the returned route.
type Leg struct {
	DistanceMeters  int
	DurationSeconds int
}

// DirectionsResult is the provider's answer for a directions request.
// WaypointOrder is the optimized visiting permutation over the request's
// waypoint list (exclusive of origin and destination).
type DirectionsResult struct {
	WaypointOrder []int
	Legs          []Leg
}

// TotalDistanceMeters sums every leg's distance.
func (r *DirectionsResult) TotalDistanceMeters() int {
	total := 0
	for _, l := range r.Legs {
		total += l.DistanceMeters
	}
	return total
}

// TotalDurationSeconds sums every leg's duration.
func (r *DirectionsResult) TotalDurationSeconds() int {
	total := 0
	for _, l := range r.Legs {
		total += l.DurationSeconds
	}
	return total
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions requests a route through the given stops. With
// OptimizeWaypoints set, the provider reorders the intermediate waypoints
// for the shortest overall route.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: directions request.
// Returns:
//   - *DirectionsResult: waypoint permutation and per-leg summaries.
//   - error: one of the classified errors on provider failure.
func (c *Client) Directions(ctx context.Context, req *DirectionsRequest) (*DirectionsResult, error) {
	waypoints := strings.Join(req.Waypoints, "|")
	if req.OptimizeWaypoints && waypoints != "" {
		waypoints = "optimize:true|" + waypoints
	}

	params := map[string]string{
		"origin":      req.Origin,
		"destination": req.Destination,
		"key":         c.apiKey,
	}
	if waypoints != "" {
		params["waypoints"] = waypoints
	}

	var body directionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get(c.baseURL + "/directions/json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServer, err)
	}
	if resp.IsError() {
		return nil, classifyHTTP(resp.StatusCode())
	}
	if err := classifyStatus(body.Status); err != nil {
		return nil, err
	}
	if len(body.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := body.Routes[0]
	result := &DirectionsResult{
		WaypointOrder: route.WaypointOrder,
		Legs:          make([]Leg, 0, len(route.Legs)),
	}
	for _, l := range route.Legs {
		result.Legs = append(result.Legs, Leg{
			DistanceMeters:  l.Distance.Value,
			DurationSeconds: l.Duration.Value,
		})
	}
	return result, nil
}

// classifyHTTP maps transport-level HTTP failures onto the classified set.
func classifyHTTP(code int) error {
	switch {
	case code == 429:
		return ErrRateLimited
	case code == 401 || code == 403:
		return ErrPermissionDenied
	case code >= 500:
		return ErrServer
	case code >= 400:
		return ErrInvalidRequest
	default:
		return ErrUnknown
	}
}
