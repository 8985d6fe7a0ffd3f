package maps

import (
	"context"
	"fmt"
)

type geolocateResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}

// Geolocate performs a one-shot coarse position lookup for the routing
// origin. Callers bound it with a short context timeout and treat failure
// as "no live origin available", never as a fatal routing error.
// Parameters:
//   - ctx: context carrying the acquisition timeout.
// Returns:
//   - *LatLng: estimated current position.
//   - error: non-nil if acquisition fails or times out.
func (c *Client) Geolocate(ctx context.Context) (*LatLng, error) {
	var body geolocateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]bool{"considerIp": true}).
		SetResult(&body).
		Post(c.geolocationURL)
	if err != nil {
		return nil, fmt.Errorf("geolocation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geolocation failed: status %d", resp.StatusCode())
	}
	return &LatLng{Lat: body.Location.Lat, Lng: body.Location.Lng}, nil
}
