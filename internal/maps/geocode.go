package maps

import (
	"context"
	"fmt"
)

// Address is a resolved, structured postal address.
type Address struct {
	Formatted  string  `json:"formatted"`
	Street     string  `json:"street,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	Location   *LatLng `json:"location,omitempty"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves partial address text into a formatted address with
// structured components and a coordinate pair.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: partial or complete address text.
// Returns:
//   - *Address: resolved address.
//   - error: one of the classified errors on provider failure.
func (c *Client) Geocode(ctx context.Context, input string) (*Address, error) {
	var body geocodeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": input,
			"key":     c.apiKey,
		}).
		SetResult(&body).
		Get(c.baseURL + "/geocode/json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServer, err)
	}
	if resp.IsError() {
		return nil, classifyHTTP(resp.StatusCode())
	}
	if err := classifyStatus(body.Status); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, ErrAddressNotFound
	}

	result := body.Results[0]
	addr := &Address{
		Formatted: result.FormattedAddress,
		Location:  &LatLng{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
	}

	var streetNumber, route string
	for _, comp := range result.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "street_number":
				streetNumber = comp.LongName
			case "route":
				route = comp.LongName
			case "locality":
				addr.City = comp.LongName
			case "administrative_area_level_1":
				addr.State = comp.ShortName
			case "postal_code":
				addr.PostalCode = comp.LongName
			}
		}
	}
	if route != "" {
		addr.Street = route
		if streetNumber != "" {
			addr.Street = streetNumber + " " + route
		}
	}
	return addr, nil
}
