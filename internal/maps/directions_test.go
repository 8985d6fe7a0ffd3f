package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status string
		want   error
	}{
		{"OK", nil},
		{"ZERO_RESULTS", ErrNoRoute},
		{"NOT_FOUND", ErrAddressNotFound},
		{"INVALID_REQUEST", ErrInvalidRequest},
		{"MAX_WAYPOINTS_EXCEEDED", ErrInvalidRequest},
		{"MAX_ROUTE_LENGTH_EXCEEDED", ErrInvalidRequest},
		{"OVER_DAILY_LIMIT", ErrRateLimited},
		{"OVER_QUERY_LIMIT", ErrRateLimited},
		{"REQUEST_DENIED", ErrPermissionDenied},
		{"UNKNOWN_ERROR", ErrServer},
		{"SOMETHING_NEW", ErrUnknown},
	}
	for _, tt := range tests {
		if got := classifyStatus(tt.status); !errors.Is(got, tt.want) {
			t.Errorf("classifyStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestClassifyHTTP(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{429, ErrRateLimited},
		{401, ErrPermissionDenied},
		{403, ErrPermissionDenied},
		{500, ErrServer},
		{503, ErrServer},
		{400, ErrInvalidRequest},
		{404, ErrInvalidRequest},
		{302, ErrUnknown},
	}
	for _, tt := range tests {
		if got := classifyHTTP(tt.code); !errors.Is(got, tt.want) {
			t.Errorf("classifyHTTP(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestDirectionsResultTotals(t *testing.T) {
	r := &DirectionsResult{Legs: []Leg{
		{DistanceMeters: 1200, DurationSeconds: 300},
		{DistanceMeters: 800, DurationSeconds: 240},
		{DistanceMeters: 3000, DurationSeconds: 660},
	}}
	if got := r.TotalDistanceMeters(); got != 5000 {
		t.Errorf("TotalDistanceMeters() = %d, want 5000", got)
	}
	if got := r.TotalDurationSeconds(); got != 1200 {
		t.Errorf("TotalDurationSeconds() = %d, want 1200", got)
	}

	empty := &DirectionsResult{}
	if empty.TotalDistanceMeters() != 0 || empty.TotalDurationSeconds() != 0 {
		t.Error("empty result must total zero")
	}
}

func TestDirectionsRequestShape(t *testing.T) {
	var query map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}
		if r.URL.Path != "/directions/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","routes":[{"waypoint_order":[1,0],"legs":[{"distance":{"value":100},"duration":{"value":60}}]}]}`))
	}))
	defer ts.Close()

	client := NewClient(&Config{APIKey: "test-key", BaseURL: ts.URL})
	result, err := client.Directions(context.Background(), &DirectionsRequest{
		Origin:            "1 First St",
		Destination:       "9 Last St",
		Waypoints:         []string{"2 Mid St", "3 Mid St"},
		OptimizeWaypoints: true,
	})
	if err != nil {
		t.Fatalf("Directions returned error: %v", err)
	}

	if query["origin"] != "1 First St" || query["destination"] != "9 Last St" {
		t.Errorf("endpoints = %q -> %q", query["origin"], query["destination"])
	}
	if query["waypoints"] != "optimize:true|2 Mid St|3 Mid St" {
		t.Errorf("waypoints = %q", query["waypoints"])
	}
	if query["key"] != "test-key" {
		t.Errorf("key = %q", query["key"])
	}

	if len(result.WaypointOrder) != 2 || result.WaypointOrder[0] != 1 {
		t.Errorf("waypoint order = %v", result.WaypointOrder)
	}
	if result.TotalDistanceMeters() != 100 {
		t.Errorf("distance = %d", result.TotalDistanceMeters())
	}
}

func TestDirectionsEmptyRoutes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","routes":[]}`))
	}))
	defer ts.Close()

	client := NewClient(&Config{APIKey: "k", BaseURL: ts.URL})
	_, err := client.Directions(context.Background(), &DirectionsRequest{Origin: "a", Destination: "b"})
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

func TestDirectionsHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(&Config{APIKey: "k", BaseURL: ts.URL})
	_, err := client.Directions(context.Background(), &DirectionsRequest{Origin: "a", Destination: "b"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestGeocodeParsesComponents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("address"); got != "12 birch" {
			t.Errorf("address = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{
			"formatted_address":"12 Birch Rd, Springfield, MN 55101, USA",
			"address_components":[
				{"long_name":"12","short_name":"12","types":["street_number"]},
				{"long_name":"Birch Rd","short_name":"Birch Rd","types":["route"]},
				{"long_name":"Springfield","short_name":"Springfield","types":["locality"]},
				{"long_name":"Minnesota","short_name":"MN","types":["administrative_area_level_1"]},
				{"long_name":"55101","short_name":"55101","types":["postal_code"]}
			],
			"geometry":{"location":{"lat":44.95,"lng":-93.09}}
		}]}`))
	}))
	defer ts.Close()

	client := NewClient(&Config{APIKey: "k", BaseURL: ts.URL})
	addr, err := client.Geocode(context.Background(), "12 birch")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if addr.Street != "12 Birch Rd" {
		t.Errorf("street = %q", addr.Street)
	}
	if addr.City != "Springfield" || addr.State != "MN" || addr.PostalCode != "55101" {
		t.Errorf("components = %+v", addr)
	}
	if addr.Location == nil || addr.Location.Lat != 44.95 {
		t.Errorf("location = %+v", addr.Location)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer ts.Close()

	client := NewClient(&Config{APIKey: "k", BaseURL: ts.URL})
	if _, err := client.Geocode(context.Background(), "nowhere"); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want classified status error", err)
	}
}
