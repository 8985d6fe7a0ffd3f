package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/maps"
)

// fakeDirections serves a canned directions response and records the last
// request's query parameters.
type fakeDirections struct {
	status        string
	waypointOrder []int
	lastQuery     map[string]string
}

func (f *fakeDirections) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			f.lastQuery[k] = v[0]
		}

		status := f.status
		if status == "" {
			status = "OK"
		}
		resp := map[string]interface{}{
			"status": status,
			"routes": []map[string]interface{}{},
		}
		if status == "OK" {
			legs := []map[string]interface{}{
				{"distance": map[string]int{"value": 1000}, "duration": map[string]int{"value": 600}},
				{"distance": map[string]int{"value": 2500}, "duration": map[string]int{"value": 900}},
			}
			resp["routes"] = []map[string]interface{}{
				{"waypoint_order": f.waypointOrder, "legs": legs},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func newRoutingFixture(t *testing.T, fake *fakeDirections, ceiling int) *RoutingService {
	t.Helper()
	ts := httptest.NewServer(fake.handler())
	t.Cleanup(ts.Close)

	client := maps.NewClient(&maps.Config{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		// Geolocation pointed at a dead port so live-origin attempts fail fast.
		GeolocationURL: "http://127.0.0.1:1",
		Timeout:        2 * time.Second,
	})
	return NewRoutingService(client, ceiling, 100*time.Millisecond)
}

func TestBuildStopsExplodesMultiAddressSources(t *testing.T) {
	properties := []domain.HOAProperty{{
		ID:               "hoa-1",
		OrganizationName: "Maple Court HOA",
		Priority:         domain.PriorityHigh,
		ServiceAddresses: domain.SubAddressList{
			{Location: "1 Maple Ct", UnitLabel: "Clubhouse"},
			{Location: "2 Maple Ct"},
		},
	}}
	customers := []domain.Customer{
		{
			ID:       "cust-1",
			Name:     "Harbor Condos",
			Type:     domain.CustomerCondo,
			Priority: domain.PriorityNormal,
			SubAddresses: domain.SubAddressList{
				{Location: "10 Harbor Way", UnitLabel: "Building A"},
			},
		},
		{ID: "cust-2", Name: "Sam Ortiz", Address: "44 Pine St"},
		{ID: "cust-3", Name: "No Address"},
	}
	contracts := []domain.CommercialContract{{
		ID:               "con-1",
		OrganizationName: "Plaza Offices",
		ServiceAddresses: domain.SubAddressList{{Location: "1 Plaza Dr"}, {Location: "2 Plaza Dr"}},
	}}

	stops := BuildStops(contracts, properties, customers)
	if len(stops) != 5 {
		t.Fatalf("built %d stops, want 5", len(stops))
	}

	byName := map[string]Stop{}
	for _, st := range stops {
		byName[st.Name] = st
	}
	if _, ok := byName["Maple Court HOA - Clubhouse"]; !ok {
		t.Error("labeled sub-address stop missing")
	}
	if _, ok := byName["Maple Court HOA - Unit 2"]; !ok {
		t.Error("unlabeled sub-address should get a positional label")
	}
	if _, ok := byName["Harbor Condos - Building A"]; !ok {
		t.Error("multi-address customer stop missing")
	}
	// A contract contributes one stop at its primary address.
	if st, ok := byName["Plaza Offices"]; !ok || st.Address != "1 Plaza Dr" {
		t.Errorf("contract stop = %+v", st)
	}
	// A flat customer without an address is not routable.
	if _, ok := byName["No Address"]; ok {
		t.Error("address-less customer should be skipped")
	}
}

func TestSortByPriorityIsCaseInsensitive(t *testing.T) {
	stops := []Stop{
		{ID: "a", Priority: domain.ParsePriority("LOW")},
		{ID: "b", Priority: domain.ParsePriority("Critical")},
		{ID: "c", Priority: domain.ParsePriority("normal")},
		{ID: "d", Priority: domain.ParsePriority("hIgH")},
	}
	sortByPriority(stops)

	want := []string{"b", "d", "c", "a"}
	for i, id := range want {
		if stops[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, stops[i].ID, id)
		}
	}
}

func TestOptimizeTruncatesAtCeiling(t *testing.T) {
	fake := &fakeDirections{}
	svc := newRoutingFixture(t, fake, 25)

	input := &OptimizeInput{}
	for i := 0; i < 30; i++ {
		input.Customers = append(input.Customers, domain.Customer{
			ID:      fmt.Sprintf("cust-%02d", i),
			Name:    fmt.Sprintf("Customer %02d", i),
			Address: fmt.Sprintf("%d Main St", i),
		})
	}

	route, err := svc.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if len(route.Stops) != 25 {
		t.Errorf("submitted %d stops, want 25", len(route.Stops))
	}
	if len(route.Excluded) != 5 {
		t.Errorf("excluded %d stops, want 5", len(route.Excluded))
	}
	if route.UsedLiveOrigin {
		t.Error("no live origin was requested")
	}
}

func TestOptimizeAppliesWaypointPermutation(t *testing.T) {
	// Three waypoints between origin and destination, returned reversed.
	fake := &fakeDirections{waypointOrder: []int{2, 1, 0}}
	svc := newRoutingFixture(t, fake, 25)

	input := &OptimizeInput{}
	for i := 0; i < 5; i++ {
		input.Customers = append(input.Customers, domain.Customer{
			ID:      fmt.Sprintf("cust-%d", i),
			Name:    fmt.Sprintf("Customer %d", i),
			Address: fmt.Sprintf("%d Main St", i),
		})
	}

	route, err := svc.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}

	want := []string{"cust-0", "cust-3", "cust-2", "cust-1", "cust-4"}
	if len(route.Stops) != len(want) {
		t.Fatalf("route holds %d stops, want %d", len(route.Stops), len(want))
	}
	for i, id := range want {
		if route.Stops[i].ID != id {
			t.Errorf("stop %d = %s, want %s", i, route.Stops[i].ID, id)
		}
	}

	if route.DistanceMeters != 3500 {
		t.Errorf("distance = %d, want summed 3500", route.DistanceMeters)
	}
	if route.DurationSeconds != 1500 {
		t.Errorf("duration = %d, want summed 1500", route.DurationSeconds)
	}
	if fake.lastQuery["waypoints"] != "optimize:true|1 Main St|2 Main St|3 Main St" {
		t.Errorf("waypoints parameter = %q", fake.lastQuery["waypoints"])
	}
}

func TestOptimizeMalformedPermutationFallsBack(t *testing.T) {
	fake := &fakeDirections{waypointOrder: []int{0, 7, 1}}
	svc := newRoutingFixture(t, fake, 25)

	input := &OptimizeInput{}
	for i := 0; i < 5; i++ {
		input.Customers = append(input.Customers, domain.Customer{
			ID:      fmt.Sprintf("cust-%d", i),
			Name:    fmt.Sprintf("Customer %d", i),
			Address: fmt.Sprintf("%d Main St", i),
		})
	}

	route, err := svc.Optimize(context.Background(), input)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		if route.Stops[i].ID != fmt.Sprintf("cust-%d", i) {
			t.Errorf("fallback order broken at %d: %s", i, route.Stops[i].ID)
		}
	}
}

func TestOptimizeClassifiesProviderFailure(t *testing.T) {
	fake := &fakeDirections{status: "ZERO_RESULTS"}
	svc := newRoutingFixture(t, fake, 25)

	_, err := svc.Optimize(context.Background(), &OptimizeInput{
		Customers: []domain.Customer{
			{ID: "a", Name: "A", Address: "1 Main St"},
			{ID: "b", Name: "B", Address: "2 Main St"},
		},
	})
	if !errors.Is(err, maps.ErrNoRoute) {
		t.Fatalf("error = %v, want ErrNoRoute", err)
	}
}

func TestOptimizeWithNothingToRoute(t *testing.T) {
	fake := &fakeDirections{}
	svc := newRoutingFixture(t, fake, 25)

	_, err := svc.Optimize(context.Background(), &OptimizeInput{})
	if !errors.Is(err, ErrNothingToRoute) {
		t.Fatalf("error = %v, want ErrNothingToRoute", err)
	}
}

func TestOptimizeLiveOriginFailureDegrades(t *testing.T) {
	fake := &fakeDirections{}
	svc := newRoutingFixture(t, fake, 25)

	route, err := svc.Optimize(context.Background(), &OptimizeInput{
		UseLiveLocation: true,
		Customers: []domain.Customer{
			{ID: "a", Name: "A", Address: "1 Main St"},
			{ID: "b", Name: "B", Address: "2 Main St"},
		},
	})
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if route.UsedLiveOrigin {
		t.Error("unreachable geolocation endpoint must degrade to entity-only routing")
	}
	if len(route.Stops) != 2 {
		t.Errorf("route holds %d stops, want 2", len(route.Stops))
	}
}
