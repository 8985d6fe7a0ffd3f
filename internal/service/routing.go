package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/maps"
)

// Stop is a single serviceable location flattened out of a customer,
// contract, or one sub-address of a multi-address property. Stops are built
// fresh for each optimization request and never persisted on their own;
// saved routes keep frozen snapshots instead.
type Stop struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Priority domain.Priority `json:"priority"`
	Phone    string          `json:"phone,omitempty"`
	SourceID string          `json:"source_id"`
}

// OptimizeInput carries the candidate entities for one routing request.
type OptimizeInput struct {
	Contracts  []domain.CommercialContract
	Properties []domain.HOAProperty
	Customers  []domain.Customer

	// UseLiveLocation asks the sequencer to try a one-shot geolocation for
	// the route origin. Failure or timeout degrades to entity-only routing.
	UseLiveLocation bool
}

// OptimizedRoute is the sequenced result relayed back to the caller. Nothing
// is persisted automatically; saving is a separate, explicit action.
type OptimizedRoute struct {
	Stops           []Stop `json:"stops"`
	Excluded        []Stop `json:"excluded,omitempty"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	UsedLiveOrigin  bool   `json:"used_live_origin"`
}

// RoutingService sequences stops and delegates route optimization to the
// external directions provider. No routing algorithm lives here: the
// service's share of the work is flattening, priority ordering, ceiling
// enforcement, and translating the provider's waypoint permutation back
// into a stop order.
type RoutingService struct {
	maps               *maps.Client
	waypointCeiling    int
	geolocationTimeout time.Duration
}

// NewRoutingService creates a new RoutingService.
// Parameters:
//   - client: mapping-provider client.
//   - waypointCeiling: provider's combined stop maximum; 0 uses the default.
//   - geolocationTimeout: bound on origin acquisition; 0 uses 10s.
// Returns:
//   - *RoutingService: initialized service.
func NewRoutingService(client *maps.Client, waypointCeiling int, geolocationTimeout time.Duration) *RoutingService {
	if waypointCeiling <= 0 {
		waypointCeiling = maps.MaxCombinedStops
	}
	if geolocationTimeout <= 0 {
		geolocationTimeout = 10 * time.Second
	}
	return &RoutingService{
		maps:               client,
		waypointCeiling:    waypointCeiling,
		geolocationTimeout: geolocationTimeout,
	}
}

// BuildStops flattens the heterogeneous stop sources into one candidate
// list: every HOA/condo property sub-address becomes its own stop, as does
// every sub-address of a multi-address customer; contracts and plain
// customers contribute a single stop each.
// Parameters:
//   - contracts: commercial contract entities.
//   - properties: HOA/condo multi-address entities.
//   - customers: customer entities, multi-address or flat.
// Returns:
//   - []Stop: concatenated candidate stops, source order preserved.
func BuildStops(contracts []domain.CommercialContract, properties []domain.HOAProperty, customers []domain.Customer) []Stop {
	var stops []Stop

	for _, p := range properties {
		for i, sa := range p.ServiceAddresses {
			label := sa.UnitLabel
			if label == "" {
				label = fmt.Sprintf("Unit %d", i+1)
			}
			stops = append(stops, Stop{
				ID:       fmt.Sprintf("%s#%d", p.ID, i),
				Name:     p.OrganizationName + " - " + label,
				Address:  sa.Location,
				Priority: domain.ParsePriority(string(p.Priority)),
				Phone:    p.Phone,
				SourceID: p.ID,
			})
		}
	}

	for _, c := range customers {
		if c.IsMultiAddress() {
			for i, sa := range c.SubAddresses {
				label := sa.UnitLabel
				if label == "" {
					label = fmt.Sprintf("Location %d", i+1)
				}
				stops = append(stops, Stop{
					ID:       fmt.Sprintf("%s#%d", c.ID, i),
					Name:     c.Name + " - " + label,
					Address:  sa.Location,
					Priority: domain.ParsePriority(string(c.Priority)),
					Phone:    c.Phone,
					SourceID: c.ID,
				})
			}
			continue
		}
		if c.Address == "" {
			continue
		}
		stops = append(stops, Stop{
			ID:       c.ID,
			Name:     c.Name,
			Address:  c.Address,
			Priority: domain.ParsePriority(string(c.Priority)),
			Phone:    c.Phone,
			SourceID: c.ID,
		})
	}

	for _, ct := range contracts {
		if len(ct.ServiceAddresses) == 0 {
			continue
		}
		// Contracts ride as single stops at their primary service address.
		stops = append(stops, Stop{
			ID:       ct.ID,
			Name:     ct.OrganizationName,
			Address:  ct.ServiceAddresses[0].Location,
			Priority: domain.ParsePriority(string(ct.Priority)),
			Phone:    ct.Phone,
			SourceID: ct.ID,
		})
	}

	return stops
}

// sortByPriority orders stops most urgent first (critical, high, normal,
// low). Casing differences between source entity types are already
// normalized by ParsePriority in BuildStops; sorting is stable so stops of
// equal priority keep their source order.
func sortByPriority(stops []Stop) {
	sort.SliceStable(stops, func(i, k int) bool {
		return stops[i].Priority.Rank() < stops[k].Priority.Rank()
	})
}

// Optimize sequences the candidate stops and asks the directions provider
// for an optimized visiting order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: candidate entities and routing options.
// Returns:
//   - *OptimizedRoute: final stop order, exclusions, and totals.
//   - error: ErrNothingToRoute with no candidates, or a classified maps
//     error; on failure no partial route is returned.
func (s *RoutingService) Optimize(ctx context.Context, input *OptimizeInput) (*OptimizedRoute, error) {
	stops := BuildStops(input.Contracts, input.Properties, input.Customers)
	if len(stops) == 0 {
		return nil, ErrNothingToRoute
	}
	sortByPriority(stops)

	var origin *maps.LatLng
	if input.UseLiveLocation {
		origin = s.acquireOrigin(ctx)
	}

	// The provider counts origin + destination + waypoints against one
	// ceiling; a live origin consumes a slot the stops would otherwise use.
	limit := s.waypointCeiling
	if origin != nil {
		limit--
	}
	var excluded []Stop
	if len(stops) > limit {
		excluded = stops[limit:]
		stops = stops[:limit]
		logger.CtxWarn(ctx, "Stop ceiling reached: submitted=%d, excluded=%d", len(stops), len(excluded))
	}

	ordered, result, err := s.requestDirections(ctx, stops, origin)
	if err != nil {
		return nil, err
	}

	return &OptimizedRoute{
		Stops:           ordered,
		Excluded:        excluded,
		DistanceMeters:  result.TotalDistanceMeters(),
		DurationSeconds: result.TotalDurationSeconds(),
		UsedLiveOrigin:  origin != nil,
	}, nil
}

// ResolveAddress geocodes partial address text into a structured address
// for the dashboard's address-entry forms.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: partial or complete address text.
// Returns:
//   - *maps.Address: resolved address.
//   - error: ErrValidation on empty input, or a classified maps error.
func (s *RoutingService) ResolveAddress(ctx context.Context, input string) (*maps.Address, error) {
	if strings.TrimSpace(input) == "" {
		return nil, validationf("address text is required")
	}
	return s.maps.Geocode(ctx, input)
}

// acquireOrigin performs the one-shot geolocation attempt. Any failure,
// denial, or timeout means routing proceeds without a live origin.
func (s *RoutingService) acquireOrigin(ctx context.Context) *maps.LatLng {
	geoCtx, cancel := context.WithTimeout(ctx, s.geolocationTimeout)
	defer cancel()

	loc, err := s.maps.Geolocate(geoCtx)
	if err != nil {
		logger.CtxWarn(ctx, "Geolocation unavailable, routing without live origin: %v", err)
		return nil
	}
	return loc
}

// requestDirections shapes the directions call and translates the returned
// waypoint permutation back into stop order.
//
// With a live origin, every stop is a waypoint except the lowest-priority
// survivor, which becomes the destination. Without one, the first stop is
// the origin, the last is the destination, and the middle are waypoints.
func (s *RoutingService) requestDirections(ctx context.Context, stops []Stop, origin *maps.LatLng) ([]Stop, *maps.DirectionsResult, error) {
	req := &maps.DirectionsRequest{OptimizeWaypoints: true}
	var waypointStops []Stop
	var ordered []Stop

	if origin != nil {
		req.Origin = origin.String()
		req.Destination = stops[len(stops)-1].Address
		waypointStops = stops[:len(stops)-1]
	} else {
		req.Origin = stops[0].Address
		req.Destination = stops[len(stops)-1].Address
		if len(stops) > 2 {
			waypointStops = stops[1 : len(stops)-1]
		}
	}
	for _, st := range waypointStops {
		req.Waypoints = append(req.Waypoints, st.Address)
	}

	result, err := s.maps.Directions(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	permuted := applyWaypointOrder(waypointStops, result.WaypointOrder)
	if origin != nil {
		ordered = append(ordered, permuted...)
		ordered = append(ordered, stops[len(stops)-1])
	} else {
		ordered = append(ordered, stops[0])
		ordered = append(ordered, permuted...)
		if len(stops) > 1 {
			ordered = append(ordered, stops[len(stops)-1])
		}
	}
	return ordered, result, nil
}

// applyWaypointOrder re-derives the visiting order from the provider's
// permutation. A malformed permutation falls back to the submitted order.
func applyWaypointOrder(stops []Stop, order []int) []Stop {
	if len(order) != len(stops) {
		return stops
	}
	permuted := make([]Stop, 0, len(stops))
	for _, idx := range order {
		if idx < 0 || idx >= len(stops) {
			return stops
		}
		permuted = append(permuted, stops[idx])
	}
	return permuted
}
