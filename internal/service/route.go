package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

// RouteService persists optimized routes and tracks per-stop completion.
type RouteService struct {
	routes *repository.RouteRepository
}

// NewRouteService creates a new RouteService.
// Parameters:
//   - routes: saved-route repository.
// Returns:
//   - *RouteService: initialized service.
func NewRouteService(routes *repository.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

// Save snapshots an optimized route under a name. The stop list is frozen
// at call time: only id, name, address, and priority are copied, so later
// edits to the source customer or contract records never reorder or relabel
// the saved route.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: route display name.
//   - route: optimization result to freeze.
//   - createdBy: authenticated identity for attribution; may be empty.
// Returns:
//   - *domain.SavedRoute: the persisted snapshot.
//   - error: ErrValidation on bad input, store error on failure.
func (s *RouteService) Save(ctx context.Context, name string, route *OptimizedRoute, createdBy string) (*domain.SavedRoute, error) {
	if name == "" {
		return nil, validationf("route name is required")
	}
	if route == nil || len(route.Stops) == 0 {
		return nil, validationf("route has no stops")
	}

	snapshots := make(domain.StopSnapshotList, 0, len(route.Stops))
	for _, st := range route.Stops {
		snapshots = append(snapshots, domain.StopSnapshot{
			ID:       st.ID,
			Name:     st.Name,
			Address:  st.Address,
			Priority: st.Priority,
		})
	}

	saved := &domain.SavedRoute{
		ID:              uuid.New().String(),
		Name:            name,
		Stops:           snapshots,
		CompletedStops:  domain.StringArray{},
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		CreatedBy:       createdBy,
	}
	if err := s.routes.Create(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// ToggleStop flips a stop's membership in the route's completed set and
// persists the updated set.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - routeID: saved route ID.
//   - stopID: stop snapshot ID to toggle.
// Returns:
//   - *domain.SavedRoute: the route after the toggle.
//   - error: non-nil if lookup or the write fails.
func (s *RouteService) ToggleStop(ctx context.Context, routeID, stopID string) (*domain.SavedRoute, error) {
	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if route.CompletedStops.Contains(stopID) {
		kept := make(domain.StringArray, 0, len(route.CompletedStops))
		for _, id := range route.CompletedStops {
			if id != stopID {
				kept = append(kept, id)
			}
		}
		route.CompletedStops = kept
	} else {
		route.CompletedStops = append(route.CompletedStops, stopID)
	}

	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// Get retrieves a saved route by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: route ID.
// Returns:
//   - *domain.SavedRoute: the route.
//   - error: non-nil if lookup fails.
func (s *RouteService) Get(ctx context.Context, id string) (*domain.SavedRoute, error) {
	return s.routes.GetByID(ctx, id)
}

// List retrieves saved routes ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.SavedRoute: saved routes.
//   - error: non-nil if the query fails.
func (s *RouteService) List(ctx context.Context) ([]domain.SavedRoute, error) {
	return s.routes.List(ctx)
}

// Delete removes a saved route.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: route ID.
// Returns:
//   - error: non-nil if the delete fails.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	return s.routes.Delete(ctx, id)
}
