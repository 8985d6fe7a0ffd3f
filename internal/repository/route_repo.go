package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"gorm.io/gorm"
)

// RouteRepository handles saved-route data operations.
type RouteRepository struct {
	db *gorm.DB
}

// NewRouteRepository creates a new RouteRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *RouteRepository: repository instance bound to db.
func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new saved route.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - route: route snapshot to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *RouteRepository) Create(ctx context.Context, route *domain.SavedRoute) error {
	return wrapErr(r.db.WithContext(ctx).Create(route).Error)
}

// Update saves an existing route record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - route: route record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *RouteRepository) Update(ctx context.Context, route *domain.SavedRoute) error {
	return wrapErr(r.db.WithContext(ctx).Save(route).Error)
}

// Delete removes a saved route by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: route ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	return wrapErr(r.db.WithContext(ctx).Delete(&domain.SavedRoute{}, "id = ?", id).Error)
}

// GetByID retrieves a saved route by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: route ID.
// Returns:
//   - *domain.SavedRoute: route record if found.
//   - error: non-nil if lookup fails.
func (r *RouteRepository) GetByID(ctx context.Context, id string) (*domain.SavedRoute, error) {
	var route domain.SavedRoute
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &route, nil
}

// List retrieves saved routes ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.SavedRoute: route records.
//   - error: non-nil if the query fails.
func (r *RouteRepository) List(ctx context.Context) ([]domain.SavedRoute, error) {
	var routes []domain.SavedRoute
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&routes).Error; err != nil {
		return nil, wrapErr(err)
	}
	return routes, nil
}
