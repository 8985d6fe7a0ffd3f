package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"gorm.io/gorm"
)

// PropertyRepository handles HOA/condo property data operations.
type PropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new PropertyRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PropertyRepository: repository instance bound to db.
func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create inserts a new property record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - property: property record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *PropertyRepository) Create(ctx context.Context, property *domain.HOAProperty) error {
	return wrapErr(r.db.WithContext(ctx).Create(property).Error)
}

// Update saves an existing property record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - property: property record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *PropertyRepository) Update(ctx context.Context, property *domain.HOAProperty) error {
	return wrapErr(r.db.WithContext(ctx).Save(property).Error)
}

// Delete removes a property by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: property ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return wrapErr(r.db.WithContext(ctx).Delete(&domain.HOAProperty{}, "id = ?", id).Error)
}

// GetByID retrieves a property by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: property ID.
// Returns:
//   - *domain.HOAProperty: property record if found.
//   - error: non-nil if lookup fails.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.HOAProperty, error) {
	var property domain.HOAProperty
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &property, nil
}

// List retrieves all properties ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.HOAProperty: property records.
//   - error: non-nil if the query fails.
func (r *PropertyRepository) List(ctx context.Context) ([]domain.HOAProperty, error) {
	var properties []domain.HOAProperty
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, wrapErr(err)
	}
	return properties, nil
}
