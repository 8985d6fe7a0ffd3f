package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/watch"
	"gorm.io/gorm"
)

// CollectionLeads is the watch-hub collection name for lead changes.
const CollectionLeads = "leads"

// LeadRepository handles lead data operations.
type LeadRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewLeadRepository creates a new LeadRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//   - hub: change-notification hub; may be nil for untracked use.
// Returns:
//   - *LeadRepository: repository instance bound to db.
func NewLeadRepository(db *gorm.DB, hub *watch.Hub) *LeadRepository {
	return &LeadRepository{db: db, hub: hub}
}

func (r *LeadRepository) notify() {
	if r.hub != nil {
		r.hub.Notify(CollectionLeads)
	}
}

// Create inserts a new lead record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - lead: lead record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Update saves an existing lead record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - lead: lead record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *LeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	if err := r.db.WithContext(ctx).Save(lead).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Delete removes a lead by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: lead ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// GetByID retrieves a lead by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: lead ID.
// Returns:
//   - *domain.Lead: lead record if found.
//   - error: non-nil if lookup fails.
func (r *LeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &lead, nil
}

// List retrieves leads ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return; 0 means no limit.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Lead: lead records.
//   - error: non-nil if the query fails.
func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	var leads []domain.Lead
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&leads).Error; err != nil {
		return nil, wrapErr(err)
	}
	return leads, nil
}
