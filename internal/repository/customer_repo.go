package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/watch"
	"gorm.io/gorm"
)

// CollectionCustomers is the watch-hub collection name for customer changes.
const CollectionCustomers = "customers"

// CustomerRepository handles customer data operations.
type CustomerRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewCustomerRepository creates a new CustomerRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//   - hub: change-notification hub; may be nil for untracked use.
// Returns:
//   - *CustomerRepository: repository instance bound to db.
func NewCustomerRepository(db *gorm.DB, hub *watch.Hub) *CustomerRepository {
	return &CustomerRepository{db: db, hub: hub}
}

func (r *CustomerRepository) notify() {
	if r.hub != nil {
		r.hub.Notify(CollectionCustomers)
	}
}

// Create inserts a new customer record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - customer: customer record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Update saves an existing customer record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - customer: customer record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Delete removes a customer by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: customer ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// GetByID retrieves a customer by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: customer ID.
// Returns:
//   - *domain.Customer: customer record if found.
//   - error: non-nil if lookup fails.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &customer, nil
}

// GetByName retrieves a customer by exact name match, the de-facto key used
// by the service-completion upsert.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: customer name.
// Returns:
//   - *domain.Customer: customer record if found.
//   - error: ErrNotFound if no customer has the name; other non-nil on failure.
func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.db.WithContext(ctx).First(&customer, "name = ?", name).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &customer, nil
}

// List retrieves customers ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return; 0 means no limit.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Customer: customer records.
//   - error: non-nil if the query fails.
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	var customers []domain.Customer
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&customers).Error; err != nil {
		return nil, wrapErr(err)
	}
	return customers, nil
}

// ListByStatus retrieves customers with the given status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: customer status to filter by.
// Returns:
//   - []domain.Customer: matching customer records.
//   - error: non-nil if the query fails.
func (r *CustomerRepository) ListByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		return nil, wrapErr(err)
	}
	return customers, nil
}
