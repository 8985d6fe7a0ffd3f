package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"gorm.io/gorm"
)

// ContractRepository handles commercial contract data operations.
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new ContractRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ContractRepository: repository instance bound to db.
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts a new contract record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - contract: contract record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *ContractRepository) Create(ctx context.Context, contract *domain.CommercialContract) error {
	return wrapErr(r.db.WithContext(ctx).Create(contract).Error)
}

// Update saves an existing contract record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - contract: contract record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *ContractRepository) Update(ctx context.Context, contract *domain.CommercialContract) error {
	return wrapErr(r.db.WithContext(ctx).Save(contract).Error)
}

// Delete removes a contract by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: contract ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	return wrapErr(r.db.WithContext(ctx).Delete(&domain.CommercialContract{}, "id = ?", id).Error)
}

// GetByID retrieves a contract by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: contract ID.
// Returns:
//   - *domain.CommercialContract: contract record if found.
//   - error: non-nil if lookup fails.
func (r *ContractRepository) GetByID(ctx context.Context, id string) (*domain.CommercialContract, error) {
	var contract domain.CommercialContract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &contract, nil
}

// List retrieves all contracts ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.CommercialContract: contract records.
//   - error: non-nil if the query fails.
func (r *ContractRepository) List(ctx context.Context) ([]domain.CommercialContract, error) {
	var contracts []domain.CommercialContract
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, wrapErr(err)
	}
	return contracts, nil
}
