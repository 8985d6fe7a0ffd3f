package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

// ContractService manages commercial contracts and HOA/condo properties.
// Both carry a list of service addresses the route planner explodes into
// individual stops.
type ContractService struct {
	contracts  *repository.ContractRepository
	properties *repository.PropertyRepository
}

// NewContractService creates a new ContractService.
// Parameters:
//   - contracts: commercial contract repository.
//   - properties: HOA/condo property repository.
// Returns:
//   - *ContractService: initialized service.
func NewContractService(contracts *repository.ContractRepository, properties *repository.PropertyRepository) *ContractService {
	return &ContractService{contracts: contracts, properties: properties}
}

// CreateContract validates and persists a commercial contract.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - contract: contract to create; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *ContractService) CreateContract(ctx context.Context, contract *domain.CommercialContract) error {
	if err := validateContract(contract); err != nil {
		return err
	}
	if contract.ID == "" {
		contract.ID = uuid.New().String()
	}
	return s.contracts.Create(ctx, contract)
}

// UpdateContract validates and persists changes to a contract.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - contract: contract with updated fields; ID must be set.
// Returns:
//   - error: ErrValidation on bad input, repository.ErrNotFound if missing.
func (s *ContractService) UpdateContract(ctx context.Context, contract *domain.CommercialContract) error {
	if contract.ID == "" {
		return validationf("contract id is required")
	}
	if err := validateContract(contract); err != nil {
		return err
	}
	return s.contracts.Update(ctx, contract)
}

// DeleteContract removes a contract.
func (s *ContractService) DeleteContract(ctx context.Context, id string) error {
	return s.contracts.Delete(ctx, id)
}

// GetContract retrieves a contract by ID.
func (s *ContractService) GetContract(ctx context.Context, id string) (*domain.CommercialContract, error) {
	return s.contracts.GetByID(ctx, id)
}

// ListContracts retrieves all contracts.
func (s *ContractService) ListContracts(ctx context.Context) ([]domain.CommercialContract, error) {
	return s.contracts.List(ctx)
}

func validateContract(contract *domain.CommercialContract) error {
	if contract.OrganizationName == "" {
		return validationf("organization name is required")
	}
	if len(contract.ServiceAddresses) > domain.MaxContractAddresses {
		return validationf("a contract holds at most %d service addresses, got %d",
			domain.MaxContractAddresses, len(contract.ServiceAddresses))
	}
	return nil
}

// CreateProperty validates and persists an HOA/condo property.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - property: property to create; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *ContractService) CreateProperty(ctx context.Context, property *domain.HOAProperty) error {
	if err := validateProperty(property); err != nil {
		return err
	}
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	return s.properties.Create(ctx, property)
}

// UpdateProperty validates and persists changes to a property.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - property: property with updated fields; ID must be set.
// Returns:
//   - error: ErrValidation on bad input, repository.ErrNotFound if missing.
func (s *ContractService) UpdateProperty(ctx context.Context, property *domain.HOAProperty) error {
	if property.ID == "" {
		return validationf("property id is required")
	}
	if err := validateProperty(property); err != nil {
		return err
	}
	return s.properties.Update(ctx, property)
}

// DeleteProperty removes a property.
func (s *ContractService) DeleteProperty(ctx context.Context, id string) error {
	return s.properties.Delete(ctx, id)
}

// GetProperty retrieves a property by ID.
func (s *ContractService) GetProperty(ctx context.Context, id string) (*domain.HOAProperty, error) {
	return s.properties.GetByID(ctx, id)
}

// ListProperties retrieves all HOA/condo properties.
func (s *ContractService) ListProperties(ctx context.Context) ([]domain.HOAProperty, error) {
	return s.properties.List(ctx)
}

func validateProperty(property *domain.HOAProperty) error {
	if property.OrganizationName == "" {
		return validationf("organization name is required")
	}
	if len(property.ServiceAddresses) > domain.MaxPropertyAddresses {
		return validationf("a property holds at most %d service addresses, got %d",
			domain.MaxPropertyAddresses, len(property.ServiceAddresses))
	}
	return nil
}
