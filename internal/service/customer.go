package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

// CustomerService manages CRM customer records and the service-completion
// upsert.
type CustomerService struct {
	customers *repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
// Parameters:
//   - customers: customer repository.
// Returns:
//   - *CustomerService: initialized service.
func NewCustomerService(customers *repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create validates and persists a new customer record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - customer: customer to create; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *CustomerService) Create(ctx context.Context, customer *domain.Customer) error {
	if err := s.validate(customer); err != nil {
		return err
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.Status == "" {
		customer.Status = domain.CustomerActive
	}
	customer.Priority = domain.ParsePriority(string(customer.Priority))
	return s.customers.Create(ctx, customer)
}

// Update validates and saves an existing customer record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - customer: customer with updated fields.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *CustomerService) Update(ctx context.Context, customer *domain.Customer) error {
	if err := s.validate(customer); err != nil {
		return err
	}
	customer.Priority = domain.ParsePriority(string(customer.Priority))
	return s.customers.Update(ctx, customer)
}

// Delete removes a customer record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: customer ID.
// Returns:
//   - error: non-nil if the delete fails.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// Get retrieves a customer by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: customer ID.
// Returns:
//   - *domain.Customer: customer record.
//   - error: non-nil if lookup fails.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// List retrieves customers ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum records to return; 0 means no limit.
//   - offset: records to skip.
// Returns:
//   - []domain.Customer: customer records.
//   - error: non-nil if the query fails.
func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return s.customers.List(ctx, limit, offset)
}

// ListByStatus retrieves customers with the given account standing.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: customer status to filter by.
// Returns:
//   - []domain.Customer: matching customer records.
//   - error: non-nil if the query fails.
func (s *CustomerService) ListByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	return s.customers.ListByStatus(ctx, status)
}

func (s *CustomerService) validate(customer *domain.Customer) error {
	if customer.Name == "" {
		return validationf("customer name is required")
	}
	if len(customer.SubAddresses) > domain.MaxCustomerSubAddresses {
		return validationf("at most %d sub-addresses allowed, got %d",
			domain.MaxCustomerSubAddresses, len(customer.SubAddresses))
	}
	return nil
}

// RecordService applies a serviced job to the matching customer record,
// found by exact name. An existing customer gets the service date, the
// payment added to lifetime spend, and the address replaced only when the
// job supplies one; a missing customer is created seeded with this job's
// payment. Spend only accumulates; nothing ever decrements it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: job's customer name (exact match key).
//   - address: job's address; empty leaves the stored address untouched.
//   - payment: amount the service contributes to lifetime spend.
//   - date: the date the service occurred.
// Returns:
//   - error: non-nil if the lookup or write fails. Callers treat this as
//     best-effort and only log it.
func (s *CustomerService) RecordService(ctx context.Context, name, address string, payment float64, date calendar.Date) error {
	existing, err := s.customers.GetByName(ctx, name)
	switch {
	case err == nil:
		existing.LastServiceDate = date
		existing.LifetimeSpend += payment
		if address != "" {
			existing.Address = address
		}
		return s.customers.Update(ctx, existing)
	case errors.Is(err, repository.ErrNotFound):
		return s.customers.Create(ctx, &domain.Customer{
			ID:              uuid.New().String(),
			Name:            name,
			Address:         address,
			Status:          domain.CustomerActive,
			Priority:        domain.PriorityNormal,
			LifetimeSpend:   payment,
			LastServiceDate: date,
		})
	default:
		return err
	}
}
