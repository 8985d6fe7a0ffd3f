package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

// LeadService manages the sales pipeline.
type LeadService struct {
	leads *repository.LeadRepository
}

// NewLeadService creates a new LeadService.
// Parameters:
//   - leads: lead repository.
// Returns:
//   - *LeadService: initialized service.
func NewLeadService(leads *repository.LeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// Create validates and persists a new lead.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - lead: lead to create; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *LeadService) Create(ctx context.Context, lead *domain.Lead) error {
	if lead.Name == "" {
		return validationf("lead name is required")
	}
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}
	lead.Priority = domain.ParsePriority(string(lead.Priority))
	return s.leads.Create(ctx, lead)
}

// Update validates and saves an edited lead.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - lead: lead with updated fields.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *LeadService) Update(ctx context.Context, lead *domain.Lead) error {
	if lead.Name == "" {
		return validationf("lead name is required")
	}
	lead.Priority = domain.ParsePriority(string(lead.Priority))
	return s.leads.Update(ctx, lead)
}

// Delete removes a lead.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: lead ID.
// Returns:
//   - error: non-nil if the delete fails.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	return s.leads.Delete(ctx, id)
}

// Get retrieves a lead by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: lead ID.
// Returns:
//   - *domain.Lead: lead record.
//   - error: non-nil if lookup fails.
func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

// List retrieves leads ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum records to return; 0 means no limit.
//   - offset: records to skip.
// Returns:
//   - []domain.Lead: lead records.
//   - error: non-nil if the query fails.
func (s *LeadService) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	return s.leads.List(ctx, limit, offset)
}

// MarkContacted records an explicit contact attempt: the contact counter
// increments and a brand-new lead moves to the contacted stage. Leads
// already further down the pipeline keep their stage.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: lead ID.
// Returns:
//   - *domain.Lead: the lead after the update.
//   - error: non-nil if lookup or the write fails.
func (s *LeadService) MarkContacted(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.ContactCount++
	if lead.Status == domain.LeadNew {
		lead.Status = domain.LeadContacted
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
