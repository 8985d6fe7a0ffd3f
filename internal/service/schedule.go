package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/watch"
)

// ScheduleService is the write path for jobs and the owner of the two job
// live queries. Every successful job write that carries a customer name
// also feeds the customer upsert; that side effect is best-effort and never
// blocks or rolls back the job write itself.
type ScheduleService struct {
	jobs       *repository.JobRepository
	customers  *CustomerService
	recurrence *RecurrenceExpander
	hub        *watch.Hub
}

// NewScheduleService creates a new ScheduleService.
// Parameters:
//   - jobs: job repository.
//   - customers: customer service for the completion upsert.
//   - recurrence: expander for recurring templates.
//   - hub: change-notification hub backing the live queries.
// Returns:
//   - *ScheduleService: initialized service.
func NewScheduleService(
	jobs *repository.JobRepository,
	customers *CustomerService,
	recurrence *RecurrenceExpander,
	hub *watch.Hub,
) *ScheduleService {
	return &ScheduleService{
		jobs:       jobs,
		customers:  customers,
		recurrence: recurrence,
		hub:        hub,
	}
}

func (s *ScheduleService) validate(job *domain.Job) error {
	// Zero is "unset": the column's default of 60 minutes applies on insert.
	if job.EstimatedDuration < 0 {
		return validationf("estimated duration cannot be negative")
	}
	if job.ExpectedPayment < 0 || job.ActualPayment < 0 {
		return validationf("payments cannot be negative")
	}
	if job.Recurrence != "" && job.Recurrence != domain.RecurrenceNone && job.EffectiveDate().IsZero() {
		return ErrMissingStartDate
	}
	return nil
}

// CreateJob validates and persists a job, runs the customer upsert, and
// expands the recurrence rule if one is set.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job to create; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure. Upsert
//     failures are logged, not returned.
func (s *ScheduleService) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := s.validate(job); err != nil {
		return err
	}
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusScheduled
	}
	if job.PaymentStatus == "" {
		job.PaymentStatus = domain.PaymentPending
	}
	if job.Recurrence == "" {
		job.Recurrence = domain.RecurrenceNone
	}
	job.Priority = domain.ParsePriority(string(job.Priority))

	if err := s.jobs.Create(ctx, job); err != nil {
		return err
	}
	s.upsertCustomer(ctx, job)

	if job.Recurrence != domain.RecurrenceNone {
		if _, err := s.recurrence.Expand(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// UpdateJob validates and saves an edited job, runs the customer upsert,
// and re-expands recurrence. Expansion is idempotent, so re-running it for
// an unchanged rule creates nothing new.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job with updated fields.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *ScheduleService) UpdateJob(ctx context.Context, job *domain.Job) error {
	if err := s.validate(job); err != nil {
		return err
	}
	job.Priority = domain.ParsePriority(string(job.Priority))

	if err := s.jobs.Update(ctx, job); err != nil {
		return err
	}
	s.upsertCustomer(ctx, job)

	if job.Recurrence != "" && job.Recurrence != domain.RecurrenceNone && job.ParentJobID == "" {
		if _, err := s.recurrence.Expand(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// DeleteJob removes a job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
// Returns:
//   - error: non-nil if the delete fails.
func (s *ScheduleService) DeleteJob(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

// GetJob retrieves a job by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
// Returns:
//   - *domain.Job: job record.
//   - error: non-nil if lookup fails.
func (s *ScheduleService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// ToggleStatus flips a job between scheduled and completed. These are the
// only two states and the only transition. A job arriving in completed runs
// the customer upsert with the job's service payment.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
//   - updatedBy: authenticated identity for attribution; may be empty.
// Returns:
//   - *domain.Job: the job after the toggle.
//   - error: non-nil if lookup or the write fails.
func (s *ScheduleService) ToggleStatus(ctx context.Context, id, updatedBy string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status == domain.JobStatusCompleted {
		job.Status = domain.JobStatusScheduled
	} else {
		job.Status = domain.JobStatusCompleted
	}
	if updatedBy != "" {
		job.UpdatedBy = updatedBy
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusCompleted {
		s.upsertCustomer(ctx, job)
	}
	return job, nil
}

// RemoveRecurrence clears a parent job's recurrence fields and deletes every
// future, not-yet-completed generated instance. Completed history stays.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - parentID: template job ID.
// Returns:
//   - int64: number of instances deleted.
//   - error: non-nil if lookup or a write fails.
func (s *ScheduleService) RemoveRecurrence(ctx context.Context, parentID string) (int64, error) {
	parent, err := s.jobs.GetByID(ctx, parentID)
	if err != nil {
		return 0, err
	}

	deleted, err := s.jobs.DeleteScheduledInstances(ctx, parentID, calendar.Today())
	if err != nil {
		return 0, err
	}

	parent.Recurrence = domain.RecurrenceNone
	parent.RecurrenceEndDate = calendar.Date{}
	if err := s.jobs.Update(ctx, parent); err != nil {
		return deleted, err
	}

	logger.CtxInfo(ctx, "Recurrence removed: parent=%s, instances_deleted=%d", parentID, deleted)
	return deleted, nil
}

// JobsOn lists jobs scheduled on one date, merged across the legacy and
// current date columns.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: exact scheduled date.
// Returns:
//   - []domain.Job: jobs for the date.
//   - error: non-nil if the query fails.
func (s *ScheduleService) JobsOn(ctx context.Context, date calendar.Date) ([]domain.Job, error) {
	return s.jobs.ListByDate(ctx, date)
}

// JobsBetween lists jobs inside the inclusive [start, end] window.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - start: first day of the window.
//   - end: last day of the window.
// Returns:
//   - []domain.Job: jobs inside the window.
//   - error: non-nil if the query fails.
func (s *ScheduleService) JobsBetween(ctx context.Context, start, end calendar.Date) ([]domain.Job, error) {
	return s.jobs.ListByRange(ctx, start, end)
}

// WatchByDate delivers the full job list for one date, immediately and then
// again after every job change. Each delivery is a complete replacement
// snapshot, never a delta. The watch ends when ctx is cancelled or the
// returned handle is cancelled; a query result arriving after that is
// discarded, not delivered.
// Parameters:
//   - ctx: context bounding the watch lifetime.
//   - date: exact scheduled date to watch.
//   - fn: consumer invoked with each snapshot.
// Returns:
//   - *watch.Subscription: cancellation handle owned by the caller.
//   - error: non-nil if the initial query fails.
func (s *ScheduleService) WatchByDate(ctx context.Context, date calendar.Date, fn func([]domain.Job)) (*watch.Subscription, error) {
	return s.watchJobs(ctx, fn, func(ctx context.Context) ([]domain.Job, error) {
		return s.jobs.ListByDate(ctx, date)
	})
}

// WatchByRange delivers the full job list for a date window, immediately and
// then again after every job change, with the same snapshot contract as
// WatchByDate.
// Parameters:
//   - ctx: context bounding the watch lifetime.
//   - start: first day of the window.
//   - end: last day of the window.
//   - fn: consumer invoked with each snapshot.
// Returns:
//   - *watch.Subscription: cancellation handle owned by the caller.
//   - error: non-nil if the initial query fails.
func (s *ScheduleService) WatchByRange(ctx context.Context, start, end calendar.Date, fn func([]domain.Job)) (*watch.Subscription, error) {
	return s.watchJobs(ctx, fn, func(ctx context.Context) ([]domain.Job, error) {
		return s.jobs.ListByRange(ctx, start, end)
	})
}

func (s *ScheduleService) watchJobs(ctx context.Context, fn func([]domain.Job), query func(context.Context) ([]domain.Job, error)) (*watch.Subscription, error) {
	sub := s.hub.Subscribe(repository.CollectionJobs)

	push := func() error {
		jobs, err := query(ctx)
		if err != nil {
			return err
		}
		// A snapshot that finishes after the watch is closed must be
		// discarded, never applied.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(jobs)
		return nil
	}

	if err := push(); err != nil {
		sub.Cancel()
		return nil, err
	}

	go func() {
		defer sub.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				if err := push(); err != nil {
					if ctx.Err() == nil {
						logger.CtxError(ctx, "Live query refresh failed: %v", err)
					}
				}
			}
		}
	}()
	return sub, nil
}

// upsertCustomer feeds a job write into the customer record. Best-effort:
// a failure here is logged and never surfaced to the user or allowed to
// undo the job write that triggered it.
func (s *ScheduleService) upsertCustomer(ctx context.Context, job *domain.Job) {
	if job.CustomerName == "" {
		return
	}
	date := job.EffectiveDate()
	if date.IsZero() {
		date = calendar.Today()
	}
	if err := s.customers.RecordService(ctx, job.CustomerName, job.Address, job.ServicePayment(), date); err != nil {
		logger.CtxWarn(ctx, "Customer upsert failed for job %s: %v", job.ID, err)
	}
}
