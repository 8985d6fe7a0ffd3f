package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/repository"
)

// RecurrenceExpander generates future job instances from a repeating-schedule
// template. Expansion is idempotent: an instance is keyed by (parent, date)
// and an existing pair is skipped without error, so re-expanding an
// overlapping window never duplicates work.
type RecurrenceExpander struct {
	jobs *repository.JobRepository
}

// NewRecurrenceExpander creates a new RecurrenceExpander.
// Parameters:
//   - jobs: job repository used for existence checks and instance creation.
// Returns:
//   - *RecurrenceExpander: initialized expander.
func NewRecurrenceExpander(jobs *repository.JobRepository) *RecurrenceExpander {
	return &RecurrenceExpander{jobs: jobs}
}

// nextDate advances a candidate date by one rule period.
func nextDate(d calendar.Date, rule domain.RecurrenceRule) calendar.Date {
	switch rule {
	case domain.RecurrenceWeekly:
		return d.AddDays(7)
	case domain.RecurrenceBiweekly:
		return d.AddDays(14)
	case domain.RecurrenceMonthly:
		return d.AddMonths(1)
	default:
		return d
	}
}

// Expand generates instances for a persisted template job. The template's
// own date is never regenerated; candidates run from one period after the
// start date up to and including the end date (explicit recurrence end date,
// else exactly one year after the start).
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - parent: persisted template job carrying the recurrence rule.
// Returns:
//   - []calendar.Date: dates of the newly created instances.
//   - error: ErrMissingStartDate if the template has no date; store errors
//     abort the loop with the instances created so far already persisted.
func (e *RecurrenceExpander) Expand(ctx context.Context, parent *domain.Job) ([]calendar.Date, error) {
	if parent.Recurrence == "" || parent.Recurrence == domain.RecurrenceNone {
		return nil, nil
	}

	start := parent.EffectiveDate()
	if start.IsZero() {
		return nil, ErrMissingStartDate
	}

	end := parent.RecurrenceEndDate
	if end.IsZero() {
		end = start.AddYears(1)
	}

	var created []calendar.Date
	for d := nextDate(start, parent.Recurrence); !d.After(end); d = nextDate(d, parent.Recurrence) {
		exists, err := e.jobs.ExistsInstance(ctx, parent.ID, d)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := e.jobs.Create(ctx, e.instance(parent, d)); err != nil {
			return created, err
		}
		created = append(created, d)
	}

	if len(created) > 0 {
		logger.CtxInfo(ctx, "Recurrence expanded: parent=%s, rule=%s, created=%d",
			parent.ID, parent.Recurrence, len(created))
	}
	return created, nil
}

// instance builds one generated job from the template. Payments reset,
// status resets to scheduled, and the recurrence rule is cleared so the
// instance is never itself re-expanded.
func (e *RecurrenceExpander) instance(parent *domain.Job, date calendar.Date) *domain.Job {
	return &domain.Job{
		ID:                uuid.New().String(),
		CustomerName:      parent.CustomerName,
		Address:           parent.Address,
		ServiceType:       parent.ServiceType,
		EstimatedDuration: parent.EstimatedDuration,
		Priority:          parent.Priority,
		ScheduledDate:     date,
		Status:            domain.JobStatusScheduled,
		PaymentMethod:     parent.PaymentMethod,
		PaymentStatus:     domain.PaymentPending,
		Recurrence:        domain.RecurrenceNone,
		ParentJobID:       parent.ID,
		Notes:             parent.Notes,
		CreatedBy:         parent.CreatedBy,
	}
}
