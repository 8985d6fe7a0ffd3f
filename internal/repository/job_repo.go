package repository

import (
	"context"
	"sort"

	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/watch"
	"gorm.io/gorm"
)

// CollectionJobs is the watch-hub collection name for job changes.
const CollectionJobs = "jobs"

// JobRepository handles job data operations. Every successful mutation
// signals the watch hub so live queries can push a fresh snapshot.
type JobRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewJobRepository creates a new JobRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//   - hub: change-notification hub; may be nil for untracked use.
// Returns:
//   - *JobRepository: repository instance bound to db.
func NewJobRepository(db *gorm.DB, hub *watch.Hub) *JobRepository {
	return &JobRepository{db: db, hub: hub}
}

func (r *JobRepository) notify() {
	if r.hub != nil {
		r.hub.Notify(CollectionJobs)
	}
}

// Create inserts a new job record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Update saves an existing job record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// Delete removes a job by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id).Error; err != nil {
		return wrapErr(err)
	}
	r.notify()
	return nil
}

// GetByID retrieves a job by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
// Returns:
//   - *domain.Job: job record if found.
//   - error: non-nil if lookup fails.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	normalize(&job)
	return &job, nil
}

// ListByDate retrieves all jobs scheduled on a single date. Older records
// carry the date in the legacy service_date column, so two queries run and
// merge, deduplicated by ID, sorted priority rank then creation order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: exact scheduled date.
// Returns:
//   - []domain.Job: merged, sorted jobs for the date.
//   - error: non-nil if a query fails.
func (r *JobRepository) ListByDate(ctx context.Context, date calendar.Date) ([]domain.Job, error) {
	var current, legacy []domain.Job
	if err := r.db.WithContext(ctx).
		Where("scheduled_date = ?", date.String()).
		Find(&current).Error; err != nil {
		return nil, wrapErr(err)
	}
	if err := r.db.WithContext(ctx).
		Where("service_date = ?", date.String()).
		Find(&legacy).Error; err != nil {
		return nil, wrapErr(err)
	}

	seen := make(map[string]bool, len(current)+len(legacy))
	merged := make([]domain.Job, 0, len(current)+len(legacy))
	for _, j := range append(current, legacy...) {
		if seen[j.ID] {
			continue
		}
		seen[j.ID] = true
		normalize(&j)
		merged = append(merged, j)
	}

	sort.SliceStable(merged, func(i, k int) bool {
		if merged[i].Priority.Rank() != merged[k].Priority.Rank() {
			return merged[i].Priority.Rank() < merged[k].Priority.Rank()
		}
		return merged[i].CreatedAt.Before(merged[k].CreatedAt)
	})
	return merged, nil
}

// ListByRange retrieves all jobs whose effective date falls inside the
// inclusive [start, end] window. The store offers no server-side range
// filter across both date columns, so the collection is fetched and
// filtered here, sorted date then priority.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - start: first day of the window.
//   - end: last day of the window.
// Returns:
//   - []domain.Job: jobs inside the window.
//   - error: non-nil if the query fails.
func (r *JobRepository) ListByRange(ctx context.Context, start, end calendar.Date) ([]domain.Job, error) {
	var all []domain.Job
	if err := r.db.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, wrapErr(err)
	}

	jobs := make([]domain.Job, 0, len(all))
	for _, j := range all {
		normalize(&j)
		d := j.ScheduledDate
		if d.IsZero() || d.Before(start) || d.After(end) {
			continue
		}
		jobs = append(jobs, j)
	}

	sort.SliceStable(jobs, func(i, k int) bool {
		if c := jobs[i].ScheduledDate.Compare(jobs[k].ScheduledDate); c != 0 {
			return c < 0
		}
		return jobs[i].Priority.Rank() < jobs[k].Priority.Rank()
	})
	return jobs, nil
}

// ExistsInstance checks whether a generated instance already exists for a
// (parent, date) pair. The recurrence expander uses this to skip duplicates.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - parentID: originating job ID.
//   - date: candidate instance date.
// Returns:
//   - bool: true if an instance exists.
//   - error: non-nil if the lookup fails.
func (r *JobRepository) ExistsInstance(ctx context.Context, parentID string, date calendar.Date) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("parent_job_id = ? AND scheduled_date = ?", parentID, date.String()).
		Count(&count).Error; err != nil {
		return false, wrapErr(err)
	}
	return count > 0, nil
}

// ListByParent retrieves every generated instance referencing a parent job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - parentID: originating job ID.
// Returns:
//   - []domain.Job: generated instances.
//   - error: non-nil if the query fails.
func (r *JobRepository) ListByParent(ctx context.Context, parentID string) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).
		Where("parent_job_id = ?", parentID).
		Order("scheduled_date").
		Find(&jobs).Error; err != nil {
		return nil, wrapErr(err)
	}
	for i := range jobs {
		normalize(&jobs[i])
	}
	return jobs, nil
}

// DeleteScheduledInstances removes every not-yet-completed generated
// instance of a parent dated on or after from. Completed instances are
// retained as service history.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - parentID: originating job ID.
//   - from: earliest date to delete (usually today).
// Returns:
//   - int64: number of instances deleted.
//   - error: non-nil if the delete fails.
func (r *JobRepository) DeleteScheduledInstances(ctx context.Context, parentID string, from calendar.Date) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("parent_job_id = ? AND status = ? AND scheduled_date >= ?",
			parentID, domain.JobStatusScheduled, from.String()).
		Delete(&domain.Job{})
	if res.Error != nil {
		return 0, wrapErr(res.Error)
	}
	if res.RowsAffected > 0 {
		r.notify()
	}
	return res.RowsAffected, nil
}

// normalize folds the legacy service_date column into the canonical
// scheduled date before any scheduling logic sees the record.
func normalize(j *domain.Job) {
	if j.ScheduledDate.IsZero() && !j.LegacyServiceDate.IsZero() {
		j.ScheduledDate = j.LegacyServiceDate
	}
	j.Priority = domain.ParsePriority(string(j.Priority))
	if j.Status == "" {
		j.Status = domain.JobStatusScheduled
	}
	if j.Recurrence == "" {
		j.Recurrence = domain.RecurrenceNone
	}
}
