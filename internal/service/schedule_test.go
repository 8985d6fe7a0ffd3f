package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/watch"
	"gorm.io/gorm"
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *repository.CustomerRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	hub := watch.NewHub()
	t.Cleanup(hub.Close)

	jobs := repository.NewJobRepository(db, hub)
	customerRepo := repository.NewCustomerRepository(db, hub)
	customers := NewCustomerService(customerRepo)
	svc := NewScheduleService(jobs, customers, NewRecurrenceExpander(jobs), hub)
	return svc, customerRepo, db
}

func TestCreateJobDurationBounds(t *testing.T) {
	svc, _, db := newScheduleFixture(t)
	ctx := context.Background()

	err := svc.CreateJob(ctx, &domain.Job{
		CustomerName:      "Lee Park",
		ScheduledDate:     calendar.New(2025, 7, 4),
		EstimatedDuration: -15,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("negative duration: err = %v, want ErrValidation", err)
	}

	// Zero is unset; the column default fills in 60 minutes on insert.
	job := &domain.Job{
		CustomerName:  "Lee Park",
		ScheduledDate: calendar.New(2025, 7, 4),
	}
	if err := svc.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob returned error: %v", err)
	}
	var stored domain.Job
	if err := db.First(&stored, "id = ?", job.ID).Error; err != nil {
		t.Fatalf("reloading job: %v", err)
	}
	if stored.EstimatedDuration != 60 {
		t.Errorf("stored duration = %d, want default 60", stored.EstimatedDuration)
	}
}

func TestCreateJobDefaultsAndUpsert(t *testing.T) {
	svc, customers, _ := newScheduleFixture(t)
	ctx := context.Background()

	job := &domain.Job{
		CustomerName:    "Dana Reyes",
		Address:         "9 Oak Ln",
		ScheduledDate:   calendar.New(2025, 7, 4),
		ExpectedPayment: 80,
		Priority:        "HIGH",
	}
	if err := svc.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob returned error: %v", err)
	}

	if job.ID == "" {
		t.Error("CreateJob did not assign an ID")
	}
	if job.Status != domain.JobStatusScheduled {
		t.Errorf("status = %q, want scheduled", job.Status)
	}
	if job.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want normalized high", job.Priority)
	}

	customer, err := customers.GetByName(ctx, "Dana Reyes")
	if err != nil {
		t.Fatalf("job write did not upsert the customer: %v", err)
	}
	if customer.LifetimeSpend != 80 {
		t.Errorf("lifetime spend = %v, want 80", customer.LifetimeSpend)
	}
}

func TestCreateJobRecurringWithoutDateIsRefused(t *testing.T) {
	svc, _, _ := newScheduleFixture(t)

	err := svc.CreateJob(context.Background(), &domain.Job{
		CustomerName: "Dana Reyes",
		Recurrence:   domain.RecurrenceWeekly,
	})
	if err == nil {
		t.Fatal("CreateJob accepted a recurring job without a date")
	}
}

func TestToggleStatusFlipsAndUpserts(t *testing.T) {
	svc, customers, _ := newScheduleFixture(t)
	ctx := context.Background()

	job := &domain.Job{
		CustomerName:  "Lee Chang",
		ScheduledDate: calendar.New(2025, 7, 10),
		ActualPayment: 120,
	}
	if err := svc.CreateJob(ctx, job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	afterCreate, _ := customers.GetByName(ctx, "Lee Chang")

	toggled, err := svc.ToggleStatus(ctx, job.ID, "user-1")
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if toggled.Status != domain.JobStatusCompleted {
		t.Errorf("status after toggle = %q, want completed", toggled.Status)
	}

	afterComplete, _ := customers.GetByName(ctx, "Lee Chang")
	if afterComplete.LifetimeSpend != afterCreate.LifetimeSpend+120 {
		t.Errorf("completion did not add the payment: %v -> %v",
			afterCreate.LifetimeSpend, afterComplete.LifetimeSpend)
	}

	// Toggling back to scheduled must not touch spend.
	back, err := svc.ToggleStatus(ctx, job.ID, "user-1")
	if err != nil {
		t.Fatalf("second ToggleStatus: %v", err)
	}
	if back.Status != domain.JobStatusScheduled {
		t.Errorf("status after second toggle = %q, want scheduled", back.Status)
	}
	afterRevert, _ := customers.GetByName(ctx, "Lee Chang")
	if afterRevert.LifetimeSpend != afterComplete.LifetimeSpend {
		t.Errorf("reverting completion changed spend: %v -> %v",
			afterComplete.LifetimeSpend, afterRevert.LifetimeSpend)
	}
}

func TestJobsOnMergesLegacyDateColumn(t *testing.T) {
	svc, _, db := newScheduleFixture(t)
	ctx := context.Background()
	date := calendar.New(2025, 8, 1)

	// Older record written before the column rename.
	legacy := &domain.Job{ID: "legacy-1", CustomerName: "Old Record", LegacyServiceDate: date}
	// Record carrying both columns must not appear twice.
	both := &domain.Job{ID: "both-1", CustomerName: "Both", ScheduledDate: date, LegacyServiceDate: date}
	current := &domain.Job{ID: "current-1", CustomerName: "New Record", ScheduledDate: date, Priority: domain.PriorityCritical}
	for _, j := range []*domain.Job{legacy, both, current} {
		if err := db.Create(j).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	jobs, err := svc.JobsOn(ctx, date)
	if err != nil {
		t.Fatalf("JobsOn returned error: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("JobsOn returned %d jobs, want 3", len(jobs))
	}
	// Critical sorts first.
	if jobs[0].ID != "current-1" {
		t.Errorf("first job = %s, want the critical one", jobs[0].ID)
	}
	// Legacy dates are folded into the canonical field.
	for _, j := range jobs {
		if j.ID == "legacy-1" && !j.ScheduledDate.Equal(date) {
			t.Errorf("legacy job was not normalized: scheduled_date = %v", j.ScheduledDate)
		}
	}
}

func TestJobsBetweenWindowIsInclusive(t *testing.T) {
	svc, _, db := newScheduleFixture(t)
	ctx := context.Background()

	dates := []calendar.Date{
		calendar.New(2025, 8, 31),
		calendar.New(2025, 9, 1),
		calendar.New(2025, 9, 15),
		calendar.New(2025, 9, 30),
		calendar.New(2025, 10, 1),
	}
	for i, d := range dates {
		job := &domain.Job{ID: string(rune('a' + i)), ScheduledDate: d}
		if err := db.Create(job).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	jobs, err := svc.JobsBetween(ctx, calendar.New(2025, 9, 1), calendar.New(2025, 9, 30))
	if err != nil {
		t.Fatalf("JobsBetween returned error: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("window held %d jobs, want 3", len(jobs))
	}
	if !jobs[0].ScheduledDate.Equal(calendar.New(2025, 9, 1)) ||
		!jobs[len(jobs)-1].ScheduledDate.Equal(calendar.New(2025, 9, 30)) {
		t.Errorf("window edges missing: %v .. %v", jobs[0].ScheduledDate, jobs[len(jobs)-1].ScheduledDate)
	}
}

func TestWatchByDateDeliversSnapshots(t *testing.T) {
	svc, _, _ := newScheduleFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	date := calendar.New(2025, 9, 5)

	snapshots := make(chan []domain.Job, 8)
	sub, err := svc.WatchByDate(ctx, date, func(jobs []domain.Job) {
		snapshots <- jobs
	})
	if err != nil {
		t.Fatalf("WatchByDate returned error: %v", err)
	}
	defer sub.Cancel()

	// Initial snapshot arrives synchronously and is empty.
	select {
	case jobs := <-snapshots:
		if len(jobs) != 0 {
			t.Errorf("initial snapshot held %d jobs, want 0", len(jobs))
		}
	default:
		t.Fatal("no initial snapshot delivered")
	}

	if err := svc.CreateJob(ctx, &domain.Job{CustomerName: "Watcher", ScheduledDate: date}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	// The change signal triggers a re-query on a goroutine.
	select {
	case jobs := <-snapshots:
		if len(jobs) != 1 {
			t.Errorf("snapshot held %d jobs, want 1", len(jobs))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after job creation")
	}
}

func TestRemoveRecurrenceKeepsCompletedInstances(t *testing.T) {
	svc, _, db := newScheduleFixture(t)
	ctx := context.Background()

	future := calendar.Today().AddDays(7)
	parent := &domain.Job{
		CustomerName:      "Recurring Customer",
		ScheduledDate:     future,
		Recurrence:        domain.RecurrenceWeekly,
		RecurrenceEndDate: future.AddDays(28),
	}
	if err := svc.CreateJob(ctx, parent); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	// Mark the first generated instance completed.
	var first domain.Job
	if err := db.Where("parent_job_id = ?", parent.ID).Order("scheduled_date").First(&first).Error; err != nil {
		t.Fatalf("no generated instances: %v", err)
	}
	first.Status = domain.JobStatusCompleted
	if err := db.Save(&first).Error; err != nil {
		t.Fatalf("failed to complete instance: %v", err)
	}

	removed, err := svc.RemoveRecurrence(ctx, parent.ID)
	if err != nil {
		t.Fatalf("RemoveRecurrence returned error: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed %d instances, want 3", removed)
	}

	var remaining []domain.Job
	db.Where("parent_job_id = ?", parent.ID).Find(&remaining)
	if len(remaining) != 1 || remaining[0].Status != domain.JobStatusCompleted {
		t.Errorf("completed history not retained: %+v", remaining)
	}

	got, _ := svc.GetJob(ctx, parent.ID)
	if got.Recurrence != domain.RecurrenceNone {
		t.Errorf("parent recurrence = %q, want none", got.Recurrence)
	}
	if !got.RecurrenceEndDate.IsZero() {
		t.Errorf("parent recurrence end date not cleared: %v", got.RecurrenceEndDate)
	}
}
