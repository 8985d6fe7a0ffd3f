package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmaddox/groundops/internal/calendar"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
)

func newExpanderFixture(t *testing.T) (*RecurrenceExpander, *repository.JobRepository) {
	t.Helper()
	jobs := repository.NewJobRepository(newTestDB(t), nil)
	return NewRecurrenceExpander(jobs), jobs
}

func mustCreateJob(t *testing.T, jobs *repository.JobRepository, job *domain.Job) {
	t.Helper()
	if err := jobs.Create(context.Background(), job); err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
}

func TestExpandWeeklyWithExplicitEnd(t *testing.T) {
	expander, jobs := newExpanderFixture(t)
	ctx := context.Background()

	parent := &domain.Job{
		ID:                "parent-1",
		CustomerName:      "Hilltop HOA",
		ScheduledDate:     calendar.New(2025, 1, 1),
		Recurrence:        domain.RecurrenceWeekly,
		RecurrenceEndDate: calendar.New(2025, 1, 22),
		ExpectedPayment:   150,
		Status:            domain.JobStatusScheduled,
	}
	mustCreateJob(t, jobs, parent)

	created, err := expander.Expand(ctx, parent)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}

	want := []calendar.Date{
		calendar.New(2025, 1, 8),
		calendar.New(2025, 1, 15),
		calendar.New(2025, 1, 22),
	}
	if len(created) != len(want) {
		t.Fatalf("created %d instances, want %d: %v", len(created), len(want), created)
	}
	for i, d := range want {
		if !created[i].Equal(d) {
			t.Errorf("instance %d scheduled %v, want %v", i, created[i], d)
		}
	}

	// The template's own date is never regenerated as an instance.
	instances, err := jobs.ListByParent(ctx, parent.ID)
	if err != nil {
		t.Fatalf("ListByParent returned error: %v", err)
	}
	for _, inst := range instances {
		if inst.ScheduledDate.Equal(parent.ScheduledDate) {
			t.Errorf("instance generated on the template's own date %v", parent.ScheduledDate)
		}
		if inst.ExpectedPayment != 0 || inst.ActualPayment != 0 {
			t.Errorf("instance %s carries payments %v/%v, want zeroed",
				inst.ID, inst.ExpectedPayment, inst.ActualPayment)
		}
		if inst.Recurrence != domain.RecurrenceNone {
			t.Errorf("instance %s carries recurrence %q, want none", inst.ID, inst.Recurrence)
		}
		if inst.ParentJobID != parent.ID {
			t.Errorf("instance %s parent = %q, want %q", inst.ID, inst.ParentJobID, parent.ID)
		}
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	expander, jobs := newExpanderFixture(t)
	ctx := context.Background()

	parent := &domain.Job{
		ID:                "parent-2",
		ScheduledDate:     calendar.New(2025, 3, 1),
		Recurrence:        domain.RecurrenceBiweekly,
		RecurrenceEndDate: calendar.New(2025, 4, 1),
	}
	mustCreateJob(t, jobs, parent)

	first, err := expander.Expand(ctx, parent)
	if err != nil {
		t.Fatalf("first Expand returned error: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first Expand created nothing")
	}

	second, err := expander.Expand(ctx, parent)
	if err != nil {
		t.Fatalf("second Expand returned error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second Expand created %d duplicates: %v", len(second), second)
	}

	instances, _ := jobs.ListByParent(ctx, parent.ID)
	if len(instances) != len(first) {
		t.Errorf("store holds %d instances, want %d", len(instances), len(first))
	}
}

func TestExpandDefaultsToOneYearWindow(t *testing.T) {
	expander, jobs := newExpanderFixture(t)
	ctx := context.Background()

	parent := &domain.Job{
		ID:            "parent-3",
		ScheduledDate: calendar.New(2025, 2, 10),
		Recurrence:    domain.RecurrenceMonthly,
	}
	mustCreateJob(t, jobs, parent)

	created, err := expander.Expand(ctx, parent)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	// Monthly from 2025-02-10 through 2026-02-10 inclusive.
	if len(created) != 12 {
		t.Fatalf("created %d instances, want 12", len(created))
	}
	last := created[len(created)-1]
	if !last.Equal(calendar.New(2026, 2, 10)) {
		t.Errorf("last instance %v, want 2026-02-10", last)
	}
}

func TestExpandRefusesMissingStartDate(t *testing.T) {
	expander, _ := newExpanderFixture(t)

	parent := &domain.Job{
		ID:         "parent-4",
		Recurrence: domain.RecurrenceWeekly,
	}
	created, err := expander.Expand(context.Background(), parent)
	if !errors.Is(err, ErrMissingStartDate) {
		t.Fatalf("Expand error = %v, want ErrMissingStartDate", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ErrMissingStartDate should wrap ErrValidation")
	}
	if len(created) != 0 {
		t.Errorf("created %d instances despite refusal", len(created))
	}
}

func TestExpandNonRecurringIsNoop(t *testing.T) {
	expander, _ := newExpanderFixture(t)

	for _, rule := range []domain.RecurrenceRule{"", domain.RecurrenceNone} {
		parent := &domain.Job{ID: "p", ScheduledDate: calendar.New(2025, 5, 1), Recurrence: rule}
		created, err := expander.Expand(context.Background(), parent)
		if err != nil {
			t.Errorf("rule %q: unexpected error %v", rule, err)
		}
		if len(created) != 0 {
			t.Errorf("rule %q: created %d instances", rule, len(created))
		}
	}
}
