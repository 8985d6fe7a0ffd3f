package domain

import (
	"time"

	"github.com/jmaddox/groundops/internal/calendar"
)

// JobStatus represents the scheduling state of a job.
// Values are JobStatusScheduled and JobStatusCompleted; the only transitions
// are scheduled -> completed and back via an explicit toggle.
type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
)

// ServiceType represents the kind of work a job performs.
type ServiceType string

const (
	ServiceLawnMaintenance ServiceType = "lawn-maintenance"
	ServiceLeafCleanup     ServiceType = "leaf-cleanup"
	ServiceSnowRemoval     ServiceType = "snow-removal"
	ServiceLandscaping     ServiceType = "landscaping"
	ServiceTreeService     ServiceType = "tree-service"
	ServiceOther           ServiceType = "other"
)

// RecurrenceRule represents how a job repeats.
type RecurrenceRule string

const (
	RecurrenceNone     RecurrenceRule = "none"
	RecurrenceWeekly   RecurrenceRule = "weekly"
	RecurrenceBiweekly RecurrenceRule = "biweekly"
	RecurrenceMonthly  RecurrenceRule = "monthly"
)

// PaymentMethod represents how a job is paid.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCheck   PaymentMethod = "check"
	PaymentCard    PaymentMethod = "card"
	PaymentInvoice PaymentMethod = "invoice"
	PaymentVenmo   PaymentMethod = "venmo"
)

// PaymentStatus represents the billing state of a job.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentOverdue PaymentStatus = "overdue"
)

// Job is one scheduled unit of work. Generated recurring instances carry a
// ParentJobID back-reference and are never themselves re-expanded.
//
// ScheduledDate is the canonical date column; LegacyServiceDate survives from
// older records and is normalized into ScheduledDate at the repository
// boundary before any scheduling logic sees the job.
type Job struct {
	ID                string         `gorm:"type:text;primaryKey" json:"id"`
	CustomerName      string         `gorm:"type:text;index:idx_jobs_customer" json:"customer_name"`
	Address           string         `gorm:"type:text" json:"address"`
	ServiceType       ServiceType    `gorm:"type:text" json:"service_type"`
	// EstimatedDuration is in minutes; zero takes the column default.
	EstimatedDuration int            `gorm:"default:60" json:"estimated_duration"`
	Priority          Priority       `gorm:"type:text;default:normal" json:"priority"`
	ScheduledDate     calendar.Date  `gorm:"column:scheduled_date;type:text;index:idx_jobs_scheduled" json:"scheduled_date"`
	LegacyServiceDate calendar.Date  `gorm:"column:service_date;type:text;index:idx_jobs_service" json:"-"`
	Status            JobStatus      `gorm:"type:text;default:scheduled;index:idx_jobs_status" json:"status"`
	ExpectedPayment   float64        `json:"expected_payment"`
	ActualPayment     float64        `json:"actual_payment"`
	PaymentMethod     PaymentMethod  `gorm:"type:text" json:"payment_method,omitempty"`
	PaymentStatus     PaymentStatus  `gorm:"type:text;default:pending" json:"payment_status"`
	Recurrence        RecurrenceRule `gorm:"type:text;default:none" json:"recurrence"`
	RecurrenceEndDate calendar.Date  `gorm:"type:text" json:"recurrence_end_date"`
	ParentJobID       string         `gorm:"type:text;index:idx_jobs_parent" json:"parent_job_id,omitempty"`
	Notes             string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy         string         `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy         string         `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Job.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Job) TableName() string {
	return "jobs"
}

// EffectiveDate returns the canonical scheduled date, falling back to the
// legacy service-date column for records written before the rename.
func (j *Job) EffectiveDate() calendar.Date {
	if !j.ScheduledDate.IsZero() {
		return j.ScheduledDate
	}
	return j.LegacyServiceDate
}

// ServicePayment returns the amount a service contributes to customer
// lifetime spend: actual payment if non-zero, else expected, else 0.
func (j *Job) ServicePayment() float64 {
	if j.ActualPayment != 0 {
		return j.ActualPayment
	}
	return j.ExpectedPayment
}
