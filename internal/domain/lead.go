package domain

import (
	"time"

	"github.com/jmaddox/groundops/internal/calendar"
)

// LeadStatus represents a lead's position in the sales pipeline.
type LeadStatus string

const (
	LeadNew           LeadStatus = "new"
	LeadContacted     LeadStatus = "contacted"
	LeadQuoted        LeadStatus = "quoted"
	LeadFollowUp      LeadStatus = "follow-up"
	LeadConverted     LeadStatus = "converted"
	LeadLost          LeadStatus = "lost"
	LeadNotInterested LeadStatus = "not-interested"
)

// Lead is a prospective customer captured from the public site or entered by
// hand. ContactCount increments on each explicit "mark contacted" action.
type Lead struct {
	ID             string        `gorm:"type:text;primaryKey" json:"id"`
	Name           string        `gorm:"type:text;not null" json:"name"`
	Phone          string        `gorm:"type:text" json:"phone,omitempty"`
	Email          string        `gorm:"type:text" json:"email,omitempty"`
	Address        string        `gorm:"type:text" json:"address,omitempty"`
	Status         LeadStatus    `gorm:"type:text;default:new;index:idx_leads_status" json:"status"`
	Priority       Priority      `gorm:"type:text;default:normal" json:"priority"`
	EstimatedValue float64       `json:"estimated_value"`
	FollowUpDate   calendar.Date `gorm:"type:text" json:"follow_up_date"`
	ContactCount   int           `gorm:"default:0" json:"contact_count"`
	Notes          string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy      string        `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy      string        `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName returns the database table name for Lead.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Lead) TableName() string {
	return "leads"
}
