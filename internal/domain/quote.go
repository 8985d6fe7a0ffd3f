package domain

import (
	"time"

	"github.com/jmaddox/groundops/internal/calendar"
)

// QuoteStatus represents the handling state of a quote request.
type QuoteStatus string

const (
	QuoteNew      QuoteStatus = "new"
	QuoteReviewed QuoteStatus = "reviewed"
	QuoteSent     QuoteStatus = "sent"
	QuoteArchived QuoteStatus = "archived"
)

// QuoteRequest is a quote form submission from the public site, optionally
// carrying photo attachments stored in object storage by key.
type QuoteRequest struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	Name        string      `gorm:"type:text;not null" json:"name"`
	Phone       string      `gorm:"type:text" json:"phone,omitempty"`
	Email       string      `gorm:"type:text" json:"email,omitempty"`
	Address     string      `gorm:"type:text" json:"address,omitempty"`
	ServiceType ServiceType `gorm:"type:text" json:"service_type"`
	Message     string      `gorm:"type:text" json:"message,omitempty"`
	PhotoKeys   StringArray `gorm:"type:text" json:"photo_keys,omitempty"`
	Status      QuoteStatus `gorm:"type:text;default:new" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the database table name for QuoteRequest.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (QuoteRequest) TableName() string {
	return "quotes"
}

// BookingStatus represents the handling state of a booking request.
type BookingStatus string

const (
	BookingNew       BookingStatus = "new"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// Booking is a service booking request from the public site.
type Booking struct {
	ID            string        `gorm:"type:text;primaryKey" json:"id"`
	Name          string        `gorm:"type:text;not null" json:"name"`
	Phone         string        `gorm:"type:text" json:"phone,omitempty"`
	Email         string        `gorm:"type:text" json:"email,omitempty"`
	Address       string        `gorm:"type:text" json:"address,omitempty"`
	ServiceType   ServiceType   `gorm:"type:text" json:"service_type"`
	PreferredDate calendar.Date `gorm:"type:text" json:"preferred_date"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`
	Status        BookingStatus `gorm:"type:text;default:new" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName returns the database table name for Booking.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Booking) TableName() string {
	return "bookings"
}
