package domain

import (
	"time"

	"github.com/jmaddox/groundops/internal/calendar"
)

// CustomerStatus represents the account standing of a customer.
type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerInactive  CustomerStatus = "inactive"
	CustomerVIP       CustomerStatus = "vip"
	CustomerOnHold    CustomerStatus = "on-hold"
	CustomerCancelled CustomerStatus = "cancelled"
)

// CustomerType distinguishes single-address customers from multi-address
// property types whose sub-addresses explode into individual route stops.
type CustomerType string

const (
	CustomerResidential CustomerType = "residential"
	CustomerHOA         CustomerType = "hoa"
	CustomerCondo       CustomerType = "condo"
	CustomerMultiFamily CustomerType = "multi-family"
)

// MaxCustomerSubAddresses caps the sub-address list on a customer record.
const MaxCustomerSubAddresses = 40

// Customer is a CRM customer record. Name is the de-facto match key used by
// the service-completion upsert; it is not enforced unique at the data layer.
// LifetimeSpend only accumulates, it is never decremented by job edits.
type Customer struct {
	ID              string         `gorm:"type:text;primaryKey" json:"id"`
	Name            string         `gorm:"type:text;not null;index:idx_customers_name" json:"name"`
	Phone           string         `gorm:"type:text" json:"phone,omitempty"`
	Email           string         `gorm:"type:text" json:"email,omitempty"`
	Address         string         `gorm:"type:text" json:"address,omitempty"`
	Type            CustomerType   `gorm:"type:text;default:residential" json:"type"`
	Status          CustomerStatus `gorm:"type:text;default:active;index:idx_customers_status" json:"status"`
	Priority        Priority       `gorm:"type:text;default:normal" json:"priority"`
	LifetimeSpend   float64        `json:"lifetime_spend"`
	LastServiceDate calendar.Date  `gorm:"type:text" json:"last_service_date"`
	SubAddresses    SubAddressList `gorm:"type:text" json:"sub_addresses,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       string         `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy       string         `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Customer.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Customer) TableName() string {
	return "customers"
}

// IsMultiAddress reports whether the customer is a property type whose
// sub-address list should be exploded into individual stops.
func (c *Customer) IsMultiAddress() bool {
	switch c.Type {
	case CustomerHOA, CustomerCondo, CustomerMultiFamily:
		return len(c.SubAddresses) > 0
	default:
		return false
	}
}
