package domain

import "time"

// MaxContractAddresses caps the service-address list on a commercial contract.
const MaxContractAddresses = 50

// MaxPropertyAddresses caps the service-address list on an HOA/condo property.
const MaxPropertyAddresses = 40

// CommercialContract is a commercial service agreement covering one or more
// service addresses, each of which becomes its own route stop.
type CommercialContract struct {
	ID               string         `gorm:"type:text;primaryKey" json:"id"`
	OrganizationName string         `gorm:"type:text;not null" json:"organization_name"`
	ContactName      string         `gorm:"type:text" json:"contact_name,omitempty"`
	Phone            string         `gorm:"type:text" json:"phone,omitempty"`
	Email            string         `gorm:"type:text" json:"email,omitempty"`
	Priority         Priority       `gorm:"type:text;default:normal" json:"priority"`
	ServiceAddresses SubAddressList `gorm:"type:text" json:"service_addresses,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy        string         `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy        string         `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName returns the database table name for CommercialContract.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (CommercialContract) TableName() string {
	return "commercial_contracts"
}

// HOAProperty is an HOA or condo association with a list of serviced
// locations. Each location explodes into its own route stop inheriting the
// property's priority and phone.
type HOAProperty struct {
	ID               string         `gorm:"type:text;primaryKey" json:"id"`
	OrganizationName string         `gorm:"type:text;not null" json:"organization_name"`
	ContactName      string         `gorm:"type:text" json:"contact_name,omitempty"`
	Phone            string         `gorm:"type:text" json:"phone,omitempty"`
	Email            string         `gorm:"type:text" json:"email,omitempty"`
	Priority         Priority       `gorm:"type:text;default:normal" json:"priority"`
	ServiceAddresses SubAddressList `gorm:"type:text" json:"service_addresses,omitempty"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy        string         `gorm:"type:text" json:"created_by,omitempty"`
	UpdatedBy        string         `gorm:"type:text" json:"updated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName returns the database table name for HOAProperty.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (HOAProperty) TableName() string {
	return "hoa_condo_properties"
}
