package domain

import "time"

// User is an admin dashboard account. The authenticated identity stamps
// created_by/updated_by attribution fields on entity writes.
type User struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	Email        string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"type:text" json:"display_name,omitempty"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (User) TableName() string {
	return "users"
}
