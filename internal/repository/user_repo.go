package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"gorm.io/gorm"
)

// UserRepository handles admin account data operations.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *UserRepository: repository instance bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - user: user record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return wrapErr(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID retrieves a user by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: user ID.
// Returns:
//   - *domain.User: user record if found.
//   - error: non-nil if lookup fails.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - email: account email.
// Returns:
//   - *domain.User: user record if found.
//   - error: ErrNotFound if no account exists; other non-nil on failure.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}
