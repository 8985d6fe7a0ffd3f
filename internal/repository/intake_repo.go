package repository

import (
	"context"

	"github.com/jmaddox/groundops/internal/domain"
	"gorm.io/gorm"
)

// IntakeRepository handles public-site quote and booking submissions.
type IntakeRepository struct {
	db *gorm.DB
}

// NewIntakeRepository creates a new IntakeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *IntakeRepository: repository instance bound to db.
func NewIntakeRepository(db *gorm.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

// CreateQuote inserts a new quote request.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - quote: quote request to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *IntakeRepository) CreateQuote(ctx context.Context, quote *domain.QuoteRequest) error {
	return wrapErr(r.db.WithContext(ctx).Create(quote).Error)
}

// UpdateQuote saves an existing quote request.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - quote: quote request with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *IntakeRepository) UpdateQuote(ctx context.Context, quote *domain.QuoteRequest) error {
	return wrapErr(r.db.WithContext(ctx).Save(quote).Error)
}

// GetQuote retrieves a quote request by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: quote ID.
// Returns:
//   - *domain.QuoteRequest: quote record if found.
//   - error: non-nil if lookup fails.
func (r *IntakeRepository) GetQuote(ctx context.Context, id string) (*domain.QuoteRequest, error) {
	var quote domain.QuoteRequest
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &quote, nil
}

// ListQuotes retrieves quote requests ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return; 0 means no limit.
//   - offset: number of records to skip.
// Returns:
//   - []domain.QuoteRequest: quote records.
//   - error: non-nil if the query fails.
func (r *IntakeRepository) ListQuotes(ctx context.Context, limit, offset int) ([]domain.QuoteRequest, error) {
	var quotes []domain.QuoteRequest
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&quotes).Error; err != nil {
		return nil, wrapErr(err)
	}
	return quotes, nil
}

// CreateBooking inserts a new booking request.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - booking: booking request to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *IntakeRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	return wrapErr(r.db.WithContext(ctx).Create(booking).Error)
}

// UpdateBooking saves an existing booking request.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - booking: booking request with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *IntakeRepository) UpdateBooking(ctx context.Context, booking *domain.Booking) error {
	return wrapErr(r.db.WithContext(ctx).Save(booking).Error)
}

// ListBookings retrieves booking requests ordered by creation time descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return; 0 means no limit.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Booking: booking records.
//   - error: non-nil if the query fails.
func (r *IntakeRepository) ListBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, wrapErr(err)
	}
	return bookings, nil
}
