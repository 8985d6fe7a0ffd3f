package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/storage"

	_ "golang.org/x/image/webp"
)

// maxAttachmentBytes caps one uploaded photo.
const maxAttachmentBytes = 10 << 20

// maxAttachments caps photos per quote request.
const maxAttachments = 5

// Attachment is one uploaded photo accompanying a quote request.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IntakeService handles the public site's quote and booking submissions.
// Quote photos go to object storage; a quote also seeds a pipeline lead so
// nothing captured on the site needs re-entry in the CRM.
type IntakeService struct {
	intake  *repository.IntakeRepository
	leads   *LeadService
	storage storage.ObjectStorage
}

// NewIntakeService creates a new IntakeService.
// Parameters:
//   - intake: quote/booking repository.
//   - leads: lead service for pipeline seeding.
//   - store: object storage for photo attachments; nil disables attachments.
// Returns:
//   - *IntakeService: initialized service.
func NewIntakeService(intake *repository.IntakeRepository, leads *LeadService, store storage.ObjectStorage) *IntakeService {
	return &IntakeService{intake: intake, leads: leads, storage: store}
}

// SubmitQuote validates and persists a quote request, storing photo
// attachments first so the record only ever references uploaded keys.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - quote: quote request; ID is assigned when empty.
//   - photos: optional photo attachments.
// Returns:
//   - error: ErrValidation on bad input, store error on failure. The
//     lead-seeding side effect is best-effort and only logged.
func (s *IntakeService) SubmitQuote(ctx context.Context, quote *domain.QuoteRequest, photos []Attachment) error {
	if quote.Name == "" {
		return validationf("name is required")
	}
	if quote.Email == "" && quote.Phone == "" {
		return validationf("an email or phone number is required")
	}
	if len(photos) > maxAttachments {
		return validationf("at most %d photos allowed, got %d", maxAttachments, len(photos))
	}

	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	quote.Status = domain.QuoteNew

	for _, photo := range photos {
		key, err := s.storePhoto(ctx, quote.ID, photo)
		if err != nil {
			return err
		}
		quote.PhotoKeys = append(quote.PhotoKeys, key)
	}

	if err := s.intake.CreateQuote(ctx, quote); err != nil {
		return err
	}

	// Seed the pipeline; a failure here never bounces the submission.
	if err := s.leads.Create(ctx, &domain.Lead{
		Name:    quote.Name,
		Phone:   quote.Phone,
		Email:   quote.Email,
		Address: quote.Address,
		Status:  domain.LeadNew,
		Notes:   quote.Message,
	}); err != nil {
		logger.CtxWarn(ctx, "Lead seeding failed for quote %s: %v", quote.ID, err)
	}
	return nil
}

// storePhoto validates an attachment as a decodable image and uploads it.
func (s *IntakeService) storePhoto(ctx context.Context, quoteID string, photo Attachment) (string, error) {
	if s.storage == nil {
		return "", validationf("photo uploads are not enabled")
	}
	if len(photo.Data) == 0 {
		return "", validationf("photo %q is empty", photo.Filename)
	}
	if len(photo.Data) > maxAttachmentBytes {
		return "", validationf("photo %q exceeds the %dMB limit", photo.Filename, maxAttachmentBytes>>20)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(photo.Data))
	if err != nil {
		return "", validationf("photo %q is not a supported image", photo.Filename)
	}

	key := fmt.Sprintf("quotes/%s/%s.%s", quoteID, uuid.New().String(), format)
	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/" + format
	}
	if err := s.storage.Upload(ctx, key, bytes.NewReader(photo.Data), int64(len(photo.Data)), contentType); err != nil {
		return "", err
	}

	logger.CtxInfo(ctx, "Quote photo stored: key=%s, format=%s, dims=%dx%d, name=%s",
		key, format, cfg.Width, cfg.Height, sanitizeFilename(photo.Filename))
	return key, nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, name)
}

// ListQuotes retrieves quote requests for the admin dashboard.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum records to return; 0 means no limit.
//   - offset: records to skip.
// Returns:
//   - []domain.QuoteRequest: quote records.
//   - error: non-nil if the query fails.
func (s *IntakeService) ListQuotes(ctx context.Context, limit, offset int) ([]domain.QuoteRequest, error) {
	return s.intake.ListQuotes(ctx, limit, offset)
}

// PhotoURL resolves a stored photo key into its public URL.
// Parameters:
//   - key: storage key from a quote's photo list.
// Returns:
//   - string: public URL, empty when storage is disabled.
func (s *IntakeService) PhotoURL(key string) string {
	if s.storage == nil {
		return ""
	}
	return s.storage.GetURL(key)
}

// SubmitBooking validates and persists a booking request.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - booking: booking request; ID is assigned when empty.
// Returns:
//   - error: ErrValidation on bad input, store error on failure.
func (s *IntakeService) SubmitBooking(ctx context.Context, booking *domain.Booking) error {
	if booking.Name == "" {
		return validationf("name is required")
	}
	if booking.Email == "" && booking.Phone == "" {
		return validationf("an email or phone number is required")
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = domain.BookingNew
	return s.intake.CreateBooking(ctx, booking)
}

// ListBookings retrieves booking requests for the admin dashboard.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum records to return; 0 means no limit.
//   - offset: records to skip.
// Returns:
//   - []domain.Booking: booking records.
//   - error: non-nil if the query fails.
func (s *IntakeService) ListBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return s.intake.ListBookings(ctx, limit, offset)
}
