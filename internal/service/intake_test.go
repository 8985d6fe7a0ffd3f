package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/watch"
)

// memoryStorage keeps uploaded objects in a map for tests.
type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) GetURL(key string) string { return "https://cdn.test/" + key }

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func newIntakeFixture(t *testing.T, store *memoryStorage) (*IntakeService, *LeadService) {
	t.Helper()
	db := newTestDB(t)
	hub := watch.NewHub()
	t.Cleanup(hub.Close)

	leads := NewLeadService(repository.NewLeadRepository(db, hub))
	// A typed nil pointer inside the interface would defeat the storage==nil
	// check, so pass an untyped nil when storage is disabled.
	if store == nil {
		return NewIntakeService(repository.NewIntakeRepository(db), leads, nil), leads
	}
	return NewIntakeService(repository.NewIntakeRepository(db), leads, store), leads
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encoding fixture image: %v", err)
	}
	return buf.Bytes()
}

func TestSubmitQuoteStoresPhotosAndSeedsLead(t *testing.T) {
	store := newMemoryStorage()
	svc, leads := newIntakeFixture(t, store)
	ctx := context.Background()

	quote := &domain.QuoteRequest{
		Name:    "Dana Frey",
		Email:   "dana@example.com",
		Address: "12 Birch Rd",
		Message: "Back yard regrade and new sod",
	}
	photos := []Attachment{{Filename: "yard.png", ContentType: "image/png", Data: pngBytes(t)}}

	if err := svc.SubmitQuote(ctx, quote, photos); err != nil {
		t.Fatalf("SubmitQuote returned error: %v", err)
	}
	if quote.ID == "" {
		t.Error("quote was not assigned an ID")
	}
	if quote.Status != domain.QuoteNew {
		t.Errorf("status = %q, want %q", quote.Status, domain.QuoteNew)
	}
	if len(quote.PhotoKeys) != 1 {
		t.Fatalf("quote holds %d photo keys, want 1", len(quote.PhotoKeys))
	}
	key := quote.PhotoKeys[0]
	if !strings.HasPrefix(key, "quotes/"+quote.ID+"/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("photo key = %q", key)
	}
	if _, ok := store.objects[key]; !ok {
		t.Error("photo bytes were not uploaded")
	}
	if url := svc.PhotoURL(key); url != "https://cdn.test/"+key {
		t.Errorf("PhotoURL = %q", url)
	}

	// The submission seeds a matching pipeline lead.
	all, err := leads.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("listing leads: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("found %d leads, want 1", len(all))
	}
	if all[0].Name != "Dana Frey" || all[0].Status != domain.LeadNew || all[0].Notes != quote.Message {
		t.Errorf("seeded lead = %+v", all[0])
	}
}

func TestSubmitQuoteValidation(t *testing.T) {
	svc, _ := newIntakeFixture(t, newMemoryStorage())
	ctx := context.Background()

	tests := []struct {
		name  string
		quote *domain.QuoteRequest
	}{
		{"missing name", &domain.QuoteRequest{Email: "a@b.c"}},
		{"no contact info", &domain.QuoteRequest{Name: "Sam"}},
	}
	for _, tt := range tests {
		if err := svc.SubmitQuote(ctx, tt.quote, nil); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tt.name, err)
		}
	}

	photos := make([]Attachment, maxAttachments+1)
	for i := range photos {
		photos[i] = Attachment{Filename: "p.png", Data: pngBytes(t)}
	}
	err := svc.SubmitQuote(ctx, &domain.QuoteRequest{Name: "Sam", Email: "a@b.c"}, photos)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("too many photos: err = %v, want ErrValidation", err)
	}
}

func TestSubmitQuoteRejectsNonImagePayload(t *testing.T) {
	svc, _ := newIntakeFixture(t, newMemoryStorage())

	err := svc.SubmitQuote(context.Background(),
		&domain.QuoteRequest{Name: "Sam", Email: "a@b.c"},
		[]Attachment{{Filename: "notes.txt", Data: []byte("plain text")}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSubmitQuotePhotosWithoutStorage(t *testing.T) {
	svc, _ := newIntakeFixture(t, nil)

	err := svc.SubmitQuote(context.Background(),
		&domain.QuoteRequest{Name: "Sam", Email: "a@b.c"},
		[]Attachment{{Filename: "yard.png", Data: pngBytes(t)}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	// Without photos, disabled storage never blocks a plain submission.
	if err := svc.SubmitQuote(context.Background(), &domain.QuoteRequest{Name: "Sam", Email: "a@b.c"}, nil); err != nil {
		t.Fatalf("plain quote rejected: %v", err)
	}
}

func TestSubmitBooking(t *testing.T) {
	svc, _ := newIntakeFixture(t, nil)
	ctx := context.Background()

	booking := &domain.Booking{Name: "Lee Park", Phone: "555-0100", ServiceType: "mowing"}
	if err := svc.SubmitBooking(ctx, booking); err != nil {
		t.Fatalf("SubmitBooking returned error: %v", err)
	}
	if booking.ID == "" || booking.Status != domain.BookingNew {
		t.Errorf("booking = %+v", booking)
	}

	if err := svc.SubmitBooking(ctx, &domain.Booking{Name: "No Contact"}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	all, err := svc.ListBookings(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListBookings returned error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("found %d bookings, want 1", len(all))
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"yard.png", "yard.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\pic.jpg`, "pic.jpg"},
		{"with\x00control\x1f.png", "withcontrol.png"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
