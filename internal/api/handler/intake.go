package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// IntakeHandler handles the public quote and booking forms plus their admin
// listings.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler creates a new intake handler.
// Parameters:
//   - intake: intake service instance.
// Returns:
//   - *IntakeHandler: initialized handler.
func NewIntakeHandler(intake *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

// SubmitQuote handles POST /api/v1/quotes. The form arrives as multipart
// when photos are attached, plain JSON otherwise.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *IntakeHandler) SubmitQuote(c *gin.Context) {
	var quote domain.QuoteRequest
	var photos []service.Attachment

	if isMultipart(c) {
		quote = domain.QuoteRequest{
			Name:        c.PostForm("name"),
			Phone:       c.PostForm("phone"),
			Email:       c.PostForm("email"),
			Address:     c.PostForm("address"),
			ServiceType: domain.ServiceType(c.PostForm("service_type")),
			Message:     c.PostForm("message"),
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return
		}
		for _, fh := range form.File["photos"] {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable photo upload"})
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable photo upload"})
				return
			}
			photos = append(photos, service.Attachment{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	} else if err := c.ShouldBindJSON(&quote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.intake.SubmitQuote(c.Request.Context(), &quote, photos); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func isMultipart(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "multipart/form-data"
}

// SubmitBooking handles POST /api/v1/bookings.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *IntakeHandler) SubmitBooking(c *gin.Context) {
	var booking domain.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.intake.SubmitBooking(c.Request.Context(), &booking); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListQuotes handles GET /api/v1/admin/quotes, resolving photo keys to
// public URLs for the dashboard.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *IntakeHandler) ListQuotes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quotes, err := h.intake.ListQuotes(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	type quoteWithPhotos struct {
		domain.QuoteRequest
		PhotoURLs []string `json:"photo_urls,omitempty"`
	}
	out := make([]quoteWithPhotos, 0, len(quotes))
	for _, q := range quotes {
		item := quoteWithPhotos{QuoteRequest: q}
		for _, key := range q.PhotoKeys {
			if url := h.intake.PhotoURL(key); url != "" {
				item.PhotoURLs = append(item.PhotoURLs, url)
			}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, gin.H{"quotes": out})
}

// ListBookings handles GET /api/v1/admin/bookings.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *IntakeHandler) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, err := h.intake.ListBookings(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
