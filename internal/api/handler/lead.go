package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// LeadHandler handles sales pipeline endpoints.
type LeadHandler struct {
	leads *service.LeadService
}

// NewLeadHandler creates a new lead handler.
// Parameters:
//   - leads: lead service instance.
// Returns:
//   - *LeadHandler: initialized handler.
func NewLeadHandler(leads *service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// Create handles POST /api/v1/admin/leads.
func (h *LeadHandler) Create(c *gin.Context) {
	var lead domain.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.leads.Create(c.Request.Context(), &lead); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// Update handles PUT /api/v1/admin/leads/:id.
func (h *LeadHandler) Update(c *gin.Context) {
	var lead domain.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	lead.ID = c.Param("id")
	if err := h.leads.Update(c.Request.Context(), &lead); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Delete handles DELETE /api/v1/admin/leads/:id.
func (h *LeadHandler) Delete(c *gin.Context) {
	if err := h.leads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /api/v1/admin/leads/:id.
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// List handles GET /api/v1/admin/leads.
func (h *LeadHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, err := h.leads.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// MarkContacted handles POST /api/v1/admin/leads/:id/contacted.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *LeadHandler) MarkContacted(c *gin.Context) {
	lead, err := h.leads.MarkContacted(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}
