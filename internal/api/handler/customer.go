package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// CustomerHandler handles customer CRM endpoints.
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
// Parameters:
//   - customers: customer service instance.
// Returns:
//   - *CustomerHandler: initialized handler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create handles POST /api/v1/admin/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.customers.Create(c.Request.Context(), &customer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// Update handles PUT /api/v1/admin/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var customer domain.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	customer.ID = c.Param("id")
	if err := h.customers.Update(c.Request.Context(), &customer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /api/v1/admin/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /api/v1/admin/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// List handles GET /api/v1/admin/customers. A status query parameter
// filters by account standing instead of paginating.
func (h *CustomerHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		customers, err := h.customers.ListByStatus(c.Request.Context(), domain.CustomerStatus(status))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	customers, err := h.customers.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
