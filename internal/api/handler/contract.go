package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/domain"
	"github.com/jmaddox/groundops/internal/service"
)

// ContractHandler handles commercial contract and HOA/condo property
// endpoints.
type ContractHandler struct {
	contracts *service.ContractService
}

// NewContractHandler creates a new contract handler.
// Parameters:
//   - contracts: contract service instance.
// Returns:
//   - *ContractHandler: initialized handler.
func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// CreateContract handles POST /api/v1/admin/contracts.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var contract domain.CommercialContract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.contracts.CreateContract(c.Request.Context(), &contract); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// UpdateContract handles PUT /api/v1/admin/contracts/:id.
func (h *ContractHandler) UpdateContract(c *gin.Context) {
	var contract domain.CommercialContract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	contract.ID = c.Param("id")
	if err := h.contracts.UpdateContract(c.Request.Context(), &contract); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// DeleteContract handles DELETE /api/v1/admin/contracts/:id.
func (h *ContractHandler) DeleteContract(c *gin.Context) {
	if err := h.contracts.DeleteContract(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetContract handles GET /api/v1/admin/contracts/:id.
func (h *ContractHandler) GetContract(c *gin.Context) {
	contract, err := h.contracts.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// ListContracts handles GET /api/v1/admin/contracts.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	contracts, err := h.contracts.ListContracts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

// CreateProperty handles POST /api/v1/admin/properties.
func (h *ContractHandler) CreateProperty(c *gin.Context) {
	var property domain.HOAProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.contracts.CreateProperty(c.Request.Context(), &property); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PUT /api/v1/admin/properties/:id.
func (h *ContractHandler) UpdateProperty(c *gin.Context) {
	var property domain.HOAProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	property.ID = c.Param("id")
	if err := h.contracts.UpdateProperty(c.Request.Context(), &property); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/v1/admin/properties/:id.
func (h *ContractHandler) DeleteProperty(c *gin.Context) {
	if err := h.contracts.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProperty handles GET /api/v1/admin/properties/:id.
func (h *ContractHandler) GetProperty(c *gin.Context) {
	property, err := h.contracts.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// ListProperties handles GET /api/v1/admin/properties.
func (h *ContractHandler) ListProperties(c *gin.Context) {
	properties, err := h.contracts.ListProperties(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}
