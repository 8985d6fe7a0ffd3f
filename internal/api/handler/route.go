package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/api/middleware"
	"github.com/jmaddox/groundops/internal/maps"
	"github.com/jmaddox/groundops/internal/service"
)

// RouteHandler handles route optimization and saved route endpoints.
type RouteHandler struct {
	routing   *service.RoutingService
	routes    *service.RouteService
	contracts *service.ContractService
	customers *service.CustomerService
}

// NewRouteHandler creates a new route handler.
// Parameters:
//   - routing: stop sequencing service.
//   - routes: saved route service.
//   - contracts: contract/property service for stop sources.
//   - customers: customer service for stop sources.
// Returns:
//   - *RouteHandler: initialized handler.
func NewRouteHandler(
	routing *service.RoutingService,
	routes *service.RouteService,
	contracts *service.ContractService,
	customers *service.CustomerService,
) *RouteHandler {
	return &RouteHandler{
		routing:   routing,
		routes:    routes,
		contracts: contracts,
		customers: customers,
	}
}

type optimizeRequest struct {
	ContractIDs     []string `json:"contract_ids"`
	PropertyIDs     []string `json:"property_ids"`
	CustomerIDs     []string `json:"customer_ids"`
	UseLiveLocation bool     `json:"use_live_location"`
}

// Optimize handles POST /api/v1/admin/routes/optimize. The selected
// entities are flattened into stops, ordered, and sent to the directions
// provider; nothing is persisted.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RouteHandler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	input := &service.OptimizeInput{UseLiveLocation: req.UseLiveLocation}

	for _, id := range req.ContractIDs {
		contract, err := h.contracts.GetContract(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Contracts = append(input.Contracts, *contract)
	}
	for _, id := range req.PropertyIDs {
		property, err := h.contracts.GetProperty(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Properties = append(input.Properties, *property)
	}
	for _, id := range req.CustomerIDs {
		customer, err := h.customers.Get(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Customers = append(input.Customers, *customer)
	}

	result, err := h.routing.Optimize(ctx, input)
	if err != nil {
		if errors.Is(err, service.ErrNothingToRoute) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No routable stops were selected"})
			return
		}
		if isDirectionsError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ResolveAddress handles GET /api/v1/admin/geocode, resolving partial
// address text for the dashboard's address-entry forms.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RouteHandler) ResolveAddress(c *gin.Context) {
	addr, err := h.routing.ResolveAddress(c.Request.Context(), c.Query("address"))
	if err != nil {
		if isDirectionsError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

// isDirectionsError reports whether the error is one of the classified
// directions failures whose text is safe to show the user.
func isDirectionsError(err error) bool {
	for _, sentinel := range []error{
		maps.ErrNoRoute,
		maps.ErrAddressNotFound,
		maps.ErrInvalidRequest,
		maps.ErrRateLimited,
		maps.ErrPermissionDenied,
		maps.ErrServer,
		maps.ErrUnknown,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

type saveRouteRequest struct {
	Name  string                  `json:"name"`
	Route *service.OptimizedRoute `json:"route"`
}

// Save handles POST /api/v1/admin/routes, freezing an optimization result
// into a named snapshot.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RouteHandler) Save(c *gin.Context) {
	var req saveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	saved, err := h.routes.Save(c.Request.Context(), req.Name, req.Route, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// ToggleStop handles POST /api/v1/admin/routes/:id/stops/:stopID/toggle.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *RouteHandler) ToggleStop(c *gin.Context) {
	route, err := h.routes.ToggleStop(c.Request.Context(), c.Param("id"), c.Param("stopID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route":              route,
		"completion_percent": route.CompletionPercent(),
	})
}

// Get handles GET /api/v1/admin/routes/:id.
func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.routes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route":              route,
		"completion_percent": route.CompletionPercent(),
	})
}

// List handles GET /api/v1/admin/routes.
func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.routes.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// Delete handles DELETE /api/v1/admin/routes/:id.
func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
