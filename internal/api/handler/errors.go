package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmaddox/groundops/internal/logger"
	"github.com/jmaddox/groundops/internal/repository"
	"github.com/jmaddox/groundops/internal/service"
)

// writeError translates a service or repository error into the JSON error
// response. Validation problems map to 400, missing records to 404, and
// everything else to a logged 500 with a generic message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		logger.CtxError(c.Request.Context(), "Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
