package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utopia-air/flightnet/internal/domain"
)

// respondError maps the engine's error taxonomy onto HTTP statuses:
// not-found and invalid references are 404, uniqueness conflicts and
// validation failures are 400, everything else is a 500.
func respondError(c *gin.Context, err error) {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
