package handlers

import (
	"net/http"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Validation errors
// carry the complete per-field violation map so the client can mark every
// failing input at once.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		if fields, ok := domain.AsFieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fields.Error(), "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
