package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skylinetravels/flightbooking/internal/domain"
)

const serverErrorMessage = "Server error"

// respondError writes {"message": ...} with the status of the error kind.
// Unclassified errors become 500 and are attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"message": serverErrorMessage})
		return
	}

	message := err.Error()
	var derr *domain.Error
	if errors.As(err, &derr) {
		message = derr.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
}
