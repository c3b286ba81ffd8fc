package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treatment-scoring-service/internal/adapters/primary/http/dto"
	"treatment-scoring-service/internal/core/domain"
)

// mapPredictionError translates prediction-path errors to HTTP responses.
// Validation failures enumerate every rejected field; internal faults stay
// opaque to the caller.
func mapPredictionError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, dto.ToValidationErrorResponse(validationErr.Report))

	case errors.Is(err, domain.ErrModelNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrModelNotLoaded.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed due to an internal error"})
	}
}
