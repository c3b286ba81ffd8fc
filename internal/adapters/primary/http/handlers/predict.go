package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"treatment-scoring-service/internal/adapters/primary/http/dto"
	"treatment-scoring-service/internal/core/domain"
)

// Predict serves one schema-validated prediction. The request must carry the
// identifier and every declared feature field.
func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictionSvc.Predict(c.Request.Context(), req.ToRecord())
	if err != nil {
		// Schema rejections are client errors, not prediction faults;
		// only the latter count toward the error metric.
		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			h.metrics.RecordPredictionError()
			log.WithError(err).Error("prediction failed")
		}
		mapPredictionError(c, err)
		return
	}

	h.metrics.RecordPrediction()
	c.JSON(http.StatusOK, dto.ToPredictionResponse(prediction))
}
