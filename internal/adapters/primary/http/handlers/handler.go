package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treatment-scoring-service/internal/core/domain"
	ports "treatment-scoring-service/internal/core/ports/output"
	"treatment-scoring-service/internal/core/services"
)

type Handler struct {
	registry       *domain.SchemaRegistry
	predictionSvc  *services.PredictionService
	artifacts      ports.ArtifactProvider
	metrics        ports.MetricsRecorder
	metricsHandler http.Handler
}

func New(
	registry *domain.SchemaRegistry,
	predictionSvc *services.PredictionService,
	artifacts ports.ArtifactProvider,
	metrics ports.MetricsRecorder,
	metricsHandler http.Handler,
) *Handler {
	return &Handler{
		registry:       registry,
		predictionSvc:  predictionSvc,
		artifacts:      artifacts,
		metrics:        metrics,
		metricsHandler: metricsHandler,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/predict", h.Predict)
	r.GET("/dropdown-values", h.DropdownValues)
	r.GET("/metrics", gin.WrapH(h.metricsHandler))
}
