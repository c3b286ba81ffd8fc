package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"treatment-scoring-service/internal/adapters/primary/http/dto"
	"treatment-scoring-service/internal/core/domain"
)

// Health is the liveness and readiness check. It reports unhealthy until the
// artifact load has completed, so there is no window where /predict succeeds
// while /health still reports unhealthy.
func (h *Handler) Health(c *gin.Context) {
	if !h.artifacts.IsReady() {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:       "unhealthy",
			ModelLoaded:  false,
			ModelVersion: "unknown",
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       "healthy",
		ModelLoaded:  true,
		ModelVersion: h.artifacts.Current().Version,
	})
}

// DropdownValues returns the allowed categorical values and numeric domains
// for client-side form population, derived from the same registry that
// drives validation.
func (h *Handler) DropdownValues(c *gin.Context) {
	resp := dto.DropdownValuesResponse{
		Categorical:    make(map[string][]string),
		NumericOptions: make(map[string][]float64),
		Ranges:         make(map[string]dto.RangeValues),
	}

	for _, name := range h.registry.FeatureFields() {
		constraint, ok := h.registry.ConstraintFor(name)
		if !ok {
			continue
		}
		switch constraint.Kind {
		case domain.KindCategorical:
			if constraint.Numeric {
				options := make([]float64, 0, len(constraint.Values))
				for _, v := range constraint.Values {
					f, err := strconv.ParseFloat(v, 64)
					if err != nil {
						continue
					}
					options = append(options, f)
				}
				resp.NumericOptions[name] = options
			} else {
				resp.Categorical[name] = append([]string(nil), constraint.Values...)
			}
		case domain.KindRange:
			resp.Ranges[name] = dto.RangeValues{Min: constraint.Min, Max: constraint.Max}
		}
	}

	c.JSON(http.StatusOK, resp)
}
