package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"treatment-scoring-service/internal/adapters/primary/http/dto"
	"treatment-scoring-service/internal/adapters/primary/http/middleware"
	"treatment-scoring-service/internal/adapters/secondary/metrics"
	"treatment-scoring-service/internal/core/domain"
	"treatment-scoring-service/internal/core/services"
	"treatment-scoring-service/internal/testutil"
)

func setupRouter(artifact *domain.ModelArtifact) (*gin.Engine, *metrics.Recorder) {
	gin.SetMode(gin.TestMode)

	provider := new(testutil.MockArtifactProvider)
	if artifact == nil {
		provider.On("IsReady").Return(false)
	} else {
		provider.On("IsReady").Return(true)
		provider.On("Current").Return(artifact)
	}

	registry := testutil.NewTreatmentRegistry()
	validator := services.NewRequestValidator(registry)
	predictionSvc := services.NewPredictionService(provider, validator, nil)
	recorder := metrics.NewRecorder()

	h := New(registry, predictionSvc, provider, recorder, recorder.Handler())
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Metrics(recorder), middleware.SecurityHeaders())
	h.RegisterRoutes(r)

	return r, recorder
}

func loadedArtifact(score float64) *domain.ModelArtifact {
	return &domain.ModelArtifact{
		Model:     testutil.StubModel{Score: score},
		Transform: testutil.StubTransform{Features: []float64{1, 0}},
		Version:   "v-a1b2c3d4",
		LoadedAt:  time.Now(),
	}
}

func validRequestBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"Patient_ID":              "P0001",
		"Age":                     45,
		"Gender":                  "Male",
		"Condition":               "Diabetes",
		"Drug_Name":               "Metformin",
		"Dosage_mg":               500,
		"Treatment_Duration_days": 90,
		"Side_Effects":            "Mild",
	})
	return body
}

func postPredict(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_BeforeLoad(t *testing.T) {
	r, _ := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp dto.HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.False(t, resp.ModelLoaded)
	assert.Equal(t, "unknown", resp.ModelVersion)
}

func TestHealth_AfterLoad(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.Equal(t, "v-a1b2c3d4", resp.ModelVersion)
}

func TestPredict_Valid(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7.456))

	w := postPredict(r, validRequestBody())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PredictionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "P0001", resp.PatientID)
	assert.Equal(t, 7.46, resp.ImprovementScore)
	assert.GreaterOrEqual(t, resp.ImprovementScore, 0.0)
	assert.LessOrEqual(t, resp.ImprovementScore, 10.0)
	assert.Equal(t, "v-a1b2c3d4", resp.ModelVersion)
	assert.Equal(t, dto.Disclaimer, resp.Disclaimer)
}

func TestPredict_UnknownGender(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(validRequestBody(), &payload))
	payload["Gender"] = "Other"
	body, _ := json.Marshal(payload)

	w := postPredict(r, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "Gender", resp.Errors[0].Field)
	assert.Contains(t, resp.Errors[0].Message, `"Other"`)
}

func TestPredict_MissingFields(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	var payload map[string]any
	assert.NoError(t, json.Unmarshal(validRequestBody(), &payload))
	delete(payload, "Drug_Name")
	body, _ := json.Marshal(payload)

	w := postPredict(r, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "Drug_Name", resp.Errors[0].Field)
	assert.Equal(t, "field is required", resp.Errors[0].Message)
}

func TestPredict_MalformedBody(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	w := postPredict(r, []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_ModelNotLoaded(t *testing.T) {
	r, _ := setupRouter(nil)

	w := postPredict(r, validRequestBody())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "model not loaded")
}

func TestPredict_InternalFault(t *testing.T) {
	artifact := &domain.ModelArtifact{
		Model:     testutil.StubModel{Score: 5},
		Transform: testutil.StubTransform{Err: errors.New("unknown category")},
		Version:   "v-a1b2c3d4",
	}
	r, _ := setupRouter(artifact)

	w := postPredict(r, validRequestBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The internal detail must not leak to the caller.
	assert.NotContains(t, w.Body.String(), "unknown category")
	assert.Contains(t, w.Body.String(), "prediction failed due to an internal error")
}

func TestDropdownValues(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	req, _ := http.NewRequest("GET", "/dropdown-values", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.DropdownValuesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Male", "Female"}, resp.Categorical["Gender"])
	assert.Equal(t, []string{"None", "Mild", "Moderate", "Severe"}, resp.Categorical["Side_Effects"])
	assert.Equal(t, []float64{250, 500, 750}, resp.NumericOptions["Dosage_mg"])
	assert.Equal(t, dto.RangeValues{Min: 18, Max: 90}, resp.Ranges["Age"])
	// Identifier and target are not form fields.
	assert.NotContains(t, resp.Ranges, "Improvement_Score")
}

func TestSecurityHeaders(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(7))

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPredict_ConcurrentRequestsCountedExactly(t *testing.T) {
	r, _ := setupRouter(loadedArtifact(4.2))

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = postPredict(r, validRequestBody()).Code
		}(i)
	}
	wg.Wait()

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])

	req, _ := http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	exposition := w.Body.String()
	assert.Contains(t, exposition, `api_prediction_total 2`)
	assert.Contains(t, exposition, `api_request_total{endpoint="/predict",method="POST",status="200"} 2`)
}
