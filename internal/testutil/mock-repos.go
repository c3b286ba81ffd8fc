package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"treatment-scoring-service/internal/core/domain"
	ports "treatment-scoring-service/internal/core/ports/output"
)

// MockArtifactProvider is a mock of ArtifactProvider.
type MockArtifactProvider struct {
	mock.Mock
}

func (m *MockArtifactProvider) Current() *domain.ModelArtifact {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ModelArtifact)
}

func (m *MockArtifactProvider) IsReady() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockPredictionLogRepo is a mock of PredictionLogRepository.
type MockPredictionLogRepo struct {
	mock.Mock
}

func (m *MockPredictionLogRepo) Insert(ctx context.Context, entry *ports.PredictionLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockMetricsRecorder is a mock of MetricsRecorder.
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) RecordRequest(method, endpoint string, status int, duration time.Duration) {
	m.Called(method, endpoint, status, duration)
}

func (m *MockMetricsRecorder) RecordPrediction() {
	m.Called()
}

func (m *MockMetricsRecorder) RecordPredictionError() {
	m.Called()
}

func (m *MockMetricsRecorder) SetModelInfo(version string) {
	m.Called(version)
}

// StubModel returns a fixed raw score, or an error when Err is set.
type StubModel struct {
	Score float64
	Err   error
}

func (s StubModel) Predict(features []float64) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Score, nil
}

// StubTransform returns a fixed feature vector, or an error when Err is set.
type StubTransform struct {
	Features []float64
	Err      error
}

func (s StubTransform) Apply(rec domain.Record) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Features, nil
}
