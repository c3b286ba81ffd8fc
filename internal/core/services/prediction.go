package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"treatment-scoring-service/internal/core/domain"
	ports "treatment-scoring-service/internal/core/ports/output"
)

// Score bounds of the served prediction. Raw model output is clamped into
// this range and rounded to two decimals before leaving the service.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// PredictionService orchestrates a single scoring request:
// ready-check, schema validation, feature transform, model inference,
// clamp and round. Each call is a pure read against the shared artifact, so
// concurrent predictions need no locking.
type PredictionService struct {
	artifacts ports.ArtifactProvider
	validator *RequestValidator
	auditLog  ports.PredictionLogRepository // optional
}

func NewPredictionService(artifacts ports.ArtifactProvider, validator *RequestValidator, auditLog ports.PredictionLogRepository) *PredictionService {
	return &PredictionService{
		artifacts: artifacts,
		validator: validator,
		auditLog:  auditLog,
	}
}

// Predict serves one record. Error values:
//   - domain.ErrModelNotLoaded when no artifact is available
//   - *domain.ValidationError when the record violates the schema contract
//   - wrapped domain.ErrPredictionFailed on any transform/model fault
func (s *PredictionService) Predict(ctx context.Context, rec domain.Record) (*domain.Prediction, error) {
	if !s.artifacts.IsReady() {
		return nil, domain.ErrModelNotLoaded
	}

	if report := s.validator.Validate(rec); !report.Empty() {
		return nil, &domain.ValidationError{Report: report}
	}

	artifact := s.artifacts.Current()

	features, err := artifact.Transform.Apply(rec)
	if err != nil {
		// Can happen when a schema update lags a retrained transform.
		return nil, fmt.Errorf("%w: apply transform: %v", domain.ErrPredictionFailed, err)
	}

	raw, err := artifact.Model.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("%w: model inference: %v", domain.ErrPredictionFailed, err)
	}

	score := math.Min(ScoreMax, math.Max(ScoreMin, raw))
	score = math.Round(score*100) / 100

	prediction := &domain.Prediction{
		PatientID:    rec.PatientID,
		Score:        score,
		ModelVersion: artifact.Version,
	}

	s.audit(ctx, prediction)

	return prediction, nil
}

func (s *PredictionService) audit(ctx context.Context, p *domain.Prediction) {
	if s.auditLog == nil {
		return
	}

	entry := &ports.PredictionLogEntry{
		ID:           uuid.New(),
		PatientID:    p.PatientID,
		ModelVersion: p.ModelVersion,
		Score:        p.Score,
		CreatedAt:    time.Now(),
	}
	if err := s.auditLog.Insert(ctx, entry); err != nil {
		log.WithError(err).Warn("prediction audit write failed")
	}
}
