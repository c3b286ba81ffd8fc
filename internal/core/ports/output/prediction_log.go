package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PredictionLogEntry is one served prediction recorded for offline audit.
type PredictionLogEntry struct {
	ID           uuid.UUID
	PatientID    string
	ModelVersion string
	Score        float64
	CreatedAt    time.Time
}

// PredictionLogRepository persists served predictions. The audit trail is
// best-effort: a write failure must never fail the prediction it records.
type PredictionLogRepository interface {
	Insert(ctx context.Context, entry *PredictionLogEntry) error
}
