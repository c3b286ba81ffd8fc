package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	ports "treatment-scoring-service/internal/core/ports/output"
)

type predictionLogRepo struct {
	pool *pgxpool.Pool
}

// NewPredictionLogRepository creates the insert-only audit repository.
func NewPredictionLogRepository(pool *pgxpool.Pool) ports.PredictionLogRepository {
	return &predictionLogRepo{pool: pool}
}

func (r *predictionLogRepo) Insert(ctx context.Context, entry *ports.PredictionLogEntry) error {
	query := `
		INSERT INTO prediction_log
			(id, created_at, patient_id, model_version, score)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.CreatedAt, entry.PatientID, entry.ModelVersion, entry.Score,
	)
	if err != nil {
		return fmt.Errorf("insert prediction log: %w", err)
	}
	return nil
}
