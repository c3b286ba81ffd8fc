package ports

import "treatment-scoring-service/internal/core/domain"

// ArtifactProvider exposes the loaded model artifact to the prediction path.
// Both accessors are safe for unsynchronized concurrent reads once the load
// has completed, because the artifact is assigned once and never mutated.
type ArtifactProvider interface {
	Current() *domain.ModelArtifact
	IsReady() bool
}
