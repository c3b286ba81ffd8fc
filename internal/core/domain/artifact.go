package domain

import "time"

// Model is the opaque trained-model handle: a fitted regressor over an
// already-transformed feature vector.
type Model interface {
	Predict(features []float64) (float64, error)
}

// FeatureTransform is the opaque feature-engineering handle paired with the
// model. It projects a schema-shaped record into the vector the model was
// trained on, and must reject values it was not fitted on rather than encode
// them silently.
type FeatureTransform interface {
	Apply(rec Record) ([]float64, error)
}

// ModelArtifact is the immutable bundle assembled exactly once at startup.
// Readers share the same instance for the life of the process.
type ModelArtifact struct {
	Model     Model
	Transform FeatureTransform
	Version   string
	LoadedAt  time.Time
}
