// Package artifact loads the serialized model/transform pair from disk and
// exposes it as an immutable snapshot to concurrent readers.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"treatment-scoring-service/internal/core/domain"
)

// Store holds the loaded ModelArtifact. Load is called once during startup,
// before the service accepts requests; afterwards the snapshot is read-only,
// so Current and IsReady are safe without locking.
type Store struct {
	current atomic.Pointer[domain.ModelArtifact]
}

func NewStore() *Store {
	return &Store{}
}

// Load reads, verifies and deserializes both artifact files. Any failure is
// non-recoverable for the attempt: the caller is expected to refuse to start
// rather than run unserviceable.
func (s *Store) Load(modelPath, transformPath string) (*domain.ModelArtifact, error) {
	modelBytes, err := readArtifactFile(modelPath)
	if err != nil {
		return nil, err
	}
	transformBytes, err := readArtifactFile(transformPath)
	if err != nil {
		return nil, err
	}

	model, err := decodeModel(modelBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifactInvalid, modelPath, err)
	}
	transform, err := decodeTransform(transformBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifactInvalid, transformPath, err)
	}

	if err := checkDimensions(model, transform); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactInvalid, err)
	}

	artifact := &domain.ModelArtifact{
		Model:     model,
		Transform: transform,
		Version:   versionID(modelBytes),
		LoadedAt:  time.Now(),
	}
	s.current.Store(artifact)

	log.WithFields(log.Fields{
		"version":        artifact.Version,
		"model_path":     modelPath,
		"transform_path": transformPath,
	}).Info("model artifact loaded")

	return artifact, nil
}

// Current returns the loaded artifact, or nil before a successful Load.
func (s *Store) Current() *domain.ModelArtifact {
	return s.current.Load()
}

func (s *Store) IsReady() bool {
	return s.current.Load() != nil
}

func readArtifactFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrArtifactInvalid, path, err)
	}
	return b, nil
}

// versionID is a short deterministic fingerprint of the model bytes, used to
// correlate a served prediction with the exact model that produced it.
func versionID(modelBytes []byte) string {
	sum := sha256.Sum256(modelBytes)
	return "v-" + hex.EncodeToString(sum[:])[:8]
}
