package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal startup errors. The process must exit before accepting traffic.
var (
	ErrSchemaNotFound = errors.New("schema file not found")
	ErrSchemaInvalid  = errors.New("schema definition is invalid")

	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrArtifactInvalid  = errors.New("model artifact cannot be decoded")
)

// Per-request errors, translated to HTTP responses at the serving boundary.
var (
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrPredictionFailed = errors.New("prediction failed")
)

// Violation is one rejected field with its reason.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ViolationReport is an ordered sequence of violations. An empty report means
// the input satisfies the schema contract.
type ViolationReport []Violation

func (r ViolationReport) Empty() bool { return len(r) == 0 }

func (r ViolationReport) String() string {
	parts := make([]string, 0, len(r))
	for _, v := range r {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return strings.Join(parts, "; ")
}

// ValidationError carries the violation report for a rejected request.
type ValidationError struct {
	Report ViolationReport
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %s", e.Report.String())
}
