package services

import (
	"treatment-scoring-service/internal/core/domain"
)

// RequestValidator checks a single scoring request against the same
// per-field constraints the batch validator enforces. The constraint methods
// are the shared rule set; this validator only changes the call shape from
// whole-table to one record. All violations are accumulated so the caller can
// surface a complete per-field error list in one response.
type RequestValidator struct {
	registry *domain.SchemaRegistry
}

func NewRequestValidator(registry *domain.SchemaRegistry) *RequestValidator {
	return &RequestValidator{registry: registry}
}

// Validate returns a non-empty report when the record violates the schema
// contract. Unknown categorical values are always rejected: an unrecognized
// drug or condition must not silently receive a prediction based on an
// unintended encoding.
func (v *RequestValidator) Validate(rec domain.Record) domain.ViolationReport {
	var report domain.ViolationReport

	if idField := v.registry.IDField(); idField != "" && rec.PatientID == "" {
		report = append(report, domain.Violation{Field: idField, Message: "field is required"})
	}

	for _, name := range v.registry.FeatureFields() {
		constraint, ok := v.registry.ConstraintFor(name)
		if !ok {
			continue
		}

		value, present := rec.Fields[name]
		if !present {
			report = append(report, domain.Violation{Field: name, Message: "field is required"})
			continue
		}

		var violation *domain.Violation
		if value.IsNumber {
			violation = constraint.CheckNumber(value.Number)
		} else {
			violation = constraint.CheckString(value.Text)
		}
		if violation != nil {
			report = append(report, *violation)
		}
	}

	return report
}
