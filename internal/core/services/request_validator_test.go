package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treatment-scoring-service/internal/core/domain"
	"treatment-scoring-service/internal/testutil"
)

func TestRequestValidator_AcceptsValidRecord(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	report := v.Validate(testutil.NewValidRecord())
	assert.True(t, report.Empty(), "unexpected violations: %s", report.String())
}

func TestRequestValidator_RejectsUnknownCategorical(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	rec := testutil.NewValidRecord()
	rec.Fields["Gender"] = domain.StringValue("Other")

	report := v.Validate(rec)
	assert.Len(t, report, 1)
	assert.Equal(t, "Gender", report[0].Field)
	assert.Contains(t, report[0].Message, `"Other"`)
}

// An unknown categorical is rejected even when every other field is valid,
// regardless of which field it is.
func TestRequestValidator_UnknownCategoricalAlwaysRejected(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	for _, field := range []string{"Gender", "Condition", "Drug_Name", "Side_Effects"} {
		rec := testutil.NewValidRecord()
		rec.Fields[field] = domain.StringValue("Unrecognized")

		report := v.Validate(rec)
		assert.Len(t, report, 1, "field %s", field)
		assert.Equal(t, field, report[0].Field)
	}
}

func TestRequestValidator_RangeBounds(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	rec := testutil.NewValidRecord()
	rec.Fields["Age"] = domain.NumberValue(91)

	report := v.Validate(rec)
	assert.Len(t, report, 1)
	assert.Equal(t, "Age", report[0].Field)
	assert.Contains(t, report[0].Message, "out of range [18, 90]")
}

func TestRequestValidator_RejectsDosageOutsideAllowedSet(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	rec := testutil.NewValidRecord()
	rec.Fields["Dosage_mg"] = domain.NumberValue(300)

	report := v.Validate(rec)
	assert.Len(t, report, 1)
	assert.Equal(t, "Dosage_mg", report[0].Field)
	assert.Contains(t, report[0].Message, "250, 500, 750")
}

func TestRequestValidator_MissingFields(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	rec := testutil.NewValidRecord()
	delete(rec.Fields, "Condition")
	delete(rec.Fields, "Side_Effects")
	rec.PatientID = ""

	report := v.Validate(rec)
	assert.Len(t, report, 3)
	assert.Equal(t, "Patient_ID", report[0].Field)
	assert.Equal(t, "Condition", report[1].Field)
	assert.Equal(t, "Side_Effects", report[2].Field)
	for _, violation := range report {
		assert.Equal(t, "field is required", violation.Message)
	}
}

func TestRequestValidator_AccumulatesAllViolations(t *testing.T) {
	v := NewRequestValidator(testutil.NewTreatmentRegistry())

	rec := testutil.NewValidRecord()
	rec.Fields["Age"] = domain.NumberValue(12)
	rec.Fields["Gender"] = domain.StringValue("Other")
	rec.Fields["Drug_Name"] = domain.StringValue("Placebo")

	report := v.Validate(rec)
	assert.Len(t, report, 3)
	// Declared field order makes the report deterministic.
	assert.Equal(t, "Age", report[0].Field)
	assert.Equal(t, "Gender", report[1].Field)
	assert.Equal(t, "Drug_Name", report[2].Field)
}

// Any record the point validator accepts must also pass the batch validator
// as a one-row table: the two call sites share one rule set.
func TestValidators_BatchAndPointConsistency(t *testing.T) {
	registry := testutil.NewTreatmentRegistry()
	requestV := NewRequestValidator(registry)
	datasetV := NewDatasetValidator(registry)

	records := []domain.Record{
		testutil.NewValidRecord(),
		{
			PatientID: "P42",
			Fields: map[string]domain.Value{
				"Age":                     domain.NumberValue(18),
				"Gender":                  domain.StringValue("Female"),
				"Condition":               domain.StringValue("Hypertension"),
				"Drug_Name":               domain.StringValue("Lisinopril"),
				"Dosage_mg":               domain.NumberValue(750),
				"Treatment_Duration_days": domain.NumberValue(365),
				"Side_Effects":            domain.StringValue("None"),
			},
		},
	}

	for _, rec := range records {
		assert.True(t, requestV.Validate(rec).Empty())

		row := make([]string, 0, len(registry.Columns()))
		for _, col := range registry.Columns() {
			switch col {
			case registry.IDField():
				row = append(row, rec.PatientID)
			case registry.TargetField():
				row = append(row, "5")
			default:
				value := rec.Fields[col]
				if value.IsNumber {
					row = append(row, domain.CanonicalNumber(value.Number))
				} else {
					row = append(row, value.Text)
				}
			}
		}

		report := datasetV.Validate(domain.Table{
			Columns: registry.Columns(),
			Rows:    [][]string{row},
		})
		assert.True(t, report.Empty(), "batch validator rejected an accepted record: %s", report.String())
	}
}
