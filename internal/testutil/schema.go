package testutil

import (
	"regexp"

	"treatment-scoring-service/internal/core/domain"
)

// NewTreatmentRegistry builds the treatment-outcome schema contract used
// across tests.
func NewTreatmentRegistry() *domain.SchemaRegistry {
	registry, err := domain.NewSchemaRegistry(
		[]string{
			"Patient_ID", "Age", "Gender", "Condition", "Drug_Name",
			"Dosage_mg", "Treatment_Duration_days", "Side_Effects", "Improvement_Score",
		},
		"Patient_ID",
		"Improvement_Score",
		[]domain.FieldConstraint{
			{Name: "Patient_ID", Kind: domain.KindPattern, Pattern: regexp.MustCompile(`^P\d+$`)},
			{Name: "Age", Kind: domain.KindRange, Min: 18, Max: 90},
			{Name: "Gender", Kind: domain.KindCategorical, Values: []string{"Male", "Female"}},
			{Name: "Condition", Kind: domain.KindCategorical, Values: []string{"Hypertension", "Diabetes", "Depression"}},
			{Name: "Drug_Name", Kind: domain.KindCategorical, Values: []string{"Lisinopril", "Metformin", "Sertraline"}},
			{Name: "Dosage_mg", Kind: domain.KindCategorical, Numeric: true, Values: []string{"250", "500", "750"}},
			{Name: "Treatment_Duration_days", Kind: domain.KindRange, Min: 1, Max: 365},
			{Name: "Side_Effects", Kind: domain.KindCategorical, Values: []string{"None", "Mild", "Moderate", "Severe"}},
			{Name: "Improvement_Score", Kind: domain.KindRange, Min: 0, Max: 10},
		},
	)
	if err != nil {
		panic(err)
	}
	return registry
}

// NewValidRecord returns a record that satisfies the treatment schema.
func NewValidRecord() domain.Record {
	return domain.Record{
		PatientID: "P0001",
		Fields: map[string]domain.Value{
			"Age":                     domain.NumberValue(45),
			"Gender":                  domain.StringValue("Male"),
			"Condition":               domain.StringValue("Diabetes"),
			"Drug_Name":               domain.StringValue("Metformin"),
			"Dosage_mg":               domain.NumberValue(500),
			"Treatment_Duration_days": domain.NumberValue(90),
			"Side_Effects":            domain.StringValue("Mild"),
		},
	}
}
