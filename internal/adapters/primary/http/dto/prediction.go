package dto

import "treatment-scoring-service/internal/core/domain"

// Disclaimer accompanies every served prediction.
const Disclaimer = "This system predicts patient treatment outcome scores to support " +
	"clinical research, quality analysis, and exploratory analytics. " +
	"It does not provide diagnostic or treatment recommendations."

// PredictionRequest is one scoring request. Field names match the dataset
// columns exactly. Pointers distinguish "absent" from zero values so the
// validator can report missing fields by name.
type PredictionRequest struct {
	PatientID             *string  `json:"Patient_ID"`
	Age                   *float64 `json:"Age"`
	Gender                *string  `json:"Gender"`
	Condition             *string  `json:"Condition"`
	DrugName              *string  `json:"Drug_Name"`
	DosageMg              *float64 `json:"Dosage_mg"`
	TreatmentDurationDays *float64 `json:"Treatment_Duration_days"`
	SideEffects           *string  `json:"Side_Effects"`
}

// ToRecord projects the request onto schema fields. Absent fields are simply
// left out of the record; the request validator reports them.
func (r *PredictionRequest) ToRecord() domain.Record {
	rec := domain.Record{Fields: make(map[string]domain.Value)}

	if r.PatientID != nil {
		rec.PatientID = *r.PatientID
	}

	setNumber := func(name string, v *float64) {
		if v != nil {
			rec.Fields[name] = domain.NumberValue(*v)
		}
	}
	setString := func(name string, v *string) {
		if v != nil {
			rec.Fields[name] = domain.StringValue(*v)
		}
	}

	setNumber("Age", r.Age)
	setString("Gender", r.Gender)
	setString("Condition", r.Condition)
	setString("Drug_Name", r.DrugName)
	setNumber("Dosage_mg", r.DosageMg)
	setNumber("Treatment_Duration_days", r.TreatmentDurationDays)
	setString("Side_Effects", r.SideEffects)

	return rec
}

// PredictionResponse mirrors the request's identifier and carries the score
// with the artifact version that produced it.
type PredictionResponse struct {
	PatientID        string  `json:"Patient_ID"`
	ImprovementScore float64 `json:"Improvement_Score"`
	ModelVersion     string  `json:"model_version"`
	Disclaimer       string  `json:"disclaimer"`
}

func ToPredictionResponse(p *domain.Prediction) PredictionResponse {
	return PredictionResponse{
		PatientID:        p.PatientID,
		ImprovementScore: p.Score,
		ModelVersion:     p.ModelVersion,
		Disclaimer:       Disclaimer,
	}
}

// ValidationErrorResponse is the enumerable per-field error list returned for
// a rejected request.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func ToValidationErrorResponse(report domain.ViolationReport) ValidationErrorResponse {
	out := ValidationErrorResponse{Errors: make([]FieldError, 0, len(report))}
	for _, v := range report {
		out.Errors = append(out.Errors, FieldError{Field: v.Field, Message: v.Message})
	}
	return out
}

// HealthResponse reports readiness of the serving process.
type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version"`
}

// RangeValues is the inclusive numeric domain of a range field.
type RangeValues struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DropdownValuesResponse exposes the registry's allowed values for
// client-side form population. It is derived from the same SchemaRegistry
// both validators use, so the form can never drift from validation.
type DropdownValuesResponse struct {
	Categorical    map[string][]string  `json:"categorical"`
	NumericOptions map[string][]float64 `json:"numeric_options"`
	Ranges         map[string]RangeValues `json:"ranges"`
}
