package domain

// Value is one field value of an incoming record: either raw text or a
// number, depending on how the field arrived on the wire.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
}

func StringValue(s string) Value  { return Value{Text: s} }
func NumberValue(f float64) Value { return Value{Number: f, IsNumber: true} }

// Record is a single scoring request projected onto schema fields. The
// identifier travels separately; it is an opaque passthrough, not a feature.
type Record struct {
	PatientID string
	Fields    map[string]Value
}

// Table is a materialized tabular dataset: raw cell text in row-major order.
// An empty cell is a null. Reading and parsing the underlying file is the
// ingestion stage's responsibility.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Prediction is a served score, clamped to the declared output range and
// tagged with the artifact version that produced it.
type Prediction struct {
	PatientID    string
	Score        float64
	ModelVersion string
}
