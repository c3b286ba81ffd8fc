package artifact

import (
	"encoding/json"
	"fmt"

	"treatment-scoring-service/internal/core/domain"
)

// Serialized artifact formats. The model file carries a fitted linear
// regressor; the transform file carries the fitted preprocessing parameters
// (scaler statistics per numeric field, category lists per categorical
// field). The feature vector layout is all scaled numerics followed by all
// one-hot blocks, in the order the transform file declares them.

const modelFormatLinear = "linear-regression"

type modelDoc struct {
	Format       string    `json:"format"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

type transformDoc struct {
	Numeric []struct {
		Name string  `json:"name"`
		Mean float64 `json:"mean"`
		Std  float64 `json:"std"`
	} `json:"numeric"`
	Categorical []struct {
		Name       string   `json:"name"`
		Categories []string `json:"categories"`
	} `json:"categorical"`
}

// linearModel implements domain.Model.
type linearModel struct {
	intercept    float64
	coefficients []float64
}

func decodeModel(b []byte) (*linearModel, error) {
	var doc modelDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Format != modelFormatLinear {
		return nil, fmt.Errorf("unsupported model format %q", doc.Format)
	}
	if len(doc.Coefficients) == 0 {
		return nil, fmt.Errorf("model has no coefficients")
	}
	return &linearModel{intercept: doc.Intercept, coefficients: doc.Coefficients}, nil
}

func (m *linearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(m.coefficients))
	}
	score := m.intercept
	for i, f := range features {
		score += m.coefficients[i] * f
	}
	return score, nil
}

type numericFeature struct {
	name string
	mean float64
	std  float64
}

type categoricalFeature struct {
	name       string
	categories []string
}

// featureTransform implements domain.FeatureTransform: standard scaling for
// numeric fields, one-hot encoding for categorical fields. Unknown
// categories are a hard error, never a silent all-zeros encoding.
type featureTransform struct {
	numeric     []numericFeature
	categorical []categoricalFeature
	width       int
}

func decodeTransform(b []byte) (*featureTransform, error) {
	var doc transformDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Numeric) == 0 && len(doc.Categorical) == 0 {
		return nil, fmt.Errorf("transform declares no features")
	}

	t := &featureTransform{}
	for _, n := range doc.Numeric {
		if n.Std <= 0 {
			return nil, fmt.Errorf("numeric feature %q has non-positive std", n.Name)
		}
		t.numeric = append(t.numeric, numericFeature{name: n.Name, mean: n.Mean, std: n.Std})
		t.width++
	}
	for _, c := range doc.Categorical {
		if len(c.Categories) == 0 {
			return nil, fmt.Errorf("categorical feature %q has no categories", c.Name)
		}
		t.categorical = append(t.categorical, categoricalFeature{name: c.Name, categories: c.Categories})
		t.width += len(c.Categories)
	}
	return t, nil
}

func (t *featureTransform) Apply(rec domain.Record) ([]float64, error) {
	out := make([]float64, 0, t.width)

	for _, n := range t.numeric {
		value, ok := rec.Fields[n.name]
		if !ok || !value.IsNumber {
			return nil, fmt.Errorf("missing numeric feature %q", n.name)
		}
		out = append(out, (value.Number-n.mean)/n.std)
	}

	for _, c := range t.categorical {
		value, ok := rec.Fields[c.name]
		if !ok {
			return nil, fmt.Errorf("missing categorical feature %q", c.name)
		}
		text := value.Text
		if value.IsNumber {
			text = domain.CanonicalNumber(value.Number)
		}

		hot := -1
		for i, category := range c.categories {
			if category == text {
				hot = i
				break
			}
		}
		if hot < 0 {
			return nil, fmt.Errorf("feature %q: unknown category %q", c.name, text)
		}
		for i := range c.categories {
			if i == hot {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}

	return out, nil
}

func checkDimensions(m *linearModel, t *featureTransform) error {
	if len(m.coefficients) != t.width {
		return fmt.Errorf("model expects %d features, transform produces %d", len(m.coefficients), t.width)
	}
	return nil
}
