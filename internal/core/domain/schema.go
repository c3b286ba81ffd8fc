package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldKind tags the variant of a FieldConstraint.
type FieldKind string

const (
	// KindCategorical restricts a field to a fixed set of allowed values.
	KindCategorical FieldKind = "categorical"
	// KindRange restricts a numeric field to an inclusive [min, max] bound.
	KindRange FieldKind = "range"
	// KindPattern restricts a free-text field to a lexical pattern.
	KindPattern FieldKind = "pattern"
)

// FieldConstraint is the per-field rule of the schema contract. The same
// check methods drive both the batch and the single-record validators, so
// rule logic cannot diverge between the two call sites.
type FieldConstraint struct {
	Name    string
	Kind    FieldKind
	Values  []string       // KindCategorical: allowed values in declared order, canonical form
	Numeric bool           // KindCategorical: values are numbers (e.g. dosages)
	Min     float64        // KindRange
	Max     float64        // KindRange
	Pattern *regexp.Regexp // KindPattern
}

// CanonicalNumber renders a float the way categorical numeric values are
// stored in the registry, so 500, 500.0 and "500" all compare equal.
func CanonicalNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CheckString validates a raw text value against the constraint.
// Returns nil when the value is allowed.
func (c *FieldConstraint) CheckString(v string) *Violation {
	switch c.Kind {
	case KindCategorical:
		candidate := v
		if c.Numeric {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return c.categoricalViolation(v)
			}
			candidate = CanonicalNumber(f)
		}
		for _, allowed := range c.Values {
			if candidate == allowed {
				return nil
			}
		}
		return c.categoricalViolation(v)

	case KindRange:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return &Violation{
				Field:   c.Name,
				Message: fmt.Sprintf("value %q is not numeric", v),
			}
		}
		return c.CheckNumber(f)

	case KindPattern:
		if c.Pattern != nil && !c.Pattern.MatchString(v) {
			return &Violation{
				Field:   c.Name,
				Message: fmt.Sprintf("value %q does not match required format %s", v, c.Pattern.String()),
			}
		}
		return nil
	}

	return nil
}

// CheckNumber validates a numeric value against the constraint.
func (c *FieldConstraint) CheckNumber(v float64) *Violation {
	switch c.Kind {
	case KindCategorical:
		candidate := CanonicalNumber(v)
		for _, allowed := range c.Values {
			if candidate == allowed {
				return nil
			}
		}
		return c.categoricalViolation(candidate)

	case KindRange:
		if v < c.Min || v > c.Max {
			return &Violation{
				Field: c.Name,
				Message: fmt.Sprintf("value %s out of range [%s, %s]",
					CanonicalNumber(v), CanonicalNumber(c.Min), CanonicalNumber(c.Max)),
			}
		}
		return nil

	case KindPattern:
		return c.CheckString(CanonicalNumber(v))
	}

	return nil
}

func (c *FieldConstraint) categoricalViolation(v string) *Violation {
	return &Violation{
		Field:   c.Name,
		Message: fmt.Sprintf("invalid value %q: must be one of: %s", v, strings.Join(c.Values, ", ")),
	}
}

// SchemaRegistry holds the full field-constraint set of the schema contract.
// Constructed once at startup and never mutated afterward, so it is shared by
// both validators without synchronization.
type SchemaRegistry struct {
	columns []string
	idField string
	target  string
	fields  []FieldConstraint
	byName  map[string]int
}

// NewSchemaRegistry assembles a registry from a parsed schema description.
// Every declared column must carry exactly one constraint, and every
// constraint must refer to a declared column.
func NewSchemaRegistry(columns []string, idField, target string, fields []FieldConstraint) (*SchemaRegistry, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns declared", ErrSchemaInvalid)
	}

	declared := make(map[string]bool, len(columns))
	for _, col := range columns {
		if declared[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaInvalid, col)
		}
		declared[col] = true
	}
	if idField != "" && !declared[idField] {
		return nil, fmt.Errorf("%w: id field %q is not a declared column", ErrSchemaInvalid, idField)
	}
	if target != "" && !declared[target] {
		return nil, fmt.Errorf("%w: target field %q is not a declared column", ErrSchemaInvalid, target)
	}

	byName := make(map[string]int, len(fields))
	for i := range fields {
		fc := &fields[i]
		if fc.Name == "" {
			return nil, fmt.Errorf("%w: constraint without a field name", ErrSchemaInvalid)
		}
		if !declared[fc.Name] {
			return nil, fmt.Errorf("%w: constraint for undeclared column %q", ErrSchemaInvalid, fc.Name)
		}
		if _, dup := byName[fc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate constraint for field %q", ErrSchemaInvalid, fc.Name)
		}
		switch fc.Kind {
		case KindCategorical:
			if len(fc.Values) == 0 {
				return nil, fmt.Errorf("%w: categorical field %q has no allowed values", ErrSchemaInvalid, fc.Name)
			}
		case KindRange:
			if fc.Min > fc.Max {
				return nil, fmt.Errorf("%w: range field %q has min > max", ErrSchemaInvalid, fc.Name)
			}
		case KindPattern:
			if fc.Pattern == nil {
				return nil, fmt.Errorf("%w: pattern field %q has no pattern", ErrSchemaInvalid, fc.Name)
			}
		default:
			return nil, fmt.Errorf("%w: field %q has unknown kind %q", ErrSchemaInvalid, fc.Name, fc.Kind)
		}
		byName[fc.Name] = i
	}

	for _, col := range columns {
		if _, ok := byName[col]; !ok {
			return nil, fmt.Errorf("%w: column %q has no constraint", ErrSchemaInvalid, col)
		}
	}

	return &SchemaRegistry{
		columns: append([]string(nil), columns...),
		idField: idField,
		target:  target,
		fields:  fields,
		byName:  byName,
	}, nil
}

// ConstraintFor looks up the constraint for a field. The returned pointer is
// shared read-only state and must not be mutated.
func (r *SchemaRegistry) ConstraintFor(name string) (*FieldConstraint, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return &r.fields[i], true
}

// Columns returns the full dataset column set in declared order.
func (r *SchemaRegistry) Columns() []string {
	return append([]string(nil), r.columns...)
}

// IDField is the identifier column, a passthrough rather than a feature.
func (r *SchemaRegistry) IDField() string { return r.idField }

// TargetField is the training target column, absent from serving requests.
func (r *SchemaRegistry) TargetField() string { return r.target }

// FeatureFields returns the feature columns in declared order: every column
// except the identifier and the target.
func (r *SchemaRegistry) FeatureFields() []string {
	out := make([]string, 0, len(r.columns))
	for _, col := range r.columns {
		if col == r.idField || col == r.target {
			continue
		}
		out = append(out, col)
	}
	return out
}
