// Package schemafile loads the declarative schema contract from a YAML
// source into an immutable domain.SchemaRegistry.
package schemafile

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"treatment-scoring-service/internal/core/domain"
)

type schemaDoc struct {
	Columns     []string   `yaml:"columns"`
	IDField     string     `yaml:"id_field"`
	TargetField string     `yaml:"target_field"`
	Fields      []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Values  []any    `yaml:"values"`
	Numeric bool     `yaml:"numeric"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Pattern string   `yaml:"pattern"`
}

// Load reads and parses the schema contract. Failures are fatal for the
// caller: a process that cannot load its schema must not accept traffic.
func Load(path string) (*domain.SchemaRegistry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrSchemaInvalid, path, err)
	}

	var doc schemaDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrSchemaInvalid, path, err)
	}

	fields := make([]domain.FieldConstraint, 0, len(doc.Fields))
	for _, fd := range doc.Fields {
		fc, err := mapField(fd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fc)
	}

	return domain.NewSchemaRegistry(doc.Columns, doc.IDField, doc.TargetField, fields)
}

func mapField(fd fieldDoc) (domain.FieldConstraint, error) {
	fc := domain.FieldConstraint{Name: fd.Name}

	switch fd.Kind {
	case string(domain.KindCategorical):
		fc.Kind = domain.KindCategorical
		fc.Numeric = fd.Numeric
		for _, raw := range fd.Values {
			value, err := canonicalValue(raw, fd.Numeric)
			if err != nil {
				return fc, fmt.Errorf("%w: field %q: %v", domain.ErrSchemaInvalid, fd.Name, err)
			}
			fc.Values = append(fc.Values, value)
		}

	case string(domain.KindRange):
		fc.Kind = domain.KindRange
		if fd.Min == nil || fd.Max == nil {
			return fc, fmt.Errorf("%w: range field %q needs min and max", domain.ErrSchemaInvalid, fd.Name)
		}
		fc.Min = *fd.Min
		fc.Max = *fd.Max

	case string(domain.KindPattern):
		fc.Kind = domain.KindPattern
		re, err := regexp.Compile(fd.Pattern)
		if err != nil {
			return fc, fmt.Errorf("%w: pattern field %q: %v", domain.ErrSchemaInvalid, fd.Name, err)
		}
		fc.Pattern = re

	default:
		return fc, fmt.Errorf("%w: field %q has unknown kind %q", domain.ErrSchemaInvalid, fd.Name, fd.Kind)
	}

	return fc, nil
}

// canonicalValue renders an allowed value the same way both validators
// canonicalize incoming values, so YAML 500, 500.0 and "500" are one value.
func canonicalValue(raw any, numeric bool) (string, error) {
	switch v := raw.(type) {
	case string:
		if numeric {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return "", fmt.Errorf("value %q is not numeric", v)
			}
			return domain.CanonicalNumber(f), nil
		}
		return v, nil
	case int:
		return domain.CanonicalNumber(float64(v)), nil
	case float64:
		return domain.CanonicalNumber(v), nil
	default:
		return "", fmt.Errorf("unsupported value %v", raw)
	}
}
