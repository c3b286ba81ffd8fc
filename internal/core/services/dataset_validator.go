package services

import (
	"fmt"
	"sort"
	"strings"

	"treatment-scoring-service/internal/core/domain"
)

// DatasetValidator checks an entire materialized table against the schema
// contract. It accumulates every violation in one pass: dataset curation is a
// multi-error workflow, so the pipeline gets the whole defect list at once
// instead of failing on the first problem.
type DatasetValidator struct {
	registry *domain.SchemaRegistry
}

func NewDatasetValidator(registry *domain.SchemaRegistry) *DatasetValidator {
	return &DatasetValidator{registry: registry}
}

// Validate runs the full check sequence: column set, nulls, per-field domain
// rules. An empty report means the dataset is eligible for the next pipeline
// stage. Domain violations are aggregated per field by distinct offending
// value, not reported per row.
func (v *DatasetValidator) Validate(tbl domain.Table) domain.ViolationReport {
	var report domain.ViolationReport

	report = append(report, v.checkColumns(tbl)...)
	report = append(report, v.checkNulls(tbl)...)
	report = append(report, v.checkDomains(tbl)...)

	return report
}

func (v *DatasetValidator) checkColumns(tbl domain.Table) domain.ViolationReport {
	expected := make(map[string]bool)
	for _, col := range v.registry.Columns() {
		expected[col] = true
	}
	actual := make(map[string]bool, len(tbl.Columns))
	for _, col := range tbl.Columns {
		actual[col] = true
	}

	var missing, extra []string
	for col := range expected {
		if !actual[col] {
			missing = append(missing, col)
		}
	}
	for col := range actual {
		if !expected[col] {
			extra = append(extra, col)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)

	var report domain.ViolationReport
	if len(missing) > 0 {
		report = append(report, domain.Violation{
			Field:   "columns",
			Message: fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")),
		})
	}
	if len(extra) > 0 {
		report = append(report, domain.Violation{
			Field:   "columns",
			Message: fmt.Sprintf("unexpected columns: %s", strings.Join(extra, ", ")),
		})
	}
	return report
}

func (v *DatasetValidator) checkNulls(tbl domain.Table) domain.ViolationReport {
	counts := make([]int, len(tbl.Columns))
	for _, row := range tbl.Rows {
		for i := range tbl.Columns {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				counts[i]++
			}
		}
	}

	var report domain.ViolationReport
	for i, col := range tbl.Columns {
		if counts[i] > 0 {
			report = append(report, domain.Violation{
				Field:   col,
				Message: fmt.Sprintf("%d null values", counts[i]),
			})
		}
	}
	return report
}

// checkDomains applies the shared per-field rules column by column. Each
// offending distinct value appears once, in first-seen order; null cells are
// skipped here because checkNulls already reported them.
func (v *DatasetValidator) checkDomains(tbl domain.Table) domain.ViolationReport {
	var report domain.ViolationReport

	for i, col := range tbl.Columns {
		constraint, ok := v.registry.ConstraintFor(col)
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		var offending []string
		for _, row := range tbl.Rows {
			if i >= len(row) {
				continue
			}
			cell := row[i]
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if seen[cell] {
				continue
			}
			seen[cell] = true
			if violation := constraint.CheckString(cell); violation != nil {
				offending = append(offending, cell)
			}
		}

		if len(offending) > 0 {
			report = append(report, domain.Violation{
				Field:   col,
				Message: domainMessage(constraint, offending),
			})
		}
	}

	return report
}

func domainMessage(c *domain.FieldConstraint, offending []string) string {
	joined := strings.Join(offending, ", ")
	switch c.Kind {
	case domain.KindCategorical:
		return fmt.Sprintf("invalid values: %s (must be one of: %s)", joined, strings.Join(c.Values, ", "))
	case domain.KindRange:
		return fmt.Sprintf("values out of range [%s, %s]: %s",
			domain.CanonicalNumber(c.Min), domain.CanonicalNumber(c.Max), joined)
	case domain.KindPattern:
		return fmt.Sprintf("invalid format (expected %s): %s", c.Pattern.String(), joined)
	}
	return fmt.Sprintf("invalid values: %s", joined)
}
