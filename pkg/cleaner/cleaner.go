// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/table"
)

// Cleaner normalizes a freshly loaded record table: it standardizes
// inconsistent categorical values, coerces numeric-typed text columns,
// imputes missing values, and drops duplicate rows. It performs no I/O and
// never mutates its input.
type Cleaner struct {
	logger *zap.Logger
}

// Operation records one cleaning action applied to a column
type Operation struct {
	Column string `json:"column"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
	Cells  int    `json:"cells"`
}

// Report summarizes what cleaning changed
type Report struct {
	InitialRows       int         `json:"initial_rows"`
	FinalRows         int         `json:"final_rows"`
	InitialMissing    int         `json:"initial_missing"`
	ImputedCells      int         `json:"imputed_cells"`
	CoercedCells      int         `json:"coerced_cells"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
	Operations        []Operation `json:"operations"`
}

// NewCleaner creates a new Cleaner instance
func NewCleaner(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger.Named("cleaner")}, nil
}

// Clean returns a cleaned copy of the table plus a report of the operations
// performed. The output contains no missing values.
func (c *Cleaner) Clean(t *table.Table) (*table.Table, *Report, error) {
	if t == nil {
		return nil, nil, errors.New("input table cannot be nil")
	}
	if t.NumRows() == 0 {
		return nil, nil, errors.New("input table has no rows")
	}

	c.logger.Info("Cleaning dataset",
		zap.Int("rows", t.NumRows()),
		zap.Int("missing_cells", t.MissingCount()),
	)

	out := t.Clone()
	report := &Report{
		InitialRows:    out.NumRows(),
		InitialMissing: out.MissingCount(),
	}

	normalizeServiceValues(out, report)

	for _, col := range out.Columns() {
		if err := c.cleanColumn(out, col, report); err != nil {
			return nil, nil, fmt.Errorf("failed to clean column %q: %w", col, err)
		}
	}

	out = dropDuplicateRows(out, report)
	report.FinalRows = out.NumRows()

	if remaining := out.MissingCount(); remaining != 0 {
		return nil, nil, fmt.Errorf("cleaning left %d missing cells", remaining)
	}

	c.logger.Info("Cleaning complete",
		zap.Int("rows", report.FinalRows),
		zap.Int("imputed_cells", report.ImputedCells),
		zap.Int("coerced_cells", report.CoercedCells),
		zap.Int("duplicates_removed", report.DuplicatesRemoved),
	)
	return out, report, nil
}

// cleanColumn coerces a single column to a uniform type and imputes its
// missing values: median for numeric columns, mode for categorical ones.
func (c *Cleaner) cleanColumn(t *table.Table, col string, report *Report) error {
	values, err := t.Column(col)
	if err != nil {
		return err
	}

	numeric := isNumericColumn(values)
	coerced := 0
	if numeric {
		// Text cells that fail to parse become missing and are imputed below.
		for i, v := range values {
			if v.IsMissing() || v.Kind() == table.KindNumeric {
				continue
			}
			if f, ok := v.Float(); ok {
				values[i] = table.Num(f)
			} else {
				values[i] = table.Missing()
			}
			coerced++
		}
	} else {
		for i, v := range values {
			if v.Kind() == table.KindNumeric {
				values[i] = table.Str(v.String())
				coerced++
			}
		}
	}
	if coerced > 0 {
		report.CoercedCells += coerced
		report.Operations = append(report.Operations, Operation{
			Column: col,
			Kind:   "type_coercion",
			Reason: "inconsistent_value_type",
			Cells:  coerced,
		})
		c.logger.Debug("Coerced column values", zap.String("column", col), zap.Int("cells", coerced))
	}

	imputed := 0
	if numeric {
		imputed = imputeMedian(values)
		if imputed > 0 {
			report.Operations = append(report.Operations, Operation{
				Column: col, Kind: "impute_median", Reason: "missing_value", Cells: imputed,
			})
		}
	} else {
		imputed = imputeMode(values)
		if imputed > 0 {
			report.Operations = append(report.Operations, Operation{
				Column: col, Kind: "impute_mode", Reason: "missing_value", Cells: imputed,
			})
		}
	}
	if imputed > 0 {
		report.ImputedCells += imputed
		c.logger.Debug("Imputed missing values", zap.String("column", col), zap.Int("cells", imputed))
	}

	return t.SetColumn(col, values)
}

// normalizeServiceValues maps dependent service answers onto plain "No",
// so "No internet service" and "No phone service" collapse into one level.
func normalizeServiceValues(t *table.Table, report *Report) {
	for _, col := range t.Columns() {
		values, err := t.Column(col)
		if err != nil {
			continue
		}
		changed := 0
		for i, v := range values {
			if v.Kind() != table.KindCategorical {
				continue
			}
			s := strings.ToLower(v.String())
			if s == "no internet service" || s == "no phone service" {
				values[i] = table.Str("No")
				changed++
			}
		}
		if changed > 0 {
			_ = t.SetColumn(col, values)
			report.Operations = append(report.Operations, Operation{
				Column: col,
				Kind:   "value_normalization",
				Reason: "dependent_service_level",
				Cells:  changed,
			})
		}
	}
}

// dropDuplicateRows removes exact duplicate rows, keeping the first.
func dropDuplicateRows(t *table.Table, report *Report) *table.Table {
	seen := make(map[string]bool, t.NumRows())
	out := t.FilterRows(func(row []table.Value) bool {
		var b strings.Builder
		for _, v := range row {
			b.WriteString(v.String())
			b.WriteByte('\x1f')
		}
		key := b.String()
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
	report.DuplicatesRemoved = t.NumRows() - out.NumRows()
	return out
}

// isNumericColumn reports whether the majority of present cells parse as
// numbers. Columns like TotalCharges arrive as text with stray blanks and
// still count as numeric.
func isNumericColumn(values []table.Value) bool {
	present, parseable := 0, 0
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		present++
		if _, ok := v.Float(); ok {
			parseable++
		}
	}
	if present == 0 {
		return false
	}
	return float64(parseable)/float64(present) > 0.5
}
