// pkg/features/derive.go
package features

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/telco-insights/churnpipe/pkg/table"
)

type derived struct {
	name   string
	values []float64
}

// deriveFeatures computes the derived columns the reference feature set
// defines. Each is only produced when its source columns are present, so
// the engineer works on any schema that passes loader validation.
func (e *Engineer) deriveFeatures(t *table.Table) []derived {
	var out []derived

	if col := totalServices(t); col != nil {
		out = append(out, derived{"feature_total_services", col})
	}
	if col := boolFeature(t, "Partner", "Dependents"); col != nil {
		out = append(out, derived{"feature_has_family", col})
	}
	if col := flagColumn(t, "MultipleLines", "Yes"); col != nil {
		out = append(out, derived{"feature_multiple_lines", col})
	}
	if col := notFlagColumn(t, "Contract", "Month-to-month"); col != nil {
		out = append(out, derived{"feature_long_contract", col})
	}

	tenure := floatColumn(t, "tenure")
	monthly := floatColumn(t, "MonthlyCharges")
	total := floatColumn(t, "TotalCharges")

	if tenure != nil && monthly != nil {
		col := make([]float64, len(tenure))
		for i := range col {
			col[i] = monthly[i] / (tenure[i] + 1)
		}
		out = append(out, derived{"feature_monthly_per_tenure", col})
	}
	if tenure != nil && total != nil {
		col := make([]float64, len(tenure))
		for i := range col {
			col[i] = total[i] / (tenure[i] + 1)
		}
		out = append(out, derived{"feature_total_per_tenure", col})
	}
	if monthly != nil && total != nil {
		col := make([]float64, len(monthly))
		for i := range col {
			col[i] = total[i] - monthly[i]
		}
		out = append(out, derived{"feature_charges_difference", col})
	}
	if tenure != nil {
		out = append(out, derived{"feature_tenure_bucket", quantileBuckets(tenure, 4)})
	}

	return out
}

// totalServices counts subscribed services per row across the service
// columns present in the table.
func totalServices(t *table.Table) []float64 {
	present := make([]string, 0, len(serviceColumns))
	for _, col := range serviceColumns {
		if t.HasColumn(col) {
			present = append(present, col)
		}
	}
	if len(present) == 0 {
		return nil
	}
	out := make([]float64, t.NumRows())
	for _, col := range present {
		values, err := t.Column(col)
		if err != nil {
			continue
		}
		for i, v := range values {
			if v.String() != "No" {
				out[i]++
			}
		}
	}
	return out
}

// boolFeature is 1 where any of the given columns equals "Yes".
func boolFeature(t *table.Table, cols ...string) []float64 {
	any := false
	out := make([]float64, t.NumRows())
	for _, col := range cols {
		if !t.HasColumn(col) {
			continue
		}
		any = true
		values, err := t.Column(col)
		if err != nil {
			continue
		}
		for i, v := range values {
			if v.String() == "Yes" {
				out[i] = 1
			}
		}
	}
	if !any {
		return nil
	}
	return out
}

func flagColumn(t *table.Table, col, match string) []float64 {
	if !t.HasColumn(col) {
		return nil
	}
	values, err := t.Column(col)
	if err != nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if v.String() == match {
			out[i] = 1
		}
	}
	return out
}

func notFlagColumn(t *table.Table, col, match string) []float64 {
	out := flagColumn(t, col, match)
	if out == nil {
		return nil
	}
	for i := range out {
		out[i] = 1 - out[i]
	}
	return out
}

func floatColumn(t *table.Table, col string) []float64 {
	if !t.HasColumn(col) {
		return nil
	}
	values, err := t.Column(col)
	if err != nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.Float()
		if !ok {
			return nil
		}
		out[i] = f
	}
	return out
}

// quantileBuckets assigns each value to one of n quantile-delimited bins.
func quantileBuckets(values []float64, n int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	cuts := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		p := float64(i) / float64(n)
		cuts = append(cuts, stat.Quantile(p, stat.Empirical, sorted, nil))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		bucket := 0
		for _, cut := range cuts {
			if v > cut {
				bucket++
			}
		}
		out[i] = float64(bucket)
	}
	return out
}
