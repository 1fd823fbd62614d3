// pkg/cleaner/impute.go
package cleaner

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/telco-insights/churnpipe/pkg/table"
)

// imputeMedian fills missing numeric cells with the column median and
// returns the number of cells filled.
func imputeMedian(values []table.Value) int {
	var present []float64
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		if f, ok := v.Float(); ok {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		// Nothing to anchor the imputation on; fall back to zero.
		present = []float64{0}
	}
	sort.Float64s(present)
	median := stat.Quantile(0.5, stat.Empirical, present, nil)

	filled := 0
	for i, v := range values {
		if v.IsMissing() {
			values[i] = table.Num(median)
			filled++
		}
	}
	return filled
}

// imputeMode fills missing categorical cells with the most frequent level
// and returns the number of cells filled. Frequency ties break on the
// lexicographically smaller level so imputation stays deterministic.
func imputeMode(values []table.Value) int {
	counts := make(map[string]int)
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		counts[v.String()]++
	}

	mode := "Unknown"
	best := 0
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		if counts[level] > best {
			best = counts[level]
			mode = level
		}
	}

	filled := 0
	for i, v := range values {
		if v.IsMissing() {
			values[i] = table.Str(mode)
			filled++
		}
	}
	return filled
}
