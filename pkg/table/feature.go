// pkg/table/feature.go
package table

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FeatureTable is the model-ready view of a record table: a dense numeric
// matrix plus the binary label vector that was split out of it. It contains
// no missing values and no categorical columns.
type FeatureTable struct {
	names []string
	x     *mat.Dense
	y     []int
}

// NewFeatureTable builds a feature table and enforces its invariants:
// the matrix must be rectangular, label-free, and NaN-free, and the label
// vector must be binary and aligned with the rows.
func NewFeatureTable(names []string, rows [][]float64, labels []int) (*FeatureTable, error) {
	if len(names) == 0 {
		return nil, errors.New("feature table requires at least one feature")
	}
	if len(rows) == 0 {
		return nil, errors.New("feature table requires at least one row")
	}
	if len(labels) != len(rows) {
		return nil, fmt.Errorf("label count %d does not match row count %d", len(labels), len(rows))
	}
	x := mat.NewDense(len(rows), len(names), nil)
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", r, len(row), len(names))
		}
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("row %d, feature %q: non-finite value", r, names[c])
			}
			x.Set(r, c, v)
		}
	}
	for i, l := range labels {
		if l != 0 && l != 1 {
			return nil, fmt.Errorf("label %d at row %d is not binary", l, i)
		}
	}
	return &FeatureTable{
		names: append([]string(nil), names...),
		x:     x,
		y:     append([]int(nil), labels...),
	}, nil
}

// FeatureNames returns the feature column names in matrix order.
func (ft *FeatureTable) FeatureNames() []string {
	return append([]string(nil), ft.names...)
}

// NumRows returns the number of samples.
func (ft *FeatureTable) NumRows() int {
	r, _ := ft.x.Dims()
	return r
}

// NumFeatures returns the width of the feature matrix.
func (ft *FeatureTable) NumFeatures() int {
	_, c := ft.x.Dims()
	return c
}

// Matrix returns the underlying gonum matrix. Read-only by convention.
func (ft *FeatureTable) Matrix() *mat.Dense { return ft.x }

// Rows materializes the matrix as row slices for the classifiers.
func (ft *FeatureTable) Rows() [][]float64 {
	r, c := ft.x.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		mat.Row(row, i, ft.x)
		out[i] = row
	}
	return out
}

// Labels returns a copy of the label vector.
func (ft *FeatureTable) Labels() []int {
	return append([]int(nil), ft.y...)
}

// PositiveRate returns the share of rows labeled 1.
func (ft *FeatureTable) PositiveRate() float64 {
	if len(ft.y) == 0 {
		return 0
	}
	pos := 0
	for _, l := range ft.y {
		if l == 1 {
			pos++
		}
	}
	return float64(pos) / float64(len(ft.y))
}

// Subset returns a new feature table restricted to the given row indices.
func (ft *FeatureTable) Subset(indices []int) (*FeatureTable, error) {
	if len(indices) == 0 {
		return nil, errors.New("subset requires at least one row index")
	}
	r, c := ft.x.Dims()
	rows := make([][]float64, len(indices))
	labels := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= r {
			return nil, fmt.Errorf("row index %d out of range (%d rows)", idx, r)
		}
		row := make([]float64, c)
		mat.Row(row, idx, ft.x)
		rows[i] = row
		labels[i] = ft.y[idx]
	}
	return NewFeatureTable(ft.names, rows, labels)
}
