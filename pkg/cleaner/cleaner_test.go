// pkg/cleaner/cleaner_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/table"
)

func newCleaner(t *testing.T) *Cleaner {
	t.Helper()
	c, err := NewCleaner(zap.NewNop())
	require.NoError(t, err)
	return c
}

func buildTable(t *testing.T, cols []string, rows ...[]table.Value) *table.Table {
	t.Helper()
	tbl, err := table.New(cols)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func TestCleanImputesMedianForNumericColumns(t *testing.T) {
	tbl := buildTable(t, []string{"tenure"},
		[]table.Value{table.Num(10)},
		[]table.Value{table.Num(20)},
		[]table.Value{table.Missing()},
		[]table.Value{table.Num(30)},
	)

	out, report, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 0, out.MissingCount())
	assert.Equal(t, 1, report.ImputedCells)

	v, err := out.Value(2, "tenure")
	require.NoError(t, err)
	f, _ := v.Float()
	assert.Equal(t, 20.0, f, "median of 10, 20, 30")
}

func TestCleanImputesModeForCategoricalColumns(t *testing.T) {
	tbl := buildTable(t, []string{"Contract"},
		[]table.Value{table.Str("Month-to-month")},
		[]table.Value{table.Str("Month-to-month")},
		[]table.Value{table.Str("Two year")},
		[]table.Value{table.Missing()},
	)

	out, report, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	v, err := out.Value(3, "Contract")
	require.NoError(t, err)
	assert.Equal(t, "Month-to-month", v.String())
	assert.Equal(t, 1, report.ImputedCells)
}

func TestCleanModeTieBreaksLexicographically(t *testing.T) {
	tbl := buildTable(t, []string{"c"},
		[]table.Value{table.Str("beta")},
		[]table.Value{table.Str("alpha")},
		[]table.Value{table.Missing()},
	)

	out, _, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	v, err := out.Value(2, "c")
	require.NoError(t, err)
	assert.Equal(t, "alpha", v.String())
}

func TestCleanCoercesNumericText(t *testing.T) {
	// TotalCharges arrives as text; most cells parse so the column counts
	// as numeric and text cells are coerced.
	tbl := buildTable(t, []string{"TotalCharges"},
		[]table.Value{table.Str("358.20")},
		[]table.Value{table.Str("4783.20")},
		[]table.Value{table.Str("108.15")},
	)

	out, report, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 3, report.CoercedCells)
	v, err := out.Value(0, "TotalCharges")
	require.NoError(t, err)
	assert.Equal(t, table.KindNumeric, v.Kind())
}

func TestCleanNormalizesDependentServiceLevels(t *testing.T) {
	tbl := buildTable(t, []string{"OnlineSecurity", "MultipleLines"},
		[]table.Value{table.Str("No internet service"), table.Str("No phone service")},
		[]table.Value{table.Str("Yes"), table.Str("Yes")},
	)

	out, report, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	v, err := out.Value(0, "OnlineSecurity")
	require.NoError(t, err)
	assert.Equal(t, "No", v.String())

	v, err = out.Value(0, "MultipleLines")
	require.NoError(t, err)
	assert.Equal(t, "No", v.String())

	kinds := make([]string, 0, len(report.Operations))
	for _, op := range report.Operations {
		kinds = append(kinds, op.Kind)
	}
	assert.Contains(t, kinds, "value_normalization")
}

func TestCleanDropsDuplicateRows(t *testing.T) {
	tbl := buildTable(t, []string{"a", "b"},
		[]table.Value{table.Num(1), table.Str("x")},
		[]table.Value{table.Num(1), table.Str("x")},
		[]table.Value{table.Num(2), table.Str("y")},
	)

	out, report, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, 1, report.DuplicatesRemoved)
	assert.Equal(t, 3, report.InitialRows)
	assert.Equal(t, 2, report.FinalRows)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	tbl := buildTable(t, []string{"tenure"},
		[]table.Value{table.Num(10)},
		[]table.Value{table.Missing()},
	)

	_, _, err := newCleaner(t).Clean(tbl)
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.MissingCount(), "input table must stay untouched")
}

func TestCleanRejectsEmptyInput(t *testing.T) {
	tbl, err := table.New([]string{"a"})
	require.NoError(t, err)

	_, _, err = newCleaner(t).Clean(tbl)
	assert.Error(t, err)

	_, _, err = newCleaner(t).Clean(nil)
	assert.Error(t, err)
}
