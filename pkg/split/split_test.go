// pkg/split/split_test.go
package split

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telco-insights/churnpipe/pkg/table"
)

// labeledTable builds n rows where each row's single feature is its index,
// with the requested positive share.
func labeledTable(t *testing.T, n int, positiveShare float64) *table.FeatureTable {
	t.Helper()
	rows := make([][]float64, n)
	labels := make([]int, n)
	nPos := int(positiveShare * float64(n))
	for i := 0; i < n; i++ {
		rows[i] = []float64{float64(i)}
		if i < nPos {
			labels[i] = 1
		}
	}
	ft, err := table.NewFeatureTable([]string{"f"}, rows, labels)
	require.NoError(t, err)
	return ft
}

func TestStratifiedSplitSizes(t *testing.T) {
	ft := labeledTable(t, 100, 0.3)

	train, test, err := Stratified(ft, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, 80, train.NumRows())
	assert.Equal(t, 20, test.NumRows())
}

func TestStratifiedPreservesClassBalance(t *testing.T) {
	ft := labeledTable(t, 200, 0.25)

	train, test, err := Stratified(ft, 0.2, 42)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, train.PositiveRate(), 0.02)
	assert.InDelta(t, 0.25, test.PositiveRate(), 0.02)
}

func TestStratifiedDisjointAndComplete(t *testing.T) {
	ft := labeledTable(t, 100, 0.3)

	train, test, err := Stratified(ft, 0.3, 7)
	require.NoError(t, err)

	seen := make(map[float64]int)
	for _, row := range train.Rows() {
		seen[row[0]]++
	}
	for _, row := range test.Rows() {
		seen[row[0]]++
	}

	require.Len(t, seen, 100, "every row lands in exactly one side")
	for key, count := range seen {
		assert.Equal(t, 1, count, fmt.Sprintf("row %v appears once", key))
	}
}

func TestStratifiedDeterministicForSeed(t *testing.T) {
	ft := labeledTable(t, 120, 0.4)

	train1, test1, err := Stratified(ft, 0.2, 42)
	require.NoError(t, err)
	train2, test2, err := Stratified(ft, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, train1.Rows(), train2.Rows())
	assert.Equal(t, test1.Rows(), test2.Rows())
	assert.Equal(t, train1.Labels(), train2.Labels())

	// A different seed should shuffle differently.
	train3, _, err := Stratified(ft, 0.2, 43)
	require.NoError(t, err)
	assert.NotEqual(t, train1.Rows(), train3.Rows())
}

func TestStratifiedRejectsBadInput(t *testing.T) {
	ft := labeledTable(t, 50, 0.5)

	_, _, err := Stratified(nil, 0.2, 42)
	assert.Error(t, err)

	_, _, err = Stratified(ft, 0, 42)
	assert.Error(t, err)

	_, _, err = Stratified(ft, 1, 42)
	assert.Error(t, err)
}

func TestStratifiedRejectsSingleClass(t *testing.T) {
	rows := [][]float64{{1}, {2}, {3}}
	ft, err := table.NewFeatureTable([]string{"f"}, rows, []int{1, 1, 1})
	require.NoError(t, err)

	_, _, err = Stratified(ft, 0.2, 42)
	assert.Error(t, err)
}

func TestStratifiedRejectsTinyClass(t *testing.T) {
	// One positive row cannot populate both sides.
	rows := [][]float64{{1}, {2}, {3}, {4}}
	ft, err := table.NewFeatureTable([]string{"f"}, rows, []int{1, 0, 0, 0})
	require.NoError(t, err)

	_, _, err = Stratified(ft, 0.25, 42)
	assert.Error(t, err)
}
