// pkg/features/engineer_test.go
package features

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/config"
	"github.com/telco-insights/churnpipe/pkg/table"
)

func newEngineer(t *testing.T) *Engineer {
	t.Helper()
	eng, err := NewEngineer(&config.DatasetConfig{
		Source:          config.SourceCSV,
		Path:            "data.csv",
		LabelColumn:     "Churn",
		RequiredColumns: []string{"customerID", "Churn"},
		IDColumns:       []string{"customerID"},
	}, zap.NewNop())
	require.NoError(t, err)
	return eng
}

// telcoTable builds a small cleaned table with the columns the derived
// features read.
func telcoTable(t *testing.T, n int) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{
		"customerID", "tenure", "MonthlyCharges", "TotalCharges",
		"Contract", "Partner", "Dependents", "PhoneService", "InternetService", "Churn",
	})
	require.NoError(t, err)

	contracts := []string{"Month-to-month", "One year", "Two year"}
	for i := 0; i < n; i++ {
		tenure := float64(i%60 + 1)
		monthly := 20 + float64(i%80)
		churn := "No"
		if i%3 == 0 {
			churn = "Yes"
		}
		yes := "No"
		if i%2 == 0 {
			yes = "Yes"
		}
		require.NoError(t, tbl.AppendRow([]table.Value{
			table.Str(fmt.Sprintf("%04d", i)),
			table.Num(tenure),
			table.Num(monthly),
			table.Num(monthly * tenure),
			table.Str(contracts[i%3]),
			table.Str(yes),
			table.Str(yes),
			table.Str(yes),
			table.Str("DSL"),
			table.Str(churn),
		}))
	}
	return tbl
}

func TestEngineerProducesCleanFeatureTable(t *testing.T) {
	tbl := telcoTable(t, 30)

	ft, info, err := newEngineer(t).Engineer(tbl)
	require.NoError(t, err)

	assert.Equal(t, 30, ft.NumRows())
	assert.Equal(t, len(info.FeatureNames), ft.NumFeatures())

	// Label and ID columns never become features.
	for _, name := range info.FeatureNames {
		assert.NotEqual(t, "Churn", name)
		assert.NotEqual(t, "customerID", name)
	}

	// Labels follow the Churn column.
	labels := ft.Labels()
	assert.Equal(t, 1, labels[0])
	assert.Equal(t, 0, labels[1])
}

func TestEngineerEncodesCategoricalsInSortedOrder(t *testing.T) {
	tbl := telcoTable(t, 12)

	_, info, err := newEngineer(t).Engineer(tbl)
	require.NoError(t, err)

	levels, ok := info.Encodings["Contract"]
	require.True(t, ok)
	assert.Equal(t, []string{"Month-to-month", "One year", "Two year"}, levels)
	assert.Contains(t, info.FeatureNames, "Contract_encoded")
}

func TestEngineerAddsDerivedFeatures(t *testing.T) {
	tbl := telcoTable(t, 20)

	_, info, err := newEngineer(t).Engineer(tbl)
	require.NoError(t, err)

	assert.Contains(t, info.DerivedFeatures, "feature_total_services")
	assert.Contains(t, info.DerivedFeatures, "feature_has_family")
	assert.Contains(t, info.DerivedFeatures, "feature_long_contract")
	assert.Contains(t, info.DerivedFeatures, "feature_monthly_per_tenure")
	for _, name := range info.DerivedFeatures {
		assert.Contains(t, info.FeatureNames, name)
	}
}

func TestEngineerStandardizesColumns(t *testing.T) {
	tbl := telcoTable(t, 40)

	ft, _, err := newEngineer(t).Engineer(tbl)
	require.NoError(t, err)

	// Every column should have near-zero mean after standardization.
	rows := ft.Rows()
	for c := 0; c < ft.NumFeatures(); c++ {
		sum := 0.0
		for r := range rows {
			sum += rows[r][c]
		}
		assert.InDelta(t, 0, sum/float64(len(rows)), 1e-9)
	}
}

func TestEngineerDeterministic(t *testing.T) {
	first, _, err := newEngineer(t).Engineer(telcoTable(t, 25))
	require.NoError(t, err)
	second, _, err := newEngineer(t).Engineer(telcoTable(t, 25))
	require.NoError(t, err)

	assert.Equal(t, first.FeatureNames(), second.FeatureNames())
	assert.Equal(t, first.Rows(), second.Rows())
	assert.Equal(t, first.Labels(), second.Labels())
}

func TestEngineerRejectsMissingValues(t *testing.T) {
	tbl, err := table.New([]string{"tenure", "Churn"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{table.Missing(), table.Str("No")}))

	_, _, err = newEngineer(t).Engineer(tbl)
	assert.Error(t, err)
}

func TestEngineerRejectsBadLabel(t *testing.T) {
	tbl, err := table.New([]string{"tenure", "Churn"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{table.Num(1), table.Str("Maybe")}))

	_, _, err = newEngineer(t).Engineer(tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadLabel)
}

func TestEngineerNumericLabels(t *testing.T) {
	tbl, err := table.New([]string{"tenure", "Churn"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]table.Value{table.Num(1), table.Num(0)}))
	require.NoError(t, tbl.AppendRow([]table.Value{table.Num(2), table.Num(1)}))

	ft, _, err := newEngineer(t).Engineer(tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ft.Labels())
}
