// pkg/report/writer_test.go
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/cleaner"
	"github.com/telco-insights/churnpipe/pkg/evaluate"
	"github.com/telco-insights/churnpipe/pkg/features"
)

func sampleRun() *Run {
	run := NewRun()
	run.Dataset = DatasetSummary{Source: "csv", Path: "data.csv", Rows: 100, Columns: 10}
	run.Cleaning = &cleaner.Report{InitialRows: 100, FinalRows: 98, ImputedCells: 3, DuplicatesRemoved: 2}
	run.Features = &features.Info{
		FeatureNames:    []string{"tenure", "Contract_encoded"},
		DerivedFeatures: []string{"feature_total_services"},
		Encodings:       map[string][]string{"Contract": {"Month-to-month", "One year"}},
	}
	run.Split = SplitSummary{TrainRows: 68, TestRows: 30, TestRatio: 0.3, Seed: 42,
		TrainPositiveRate: 0.3, TestPositiveRate: 0.3}
	run.Results = []*evaluate.Result{
		{
			Model: "logistic_regression",
			Metrics: map[string]float64{
				evaluate.MetricAccuracy: 0.9, evaluate.MetricPrecision: 0.8,
				evaluate.MetricRecall: 0.7, evaluate.MetricF1: 0.75, evaluate.MetricAUCROC: 0.85,
			},
			Confusion:     [2][2]int{{20, 1}, {2, 7}},
			Importance:    []evaluate.FeatureWeight{{Feature: "tenure", Weight: 0.6}, {Feature: "Contract_encoded", Weight: 0.4}},
			TrainDuration: 120 * time.Millisecond,
			TestRows:      30,
		},
	}
	run.Comparison = &evaluate.Comparison{
		Primary: evaluate.MetricF1,
		Ranking: []string{"logistic_regression"},
		Best:    "logistic_regression",
	}
	run.Finish()
	return run
}

func TestWriterProducesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, zap.NewNop())
	require.NoError(t, err)

	run := sampleRun()
	mdPath, jsonPath, err := w.Write(run)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(mdPath))
	assert.Regexp(t, `REPORT_\d{8}_\d{6}\.md$`, mdPath)
	assert.Regexp(t, `results_\d{8}_\d{6}\.json$`, jsonPath)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	content := string(md)
	assert.Contains(t, content, "# Customer Churn Prediction Report")
	assert.Contains(t, content, run.ID)
	assert.Contains(t, content, "logistic_regression")
	assert.Contains(t, content, "Best model by f1")
	assert.Contains(t, content, "feature_total_services")

	payload, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded Run
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, run.Dataset, decoded.Dataset)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, run.Results[0].Metrics, decoded.Results[0].Metrics)
	assert.Equal(t, run.Results[0].Confusion, decoded.Results[0].Confusion)
}

func TestWriterCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	_, err := NewWriter(dir, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriterRejectsNilRun(t *testing.T) {
	w, err := NewWriter(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, _, err = w.Write(nil)
	assert.Error(t, err)
}

func TestBestResult(t *testing.T) {
	run := sampleRun()
	best := run.BestResult()
	require.NotNil(t, best)
	assert.Equal(t, "logistic_regression", best.Model)

	run.Comparison = nil
	assert.Nil(t, run.BestResult())
}
