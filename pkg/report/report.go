// pkg/report/report.go
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/telco-insights/churnpipe/pkg/cleaner"
	"github.com/telco-insights/churnpipe/pkg/evaluate"
	"github.com/telco-insights/churnpipe/pkg/features"
)

// DatasetSummary describes the raw dataset as loaded.
type DatasetSummary struct {
	Source  string `json:"source"`
	Path    string `json:"path,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// SplitSummary describes the train/test partition.
type SplitSummary struct {
	TrainRows         int     `json:"train_rows"`
	TestRows          int     `json:"test_rows"`
	TestRatio         float64 `json:"test_ratio"`
	Seed              int64   `json:"seed"`
	TrainPositiveRate float64 `json:"train_positive_rate"`
	TestPositiveRate  float64 `json:"test_positive_rate"`
}

// Run is the full record of one pipeline execution, serialized as the JSON
// results artifact and rendered into the Markdown report.
type Run struct {
	ID         string               `json:"run_id"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Dataset    DatasetSummary       `json:"dataset"`
	Cleaning   *cleaner.Report      `json:"cleaning"`
	Features   *features.Info       `json:"features"`
	Split      SplitSummary         `json:"split"`
	Results    []*evaluate.Result   `json:"results"`
	Comparison *evaluate.Comparison `json:"comparison"`
}

// NewRun starts a run record with a fresh identifier.
func NewRun() *Run {
	return &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the completion time.
func (r *Run) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Duration is the wall-clock time of the run.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// BestResult returns the evaluation result for the winning model, or nil if
// the run never reached evaluation.
func (r *Run) BestResult() *evaluate.Result {
	if r.Comparison == nil {
		return nil
	}
	for _, res := range r.Results {
		if res.Model == r.Comparison.Best {
			return res
		}
	}
	return nil
}
