// pkg/report/writer.go
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/evaluate"
)

const timestampLayout = "20060102_150405"

// topFeatureCount caps the importance table in the Markdown report; the
// JSON artifact always carries the full ranking.
const topFeatureCount = 10

// Writer renders a completed run into the output directory as a Markdown
// report plus a machine-readable JSON results file.
type Writer struct {
	outputDir string
	logger    *zap.Logger
}

// NewWriter creates a new Writer instance
func NewWriter(outputDir string, logger *zap.Logger) (*Writer, error) {
	if outputDir == "" {
		return nil, errors.New("output directory cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{outputDir: outputDir, logger: logger.Named("report")}, nil
}

// Write renders both artifacts and returns their paths.
func (w *Writer) Write(run *Run) (mdPath, jsonPath string, err error) {
	if run == nil {
		return "", "", errors.New("run cannot be nil")
	}

	stamp := run.FinishedAt.Format(timestampLayout)
	mdPath = filepath.Join(w.outputDir, fmt.Sprintf("REPORT_%s.md", stamp))
	jsonPath = filepath.Join(w.outputDir, fmt.Sprintf("results_%s.json", stamp))

	payload, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(jsonPath, payload, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write results file: %w", err)
	}

	if err := os.WriteFile(mdPath, []byte(w.renderMarkdown(run)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write report file: %w", err)
	}

	w.logger.Info("Report written",
		zap.String("report", mdPath),
		zap.String("results", jsonPath),
	)
	return mdPath, jsonPath, nil
}

func (w *Writer) renderMarkdown(run *Run) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Customer Churn Prediction Report\n\n")
	fmt.Fprintf(&b, "- **Run ID:** %s\n", run.ID)
	fmt.Fprintf(&b, "- **Started:** %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Finished:** %s\n", run.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Duration:** %s\n\n", run.Duration().Round(time.Millisecond))

	fmt.Fprintf(&b, "## Dataset\n\n")
	fmt.Fprintf(&b, "- **Source:** %s", run.Dataset.Source)
	if run.Dataset.Path != "" {
		fmt.Fprintf(&b, " (%s)", run.Dataset.Path)
	}
	fmt.Fprintf(&b, "\n- **Rows:** %d\n", run.Dataset.Rows)
	fmt.Fprintf(&b, "- **Columns:** %d\n\n", run.Dataset.Columns)

	if run.Cleaning != nil {
		fmt.Fprintf(&b, "## Cleaning\n\n")
		fmt.Fprintf(&b, "| | |\n|---|---|\n")
		fmt.Fprintf(&b, "| Rows in | %d |\n", run.Cleaning.InitialRows)
		fmt.Fprintf(&b, "| Rows out | %d |\n", run.Cleaning.FinalRows)
		fmt.Fprintf(&b, "| Missing cells found | %d |\n", run.Cleaning.InitialMissing)
		fmt.Fprintf(&b, "| Cells imputed | %d |\n", run.Cleaning.ImputedCells)
		fmt.Fprintf(&b, "| Cells coerced | %d |\n", run.Cleaning.CoercedCells)
		fmt.Fprintf(&b, "| Duplicate rows removed | %d |\n\n", run.Cleaning.DuplicatesRemoved)
	}

	if run.Features != nil {
		fmt.Fprintf(&b, "## Features\n\n")
		fmt.Fprintf(&b, "- **Total features:** %d\n", len(run.Features.FeatureNames))
		fmt.Fprintf(&b, "- **Encoded categorical columns:** %d\n", len(run.Features.Encodings))
		if len(run.Features.DerivedFeatures) > 0 {
			fmt.Fprintf(&b, "- **Derived:** %s\n", strings.Join(run.Features.DerivedFeatures, ", "))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Split\n\n")
	fmt.Fprintf(&b, "- **Train rows:** %d (positive rate %.4f)\n", run.Split.TrainRows, run.Split.TrainPositiveRate)
	fmt.Fprintf(&b, "- **Test rows:** %d (positive rate %.4f)\n", run.Split.TestRows, run.Split.TestPositiveRate)
	fmt.Fprintf(&b, "- **Test ratio:** %.2f, seed %d\n\n", run.Split.TestRatio, run.Split.Seed)

	fmt.Fprintf(&b, "## Model Comparison\n\n")
	fmt.Fprintf(&b, "| Model | Accuracy | Precision | Recall | F1 | AUC-ROC | Train Time |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
	for _, res := range run.Results {
		fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4f | %.4f | %.4f | %s |\n",
			res.Model,
			res.Metrics[evaluate.MetricAccuracy],
			res.Metrics[evaluate.MetricPrecision],
			res.Metrics[evaluate.MetricRecall],
			res.Metrics[evaluate.MetricF1],
			res.Metrics[evaluate.MetricAUCROC],
			res.TrainDuration.Round(time.Millisecond),
		)
	}
	fmt.Fprintf(&b, "\n")

	if run.Comparison != nil {
		fmt.Fprintf(&b, "**Best model by %s:** %s\n\n", run.Comparison.Primary, run.Comparison.Best)
	}

	for _, res := range run.Results {
		fmt.Fprintf(&b, "### %s\n\n", res.Model)
		fmt.Fprintf(&b, "Confusion matrix (rows actual, columns predicted):\n\n")
		fmt.Fprintf(&b, "| | Predicted Retained | Predicted Churned |\n|---|---|---|\n")
		fmt.Fprintf(&b, "| **Actual Retained** | %d | %d |\n", res.Confusion[0][0], res.Confusion[0][1])
		fmt.Fprintf(&b, "| **Actual Churned** | %d | %d |\n\n", res.Confusion[1][0], res.Confusion[1][1])

		fmt.Fprintf(&b, "Top features:\n\n")
		fmt.Fprintf(&b, "| Feature | Importance |\n|---|---|\n")
		for i, fw := range res.Importance {
			if i >= topFeatureCount {
				break
			}
			fmt.Fprintf(&b, "| %s | %.4f |\n", fw.Feature, fw.Weight)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}
