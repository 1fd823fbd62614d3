// pkg/evaluate/evaluator.go
package evaluate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/telco-insights/churnpipe/pkg/table"
	"github.com/telco-insights/churnpipe/pkg/trainer"
)

// FeatureWeight pairs a feature name with its normalized importance.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Result holds every metric computed for one trained model on the test split.
type Result struct {
	Model         string             `json:"model"`
	Metrics       map[string]float64 `json:"metrics"`
	Confusion     [2][2]int          `json:"confusion_matrix"`
	Importance    []FeatureWeight    `json:"feature_importance"`
	TrainDuration time.Duration      `json:"train_duration_ns"`
	TestRows      int                `json:"test_rows"`
}

// Comparison ranks the evaluated models by the primary metric.
type Comparison struct {
	Primary string   `json:"primary_metric"`
	Ranking []string `json:"ranking"`
	Best    string   `json:"best_model"`
}

// Evaluator scores trained models against a held-out split.
type Evaluator struct {
	primaryMetric string
	logger        *zap.Logger
}

// New creates a new Evaluator instance
func New(primaryMetric string, logger *zap.Logger) (*Evaluator, error) {
	switch primaryMetric {
	case MetricAccuracy, MetricPrecision, MetricRecall, MetricF1, MetricAUCROC:
	default:
		return nil, fmt.Errorf("unknown primary metric %q", primaryMetric)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Evaluator{primaryMetric: primaryMetric, logger: logger.Named("evaluate")}, nil
}

// Evaluate scores a single trained model on the test split.
func (e *Evaluator) Evaluate(tr trainer.Trained, test *table.FeatureTable) (*Result, error) {
	if test == nil || test.NumRows() == 0 {
		return nil, errors.New("test split cannot be empty")
	}
	if got, want := tr.Model.NumFeatures(), test.NumFeatures(); got != want {
		return nil, fmt.Errorf("model %s was trained on %d features but test split has %d",
			tr.Model.Name(), got, want)
	}

	X := test.Rows()
	yTrue := test.Labels()
	scores := tr.Model.PredictProba(X)
	yPred := tr.Model.Predict(X)

	precision, recall, f1 := PrecisionRecallF1(yTrue, yPred)
	result := &Result{
		Model: tr.Model.Name(),
		Metrics: map[string]float64{
			MetricAccuracy:  Accuracy(yTrue, yPred),
			MetricPrecision: precision,
			MetricRecall:    recall,
			MetricF1:        f1,
			MetricAUCROC:    AUCROC(yTrue, scores),
		},
		Confusion:     ConfusionMatrix(yTrue, yPred),
		Importance:    rankImportance(test.FeatureNames(), tr.Model.FeatureImportance()),
		TrainDuration: tr.Duration,
		TestRows:      test.NumRows(),
	}

	e.logger.Info("Evaluated model",
		zap.String("model", result.Model),
		zap.Float64("accuracy", result.Metrics[MetricAccuracy]),
		zap.Float64("f1", result.Metrics[MetricF1]),
		zap.Float64("auc_roc", result.Metrics[MetricAUCROC]),
	)
	return result, nil
}

// EvaluateAll scores every trained model and ranks them by the primary
// metric, best first. Ties break on model name so output stays stable.
func (e *Evaluator) EvaluateAll(models []trainer.Trained, test *table.FeatureTable) ([]*Result, *Comparison, error) {
	if len(models) == 0 {
		return nil, nil, errors.New("no trained models to evaluate")
	}

	results := make([]*Result, 0, len(models))
	for _, tr := range models {
		r, err := e.Evaluate(tr, test)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, r)
	}

	ranked := make([]*Result, len(results))
	copy(ranked, results)
	sort.Slice(ranked, func(a, b int) bool {
		ma, mb := ranked[a].Metrics[e.primaryMetric], ranked[b].Metrics[e.primaryMetric]
		if ma != mb {
			return ma > mb
		}
		return ranked[a].Model < ranked[b].Model
	})

	cmp := &Comparison{Primary: e.primaryMetric, Best: ranked[0].Model}
	for _, r := range ranked {
		cmp.Ranking = append(cmp.Ranking, r.Model)
	}

	e.logger.Info("Model comparison complete",
		zap.String("primary_metric", cmp.Primary),
		zap.String("best_model", cmp.Best),
	)
	return results, cmp, nil
}

// rankImportance pairs names with weights and sorts descending by weight,
// name ascending on ties.
func rankImportance(names []string, weights []float64) []FeatureWeight {
	out := make([]FeatureWeight, 0, len(names))
	for i, name := range names {
		out = append(out, FeatureWeight{Feature: name, Weight: weights[i]})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Weight != out[b].Weight {
			return out[a].Weight > out[b].Weight
		}
		return out[a].Feature < out[b].Feature
	})
	return out
}
