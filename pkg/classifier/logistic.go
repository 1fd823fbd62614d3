// pkg/classifier/logistic.go
package classifier

import (
	"fmt"
	"math"

	"github.com/telco-insights/churnpipe/pkg/config"
)

// LogisticRegression is a binary logistic regression trained by full-batch
// gradient descent. Weights start at zero, so training is deterministic
// without any seeding; the loss is convex and the optimum unique.
type LogisticRegression struct {
	lr     float64
	epochs int

	w []float64
	b float64
}

// NewLogisticRegression creates an untrained logistic regression model
func NewLogisticRegression(cfg config.LogisticRegressionConfig) *LogisticRegression {
	return &LogisticRegression{
		lr:     cfg.LearningRate,
		epochs: cfg.Epochs,
	}
}

// Name implements Classifier.
func (m *LogisticRegression) Name() string { return config.ModelLogisticRegression }

// NumFeatures implements Classifier.
func (m *LogisticRegression) NumFeatures() int { return len(m.w) }

// Fit trains the model. Inputs are expected to be standardized; the
// learning rate default assumes roughly unit-scale features.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if err := validateTraining(X, y); err != nil {
		return fmt.Errorf("logistic regression: %w", err)
	}

	n := len(X)
	p := len(X[0])
	m.w = make([]float64, p)
	m.b = 0

	gw := make([]float64, p)
	for epoch := 0; epoch < m.epochs; epoch++ {
		for j := range gw {
			gw[j] = 0
		}
		gb := 0.0

		for i, row := range X {
			z := m.b
			for j, v := range row {
				z += m.w[j] * v
			}
			d := sigmoid(z) - float64(y[i])
			for j, v := range row {
				gw[j] += d * v
			}
			gb += d
		}

		scale := m.lr / float64(n)
		for j := range m.w {
			m.w[j] -= scale * gw[j]
		}
		m.b -= scale * gb
	}
	return nil
}

// PredictProba implements Classifier.
func (m *LogisticRegression) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		z := m.b
		for j, v := range row {
			z += m.w[j] * v
		}
		out[i] = sigmoid(z)
	}
	return out
}

// Predict implements Classifier.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	return thresholdLabels(m.PredictProba(X))
}

// FeatureImportance returns the absolute coefficient per feature. With
// standardized inputs the magnitudes are comparable across features.
func (m *LogisticRegression) FeatureImportance() []float64 {
	abs := make([]float64, len(m.w))
	for i, w := range m.w {
		abs[i] = math.Abs(w)
	}
	return normalizeImportance(abs)
}
