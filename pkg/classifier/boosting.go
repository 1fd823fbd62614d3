// pkg/classifier/boosting.go
package classifier

import (
	"fmt"
	"math"

	"github.com/telco-insights/churnpipe/pkg/config"
)

// GradientBoosting is a boosted ensemble of shallow regression trees fit to
// the logistic-loss gradient, with Newton-step leaf values. Every round
// uses the full training set, so fitting is deterministic with no seed.
type GradientBoosting struct {
	rounds       int
	learningRate float64
	maxDepth     int

	baseScore  float64
	trees      []*regTree
	importance []float64
	nFeatures  int
}

// NewGradientBoosting creates an untrained gradient boosting model
func NewGradientBoosting(cfg config.GradientBoostingConfig) *GradientBoosting {
	return &GradientBoosting{
		rounds:       cfg.NumRounds,
		learningRate: cfg.LearningRate,
		maxDepth:     cfg.MaxDepth,
	}
}

// Name implements Classifier.
func (m *GradientBoosting) Name() string { return config.ModelGradientBoosting }

// NumFeatures implements Classifier.
func (m *GradientBoosting) NumFeatures() int { return m.nFeatures }

// Fit trains the ensemble.
func (m *GradientBoosting) Fit(X [][]float64, y []int) error {
	if err := validateTraining(X, y); err != nil {
		return fmt.Errorf("gradient boosting: %w", err)
	}

	n := len(X)
	m.nFeatures = len(X[0])
	m.importance = make([]float64, m.nFeatures)
	m.trees = make([]*regTree, 0, m.rounds)

	pos := 0
	for _, l := range y {
		pos += l
	}
	prior := float64(pos) / float64(n)
	m.baseScore = math.Log(prior / (1 - prior))

	score := make([]float64, n)
	for i := range score {
		score[i] = m.baseScore
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	grad := make([]float64, n)
	hess := make([]float64, n)
	for round := 0; round < m.rounds; round++ {
		for i := range score {
			p := sigmoid(score[i])
			grad[i] = float64(y[i]) - p
			hess[i] = p * (1 - p)
		}

		tree := &regTree{maxDepth: m.maxDepth, minSamplesLeaf: 5}
		tree.fit(X, grad, hess, idx, n, m.importance)
		m.trees = append(m.trees, tree)

		for i, row := range X {
			score[i] += m.learningRate * tree.predict(row)
		}
	}
	return nil
}

// PredictProba implements Classifier.
func (m *GradientBoosting) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		score := m.baseScore
		for _, tree := range m.trees {
			score += m.learningRate * tree.predict(row)
		}
		out[i] = sigmoid(score)
	}
	return out
}

// Predict implements Classifier.
func (m *GradientBoosting) Predict(X [][]float64) []int {
	return thresholdLabels(m.PredictProba(X))
}

// FeatureImportance returns accumulated split gain per feature.
func (m *GradientBoosting) FeatureImportance() []float64 {
	return normalizeImportance(m.importance)
}
