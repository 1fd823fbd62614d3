// pkg/classifier/classifier_test.go
package classifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telco-insights/churnpipe/pkg/config"
)

// separableData generates a two-cluster dataset the models should fit
// almost perfectly: positives around (2, 2), negatives around (-2, -2).
func separableData(seed int64, n int) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		center := -2.0
		if i%2 == 0 {
			center = 2.0
			y[i] = 1
		}
		X[i] = []float64{
			center + rng.NormFloat64()*0.5,
			center + rng.NormFloat64()*0.5,
		}
	}
	return X, y
}

func models() map[string]func() Classifier {
	return map[string]func() Classifier{
		config.ModelLogisticRegression: func() Classifier {
			return NewLogisticRegression(config.LogisticRegressionConfig{LearningRate: 0.1, Epochs: 500})
		},
		config.ModelRandomForest: func() Classifier {
			return NewRandomForest(config.RandomForestConfig{NumTrees: 20, MaxDepth: 6, MinSamplesSplit: 2, Seed: 42})
		},
		config.ModelGradientBoosting: func() Classifier {
			return NewGradientBoosting(config.GradientBoostingConfig{NumRounds: 30, LearningRate: 0.2, MaxDepth: 3})
		},
	}
}

func TestModelsFitSeparableData(t *testing.T) {
	X, y := separableData(1, 200)

	for name, build := range models() {
		t.Run(name, func(t *testing.T) {
			m := build()
			require.NoError(t, m.Fit(X, y))
			assert.Equal(t, name, m.Name())
			assert.Equal(t, 2, m.NumFeatures())

			pred := m.Predict(X)
			correct := 0
			for i := range y {
				if pred[i] == y[i] {
					correct++
				}
			}
			accuracy := float64(correct) / float64(len(y))
			assert.Greater(t, accuracy, 0.95, "training accuracy on separable clusters")
		})
	}
}

func TestModelsRejectDegenerateLabels(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}
	y := []int{1, 1}

	for name, build := range models() {
		t.Run(name, func(t *testing.T) {
			err := build().Fit(X, y)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDegenerateLabels)
		})
	}
}

func TestModelsRejectMalformedTraining(t *testing.T) {
	m := NewLogisticRegression(config.LogisticRegressionConfig{LearningRate: 0.1, Epochs: 10})

	assert.Error(t, m.Fit(nil, nil), "empty data")
	assert.Error(t, m.Fit([][]float64{{1}, {2}}, []int{0}), "misaligned labels")
	assert.Error(t, m.Fit([][]float64{{1, 2}, {3}}, []int{0, 1}), "ragged rows")
	assert.Error(t, m.Fit([][]float64{{1}, {2}}, []int{0, 7}), "non-binary label")
}

func TestModelsDeterministicAcrossFits(t *testing.T) {
	X, y := separableData(7, 150)
	probe, _ := separableData(8, 40)

	for name, build := range models() {
		t.Run(name, func(t *testing.T) {
			first := build()
			require.NoError(t, first.Fit(X, y))
			second := build()
			require.NoError(t, second.Fit(X, y))

			assert.Equal(t, first.PredictProba(probe), second.PredictProba(probe))
			assert.Equal(t, first.FeatureImportance(), second.FeatureImportance())
		})
	}
}

func TestFeatureImportanceNormalized(t *testing.T) {
	X, y := separableData(3, 120)

	for name, build := range models() {
		t.Run(name, func(t *testing.T) {
			m := build()
			require.NoError(t, m.Fit(X, y))

			imp := m.FeatureImportance()
			require.Len(t, imp, 2)
			sum := 0.0
			for _, w := range imp {
				assert.GreaterOrEqual(t, w, 0.0)
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
		})
	}
}

func TestPredictProbaInUnitInterval(t *testing.T) {
	X, y := separableData(5, 100)

	for name, build := range models() {
		t.Run(name, func(t *testing.T) {
			m := build()
			require.NoError(t, m.Fit(X, y))

			for _, p := range m.PredictProba(X) {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		})
	}
}

func TestThresholdLabels(t *testing.T) {
	got := thresholdLabels([]float64{0.1, 0.5, 0.9, 0.49})
	assert.Equal(t, []int{0, 1, 1, 0}, got)
}
