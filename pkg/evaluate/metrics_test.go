// pkg/evaluate/metrics_test.go
package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	yTrue := []int{1, 0, 1, 1, 0}
	yPred := []int{1, 0, 0, 1, 1}
	assert.InDelta(t, 0.6, Accuracy(yTrue, yPred), 1e-12)
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestPrecisionRecallF1(t *testing.T) {
	// tp=2, fp=1, fn=1
	yTrue := []int{1, 0, 1, 1, 0}
	yPred := []int{1, 1, 0, 1, 0}

	precision, recall, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3.0, precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, f1, 1e-12)
}

func TestPrecisionRecallF1NoPositivePredictions(t *testing.T) {
	precision, recall, f1 := PrecisionRecallF1([]int{1, 0}, []int{0, 0})
	assert.Equal(t, 0.0, precision)
	assert.Equal(t, 0.0, recall)
	assert.Equal(t, 0.0, f1)
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []int{1, 0, 1, 1, 0, 0}
	yPred := []int{1, 1, 0, 1, 0, 0}

	cm := ConfusionMatrix(yTrue, yPred)
	assert.Equal(t, 2, cm[0][0], "true negatives")
	assert.Equal(t, 1, cm[0][1], "false positives")
	assert.Equal(t, 1, cm[1][0], "false negatives")
	assert.Equal(t, 2, cm[1][1], "true positives")
}

func TestAUCROCPerfectRanking(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	assert.InDelta(t, 1.0, AUCROC(yTrue, scores), 1e-12)
}

func TestAUCROCInvertedRanking(t *testing.T) {
	yTrue := []int{1, 1, 0, 0}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	assert.InDelta(t, 0.0, AUCROC(yTrue, scores), 1e-12)
}

func TestAUCROCRandomScoresWithTies(t *testing.T) {
	// All scores tied: every ordering is equally likely, AUC is 0.5.
	yTrue := []int{1, 0, 1, 0}
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	assert.InDelta(t, 0.5, AUCROC(yTrue, scores), 1e-12)
}

func TestAUCROCPartialOverlap(t *testing.T) {
	// One inversion among 2x2 pairs: AUC = 3/4.
	yTrue := []int{0, 1, 0, 1}
	scores := []float64{0.1, 0.4, 0.6, 0.9}
	assert.InDelta(t, 0.75, AUCROC(yTrue, scores), 1e-12)
}

func TestAUCROCSingleClass(t *testing.T) {
	assert.Equal(t, 0.0, AUCROC([]int{1, 1}, []float64{0.3, 0.7}))
	assert.Equal(t, 0.0, AUCROC([]int{0, 0}, []float64{0.3, 0.7}))
}
