// pkg/classifier/classifier.go
package classifier

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateLabels is returned when training data holds a single class.
var ErrDegenerateLabels = errors.New("training labels contain a single class")

// Classifier is a binary classifier over a fixed numeric feature schema.
// Implementations are deterministic for a fixed seed.
type Classifier interface {
	// Name identifies the model kind in reports and logs.
	Name() string

	// Fit trains on X (n rows by p features) and binary labels y.
	Fit(X [][]float64, y []int) error

	// Predict returns 0/1 labels using a 0.5 probability threshold.
	Predict(X [][]float64) []int

	// PredictProba returns p(y=1) per row.
	PredictProba(X [][]float64) []float64

	// FeatureImportance returns one non-negative weight per feature,
	// normalized to sum to 1. Only valid after Fit.
	FeatureImportance() []float64

	// NumFeatures returns the width of the schema the model was fit on.
	NumFeatures() int
}

// validateTraining checks the invariants every Fit shares: rectangular X,
// aligned labels, and both classes present.
func validateTraining(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("training data is empty")
	}
	if len(y) != len(X) {
		return fmt.Errorf("feature rows (%d) and labels (%d) are misaligned", len(X), len(y))
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("training data has no features")
	}
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), p)
		}
	}
	pos := 0
	for i, l := range y {
		if l != 0 && l != 1 {
			return fmt.Errorf("label %d at row %d is not binary", l, i)
		}
		pos += l
	}
	if pos == 0 || pos == len(y) {
		return ErrDegenerateLabels
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// thresholdLabels converts probabilities to hard labels at 0.5.
func thresholdLabels(proba []float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// normalizeImportance scales weights to sum to 1 when possible.
func normalizeImportance(w []float64) []float64 {
	out := append([]float64(nil), w...)
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if sum > 0 {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}
