// pkg/split/split.go
package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/telco-insights/churnpipe/pkg/table"
)

// Stratified splits a feature table into disjoint train and test sets,
// preserving the label proportions of the full table in each side. The
// split is fully determined by the seed.
func Stratified(ft *table.FeatureTable, testRatio float64, seed int64) (train, test *table.FeatureTable, err error) {
	if ft == nil {
		return nil, nil, errors.New("feature table cannot be nil")
	}
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %v", testRatio)
	}

	labels := ft.Labels()
	byClass := make(map[int][]int)
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}
	if len(byClass) < 2 {
		return nil, nil, errors.New("cannot stratify: label column has a single class")
	}

	rng := rand.New(rand.NewSource(seed))

	var trainIdx, testIdx []int
	// Class order is fixed so the shuffles consume the rng deterministically.
	for _, class := range []int{0, 1} {
		indices := byClass[class]
		if len(indices) == 0 {
			continue
		}
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(math.Round(testRatio * float64(len(indices))))
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(indices) {
			return nil, nil, fmt.Errorf("class %d has too few rows (%d) for a %.2f test split", class, len(indices), testRatio)
		}
		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}

	train, err = ft.Subset(trainIdx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build train split: %w", err)
	}
	test, err = ft.Subset(testIdx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build test split: %w", err)
	}
	return train, test, nil
}
