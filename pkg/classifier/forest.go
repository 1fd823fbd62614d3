// pkg/classifier/forest.go
package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/telco-insights/churnpipe/pkg/config"
)

// RandomForest is a bagged ensemble of CART trees. Each tree gets its own
// bootstrap sample and rng derived from the base seed, so fitting is
// reproducible even though trees train concurrently.
type RandomForest struct {
	numTrees        int
	maxDepth        int
	minSamplesSplit int
	seed            int64

	trees      []*classTree
	importance []float64
	nFeatures  int
}

// NewRandomForest creates an untrained random forest
func NewRandomForest(cfg config.RandomForestConfig) *RandomForest {
	return &RandomForest{
		numTrees:        cfg.NumTrees,
		maxDepth:        cfg.MaxDepth,
		minSamplesSplit: cfg.MinSamplesSplit,
		seed:            cfg.Seed,
	}
}

// Name implements Classifier.
func (m *RandomForest) Name() string { return config.ModelRandomForest }

// NumFeatures implements Classifier.
func (m *RandomForest) NumFeatures() int { return m.nFeatures }

// Fit trains the forest. Trees are fit in parallel; per-tree importances
// are merged in tree order afterwards so the result does not depend on
// goroutine scheduling.
func (m *RandomForest) Fit(X [][]float64, y []int) error {
	if err := validateTraining(X, y); err != nil {
		return fmt.Errorf("random forest: %w", err)
	}

	n := len(X)
	m.nFeatures = len(X[0])
	maxFeatures := int(math.Ceil(math.Sqrt(float64(m.nFeatures))))

	m.trees = make([]*classTree, m.numTrees)
	perTreeImportance := make([][]float64, m.numTrees)

	var wg sync.WaitGroup
	for i := 0; i < m.numTrees; i++ {
		wg.Add(1)
		go func(treeIdx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(m.seed + int64(treeIdx)))

			sample := make([]int, n)
			for j := range sample {
				sample[j] = rng.Intn(n)
			}

			tree := &classTree{
				maxDepth:        m.maxDepth,
				minSamplesSplit: m.minSamplesSplit,
				minSamplesLeaf:  1,
				maxFeatures:     maxFeatures,
			}
			imp := make([]float64, m.nFeatures)
			tree.fit(X, y, sample, n, rng, imp)

			m.trees[treeIdx] = tree
			perTreeImportance[treeIdx] = imp
		}(i)
	}
	wg.Wait()

	m.importance = make([]float64, m.nFeatures)
	for _, imp := range perTreeImportance {
		for j, v := range imp {
			m.importance[j] += v
		}
	}
	return nil
}

// PredictProba averages the leaf probabilities across all trees.
func (m *RandomForest) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		sum := 0.0
		for _, tree := range m.trees {
			sum += tree.predictProba(row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out
}

// Predict implements Classifier.
func (m *RandomForest) Predict(X [][]float64) []int {
	return thresholdLabels(m.PredictProba(X))
}

// FeatureImportance returns the mean impurity decrease per feature.
func (m *RandomForest) FeatureImportance() []float64 {
	return normalizeImportance(m.importance)
}
