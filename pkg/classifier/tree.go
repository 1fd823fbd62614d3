// pkg/classifier/tree.go
package classifier

import (
	"math/rand"
	"sort"
)

// classTree is a binary CART classification tree splitting on Gini
// impurity. It is the building block of the random forest and is always
// driven through a caller-owned rng so fits stay reproducible.
type classTree struct {
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int // 0 means all features

	root *classNode
}

type classNode struct {
	leaf      bool
	p1        float64 // share of positive samples at the leaf
	feature   int
	threshold float64 // x <= threshold goes left
	left      *classNode
	right     *classNode
}

// fit builds the tree over the sample indices in idx. Impurity decreases
// are accumulated into importance, weighted by the node share of total.
func (t *classTree) fit(X [][]float64, y []int, idx []int, total int, rng *rand.Rand, importance []float64) {
	t.root = t.buildNode(X, y, idx, 0, total, rng, importance)
}

func (t *classTree) buildNode(X [][]float64, y []int, idx []int, depth, total int, rng *rand.Rand, importance []float64) *classNode {
	n := len(idx)
	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	p1 := float64(pos) / float64(n)

	if pos == 0 || pos == n ||
		n < t.minSamplesSplit ||
		(t.maxDepth > 0 && depth >= t.maxDepth) {
		return &classNode{leaf: true, p1: p1}
	}

	feature, threshold, gain, leftIdx, rightIdx := t.bestSplit(X, y, idx, rng)
	if feature < 0 {
		return &classNode{leaf: true, p1: p1}
	}

	importance[feature] += gain * float64(n) / float64(total)

	return &classNode{
		feature:   feature,
		threshold: threshold,
		left:      t.buildNode(X, y, leftIdx, depth+1, total, rng, importance),
		right:     t.buildNode(X, y, rightIdx, depth+1, total, rng, importance),
	}
}

// bestSplit scans candidate features for the threshold with the largest
// Gini decrease. Candidate features are a random subset when maxFeatures
// is set, which is what decorrelates forest trees.
func (t *classTree) bestSplit(X [][]float64, y []int, idx []int, rng *rand.Rand) (feature int, threshold, gain float64, leftIdx, rightIdx []int) {
	n := len(idx)
	p := len(X[0])

	candidates := make([]int, p)
	for j := range candidates {
		candidates[j] = j
	}
	if t.maxFeatures > 0 && t.maxFeatures < p {
		rng.Shuffle(p, func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		candidates = candidates[:t.maxFeatures]
	}

	totalPos := 0
	for _, i := range idx {
		totalPos += y[i]
	}
	parent := gini(totalPos, n)

	feature = -1
	ordered := make([]int, n)
	for _, f := range candidates {
		copy(ordered, idx)
		sort.Slice(ordered, func(a, b int) bool { return X[ordered[a]][f] < X[ordered[b]][f] })

		leftPos := 0
		for s := 1; s < n; s++ {
			leftPos += y[ordered[s-1]]
			if X[ordered[s]][f] == X[ordered[s-1]][f] {
				continue
			}
			if s < t.minSamplesLeaf || n-s < t.minSamplesLeaf {
				continue
			}
			weighted := float64(s)/float64(n)*gini(leftPos, s) +
				float64(n-s)/float64(n)*gini(totalPos-leftPos, n-s)
			if g := parent - weighted; g > gain {
				gain = g
				feature = f
				threshold = (X[ordered[s-1]][f] + X[ordered[s]][f]) / 2
			}
		}
	}
	if feature < 0 {
		return -1, 0, 0, nil, nil
	}

	for _, i := range idx {
		if X[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	return feature, threshold, gain, leftIdx, rightIdx
}

func (t *classTree) predictProba(x []float64) float64 {
	node := t.root
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.p1
}

// gini computes binary Gini impurity from a positive count and a total.
func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
