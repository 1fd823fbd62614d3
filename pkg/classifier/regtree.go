// pkg/classifier/regtree.go
package classifier

import "sort"

// regTree is a regression tree over gradient/hessian pairs, used as the
// weak learner inside gradient boosting. Splits maximize the reduction in
// squared gradient error; leaves carry the Newton step sum(g)/sum(h).
type regTree struct {
	maxDepth       int
	minSamplesLeaf int

	root *regNode
}

type regNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *regNode
	right     *regNode
}

const hessianEpsilon = 1e-12

func (t *regTree) fit(X [][]float64, grad, hess []float64, idx []int, total int, importance []float64) {
	t.root = t.buildNode(X, grad, hess, idx, 0, total, importance)
}

func (t *regTree) buildNode(X [][]float64, grad, hess []float64, idx []int, depth, total int, importance []float64) *regNode {
	if depth >= t.maxDepth || len(idx) < 2*t.minSamplesLeaf {
		return t.makeLeaf(grad, hess, idx)
	}

	feature, threshold, gain, leftIdx, rightIdx := t.bestSplit(X, grad, idx)
	if feature < 0 {
		return t.makeLeaf(grad, hess, idx)
	}

	importance[feature] += gain * float64(len(idx)) / float64(total)

	return &regNode{
		feature:   feature,
		threshold: threshold,
		left:      t.buildNode(X, grad, hess, leftIdx, depth+1, total, importance),
		right:     t.buildNode(X, grad, hess, rightIdx, depth+1, total, importance),
	}
}

func (t *regTree) makeLeaf(grad, hess []float64, idx []int) *regNode {
	gSum, hSum := 0.0, 0.0
	for _, i := range idx {
		gSum += grad[i]
		hSum += hess[i]
	}
	return &regNode{leaf: true, value: gSum / (hSum + hessianEpsilon)}
}

// bestSplit scans every feature for the threshold maximizing
// sum(g_L)^2/n_L + sum(g_R)^2/n_R, the squared-error reduction criterion.
func (t *regTree) bestSplit(X [][]float64, grad []float64, idx []int) (feature int, threshold, gain float64, leftIdx, rightIdx []int) {
	n := len(idx)
	p := len(X[0])

	total := 0.0
	for _, i := range idx {
		total += grad[i]
	}
	baseScore := total * total / float64(n)

	feature = -1
	ordered := make([]int, n)
	for f := 0; f < p; f++ {
		copy(ordered, idx)
		sort.Slice(ordered, func(a, b int) bool { return X[ordered[a]][f] < X[ordered[b]][f] })

		left := 0.0
		for s := 1; s < n; s++ {
			left += grad[ordered[s-1]]
			if X[ordered[s]][f] == X[ordered[s-1]][f] {
				continue
			}
			if s < t.minSamplesLeaf || n-s < t.minSamplesLeaf {
				continue
			}
			right := total - left
			score := left*left/float64(s) + right*right/float64(n-s)
			if g := score - baseScore; g > gain {
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

func (t *regTree) predict(x []float64) float64 {
	node := t.root
	for !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}
