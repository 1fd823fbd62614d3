// pkg/evaluate/metrics.go
package evaluate

import "sort"

// Metric names reported for every model.
const (
	MetricAccuracy  = "accuracy"
	MetricPrecision = "precision"
	MetricRecall    = "recall"
	MetricF1        = "f1"
	MetricAUCROC    = "auc_roc"
)

// Accuracy is the share of correct predictions.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// PrecisionRecallF1 computes the three threshold metrics for the positive
// class. Empty denominators yield zero rather than NaN.
func PrecisionRecallF1(yTrue, yPred []int) (precision, recall, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		switch {
		case yPred[i] == 1 && yTrue[i] == 1:
			tp++
		case yPred[i] == 1 && yTrue[i] == 0:
			fp++
		case yPred[i] == 0 && yTrue[i] == 1:
			fn++
		}
	}
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return precision, recall, f1
}

// ConfusionMatrix returns counts indexed as [actual][predicted].
func ConfusionMatrix(yTrue, yPred []int) [2][2]int {
	var cm [2][2]int
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm
}

// AUCROC computes the area under the ROC curve via the rank-sum
// (Mann-Whitney) statistic, with midranks for tied scores. Returns 0 when
// the labels hold a single class, where the curve is undefined.
func AUCROC(yTrue []int, scores []float64) float64 {
	n := len(yTrue)
	pos := 0
	for _, l := range yTrue {
		pos += l
	}
	neg := n - pos
	if pos == 0 || neg == 0 {
		return 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	// Assign midranks across tie groups, accumulating ranks of positives.
	rankSum := 0.0
	i := 0
	for i < n {
		j := i
		for j < n && scores[order[j]] == scores[order[i]] {
			j++
		}
		midrank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			if yTrue[order[k]] == 1 {
				rankSum += midrank
			}
		}
		i = j
	}

	return (rankSum - float64(pos)*float64(pos+1)/2) / (float64(pos) * float64(neg))
}
