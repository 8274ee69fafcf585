package ml

import (
	"errors"
	"math/rand"
	"sort"
)

// DecisionTreeClassifier is a CART classifier using Gini impurity over numeric features.
// Labels are class indices in [0, nClasses).
type DecisionTreeClassifier struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 => all features
	RandomState     int64

	root     *treeNode
	nClasses int
}

type treeNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *treeNode
	right     *treeNode
	probas    []float64
}

// TreeOption configures a DecisionTreeClassifier.
type TreeOption func(*DecisionTreeClassifier)

func WithTreeMaxDepth(d int) TreeOption { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithTreeMaxFeatures(k int) TreeOption {
	return func(t *DecisionTreeClassifier) { t.MaxFeatures = k }
}
func WithTreeRandomState(seed int64) TreeOption {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a fully grown tree by default.
func NewDecisionTreeClassifier(opts ...TreeOption) *DecisionTreeClassifier {
	t := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains on all rows of X.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int, nClasses int) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitSample(X, y, nClasses, idx)
}

// FitSample trains on the rows named by sample (duplicates allowed, as in bootstrap draws).
func (t *DecisionTreeClassifier) FitSample(X [][]float64, y []int, nClasses int, sample []int) error {
	if len(X) == 0 || len(sample) == 0 {
		return errors.New("dtree: empty X")
	}
	if len(y) != len(X) {
		return errors.New("dtree: X and y length mismatch")
	}
	if nClasses <= 0 {
		return errors.New("dtree: no classes")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}
	for _, lab := range y {
		if lab < 0 || lab >= nClasses {
			return errors.New("dtree: label out of range")
		}
	}
	t.nClasses = nClasses
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.build(X, y, sample, 0, p, rnd)
	return nil
}

// PredictProba returns per-class probabilities for each row.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = t.leaf(row).probas
	}
	return out
}

func (t *DecisionTreeClassifier) leaf(row []float64) *treeNode {
	n := t.root
	for n != nil && !n.isLeaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n
}

func (t *DecisionTreeClassifier) build(X [][]float64, y []int, idx []int, depth, p int, rnd *rand.Rand) *treeNode {
	counts := make([]int, t.nClasses)
	for _, i := range idx {
		counts[y[i]]++
	}
	leaf := func() *treeNode {
		return &treeNode{isLeaf: true, probas: countsToProbas(counts, len(idx))}
	}
	if isPure(counts) || len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return leaf()
	}

	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	want := p
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		want = t.MaxFeatures
	}

	// Keep drawing features past MaxFeatures until one of them yields a split.
	parent := gini(counts, len(idx))
	best := split{feature: -1}
	for k, f := range features {
		if k >= want && best.feature >= 0 {
			break
		}
		if s := t.bestSplit(X, y, idx, f, parent); s.gain > best.gain {
			best = s
		}
	}
	if best.feature < 0 {
		return leaf()
	}

	var left, right []int
	for _, i := range idx {
		if X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		feature:   best.feature,
		threshold: best.threshold,
		left:      t.build(X, y, left, depth+1, p, rnd),
		right:     t.build(X, y, right, depth+1, p, rnd),
	}
}

type split struct {
	gain      float64
	feature   int
	threshold float64
}

// bestSplit sweeps sorted values of feature f, moving one sample at a time from right to left.
func (t *DecisionTreeClassifier) bestSplit(X [][]float64, y []int, idx []int, f int, parent float64) split {
	res := split{feature: -1}
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.SliceStable(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

	n := len(sorted)
	leftCounts := make([]int, t.nClasses)
	rightCounts := make([]int, t.nClasses)
	for _, i := range sorted {
		rightCounts[y[i]]++
	}
	for s := 1; s < n; s++ {
		moved := sorted[s-1]
		leftCounts[y[moved]]++
		rightCounts[y[moved]]--
		lo, hi := X[moved][f], X[sorted[s]][f]
		if lo == hi {
			continue
		}
		if s < t.MinSamplesLeaf || n-s < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(s)/float64(n)*gini(leftCounts, s) + float64(n-s)/float64(n)*gini(rightCounts, n-s)
		if gain := parent - weighted; gain > res.gain {
			res = split{gain: gain, feature: f, threshold: (lo + hi) / 2}
		}
	}
	return res
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		g -= p * p
	}
	return g
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int, total int) []float64 {
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}
