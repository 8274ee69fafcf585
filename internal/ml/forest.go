package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RandomForest is a bagged ensemble of decision trees for classification.
type RandomForest struct {
	NEstimators int
	MaxDepth    int
	MaxFeatures int // 0 => sqrt(p)
	Bootstrap   bool
	RandomState int64

	trees   []*DecisionTreeClassifier
	classes []int
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption      { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithRandomState(seed int64) ForestOption { return func(rf *RandomForest) { rf.RandomState = seed } }
func WithMaxDepth(d int) ForestOption         { return func(rf *RandomForest) { rf.MaxDepth = d } }
func WithBootstrap(b bool) ForestOption       { return func(rf *RandomForest) { rf.Bootstrap = b } }

// NewRandomForest initializes the forest with 100 bootstrapped trees.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators: 100,
		Bootstrap:   true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest. Trees are grown concurrently; each tree owns a source seeded
// with RandomState+index, so the fitted forest does not depend on scheduling.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	if len(y) != len(X) {
		return errors.New("randomforest: X and y length mismatch")
	}
	if rf.NEstimators <= 0 {
		return errors.New("randomforest: NEstimators must be positive")
	}

	classSet := map[int]bool{}
	for _, lab := range y {
		classSet[lab] = true
	}
	rf.classes = rf.classes[:0]
	for c := range classSet {
		rf.classes = append(rf.classes, c)
	}
	sort.Ints(rf.classes)
	classIdx := make(map[int]int, len(rf.classes))
	for i, c := range rf.classes {
		classIdx[c] = i
	}
	yIdx := make([]int, len(y))
	for i, lab := range y {
		yIdx[i] = classIdx[lab]
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Max(1, math.Floor(math.Sqrt(float64(len(X[0]))))))
	}

	n := len(X)
	rf.trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	errCh := make(chan error, rf.NEstimators)
	var wg sync.WaitGroup
	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))
			sample := make([]int, n)
			for j := range sample {
				if rf.Bootstrap {
					sample[j] = treeRand.Intn(n)
				} else {
					sample[j] = j
				}
			}
			tree := NewDecisionTreeClassifier(
				WithTreeMaxDepth(rf.MaxDepth),
				WithTreeMaxFeatures(maxFeatures),
				WithTreeRandomState(seed),
			)
			if err := tree.FitSample(X, yIdx, len(rf.classes), sample); err != nil {
				errCh <- fmt.Errorf("tree %d: %w", idx, err)
				return
			}
			rf.trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	if err, ok := <-errCh; ok {
		return err
	}
	return nil
}

// Classes returns the sorted class labels seen during Fit.
func (rf *RandomForest) Classes() []int {
	return append([]int(nil), rf.classes...)
}

// PredictProba averages the per-tree class probabilities. Column j corresponds to Classes()[j].
func (rf *RandomForest) PredictProba(X [][]float64) ([][]float64, error) {
	if len(rf.trees) == 0 {
		return nil, errors.New("randomforest: not fitted")
	}
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(rf.classes))
	}
	for _, tree := range rf.trees {
		for i, p := range tree.PredictProba(X) {
			for j := range p {
				out[i][j] += p[j]
			}
		}
	}
	k := float64(len(rf.trees))
	for i := range out {
		for j := range out[i] {
			out[i][j] /= k
		}
	}
	return out, nil
}

// ProbaOf returns P(label) for each row; zero if label was never seen in training.
func (rf *RandomForest) ProbaOf(X [][]float64, label int) ([]float64, error) {
	proba, err := rf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	col := -1
	for j, c := range rf.classes {
		if c == label {
			col = j
		}
	}
	out := make([]float64, len(X))
	if col < 0 {
		return out, nil
	}
	for i := range proba {
		out[i] = proba[i][col]
	}
	return out, nil
}

// Predict returns the most probable class label for each row.
func (rf *RandomForest) Predict(X [][]float64) ([]int, error) {
	proba, err := rf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(X))
	for i, p := range proba {
		best := 0
		for j := 1; j < len(p); j++ {
			if p[j] > p[best] {
				best = j
			}
		}
		out[i] = rf.classes[best]
	}
	return out, nil
}
