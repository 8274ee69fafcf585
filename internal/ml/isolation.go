package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/Zolinad/dsportfolio/internal/analysis"
)

// Outlier labels returned by IsolationForest.FitPredict.
const (
	LabelInlier  = 1
	LabelOutlier = -1
)

// IsolationForestConfig holds configuration for Isolation Forest.
type IsolationForestConfig struct {
	NumTrees      int     // default 100
	SubsampleSize int     // default 256 (capped at the number of rows)
	MaxDepth      int     // default ceil(log2(SubsampleSize))
	Contamination float64 // expected outlier fraction in (0, 0.5]; default 0.1
	RandomState   int64
}

// IsolationForest scores rows by how quickly random axis-aligned splits isolate them.
type IsolationForest struct {
	config    IsolationForestConfig
	trees     []*isoNode
	sampleN   int
	threshold float64
}

type isoNode struct {
	left, right *isoNode
	feature     int
	value       float64
	size        int
	isLeaf      bool
}

// NewIsolationForest applies defaults to cfg and returns an unfitted forest.
func NewIsolationForest(cfg IsolationForestConfig) *IsolationForest {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.SubsampleSize <= 0 {
		cfg.SubsampleSize = 256
	}
	if cfg.Contamination <= 0 {
		cfg.Contamination = 0.1
	}
	return &IsolationForest{config: cfg}
}

// Fit builds the trees from X and fixes the outlier threshold so that roughly
// Contamination of the training rows score above it.
func (f *IsolationForest) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("isolationforest: empty X")
	}
	if math.IsNaN(f.config.Contamination) || f.config.Contamination > 0.5 {
		return fmt.Errorf("isolationforest: contamination %.3f out of range (0, 0.5]", f.config.Contamination)
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("isolationforest: rows have no features")
	}
	for i := range X {
		if len(X[i]) != p {
			return errors.New("isolationforest: inconsistent number of features in X rows")
		}
	}

	f.sampleN = min(f.config.SubsampleSize, len(X))
	maxDepth := f.config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = int(math.Ceil(math.Log2(math.Max(float64(f.sampleN), 2))))
	}

	rnd := rand.New(rand.NewSource(f.config.RandomState))
	f.trees = make([]*isoNode, 0, f.config.NumTrees)
	for i := 0; i < f.config.NumTrees; i++ {
		sample := rnd.Perm(len(X))[:f.sampleN]
		f.trees = append(f.trees, f.build(X, sample, 0, maxDepth, p, rnd))
	}

	scores := f.Score(X)
	f.threshold = analysis.QuantileOf(scores, 1-f.config.Contamination)
	return nil
}

// Score returns the anomaly score 2^(-E[h(x)]/c(n)) for each row; values near 1 are anomalous.
func (f *IsolationForest) Score(X [][]float64) []float64 {
	out := make([]float64, len(X))
	if len(f.trees) == 0 {
		return out
	}
	c := averagePathLength(f.sampleN)
	for i, row := range X {
		var total float64
		for _, t := range f.trees {
			total += pathLength(t, row, 0)
		}
		mean := total / float64(len(f.trees))
		if c == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = math.Pow(2, -mean/c)
	}
	return out
}

// Threshold is the score above which Predict labels a row as an outlier.
func (f *IsolationForest) Threshold() float64 { return f.threshold }

// Predict labels rows LabelOutlier when their score exceeds the fitted threshold.
func (f *IsolationForest) Predict(X [][]float64) ([]int, error) {
	if len(f.trees) == 0 {
		return nil, errors.New("isolationforest: not fitted")
	}
	scores := f.Score(X)
	out := make([]int, len(X))
	for i, s := range scores {
		if s > f.threshold {
			out[i] = LabelOutlier
		} else {
			out[i] = LabelInlier
		}
	}
	return out, nil
}

// FitPredict fits on X and labels the same rows.
func (f *IsolationForest) FitPredict(X [][]float64) ([]int, error) {
	if err := f.Fit(X); err != nil {
		return nil, err
	}
	return f.Predict(X)
}

func (f *IsolationForest) build(X [][]float64, idx []int, depth, maxDepth, p int, rnd *rand.Rand) *isoNode {
	if len(idx) <= 1 || depth >= maxDepth {
		return &isoNode{isLeaf: true, size: len(idx)}
	}
	feature := rnd.Intn(p)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		v := X[i][feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &isoNode{isLeaf: true, size: len(idx)}
	}
	value := lo + rnd.Float64()*(hi-lo)
	var left, right []int
	for _, i := range idx {
		if X[i][feature] < value {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &isoNode{
		feature: feature,
		value:   value,
		size:    len(idx),
		left:    f.build(X, left, depth+1, maxDepth, p, rnd),
		right:   f.build(X, right, depth+1, maxDepth, p, rnd),
	}
}

func pathLength(n *isoNode, row []float64, depth float64) float64 {
	for !n.isLeaf {
		if row[n.feature] < n.value {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return depth + averagePathLength(n.size)
}

// averagePathLength is c(n), the mean depth of an unsuccessful BST search over n points.
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	harmonic := math.Log(float64(n-1)) + 0.5772156649
	return 2*harmonic - 2*float64(n-1)/float64(n)
}
