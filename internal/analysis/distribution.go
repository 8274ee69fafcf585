package analysis

import (
	"math"
	"sort"
)

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits [lo, hi] into n equal-width bins. The last bin is closed on the
// right; values outside the range are dropped.
func Histogram(vals []float64, n int, lo, hi float64) []Bin {
	if n <= 0 || hi <= lo {
		return nil
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	for _, v := range vals {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

// Box holds Tukey box-plot statistics.
type Box struct {
	Q1, Median, Q3             float64
	LowerWhisker, UpperWhisker float64
	Outliers                   int
}

// BoxStats computes quartiles, 1.5·IQR whiskers clamped to the data, and the number of
// points outside the whiskers.
func BoxStats(vals []float64) Box {
	if len(vals) == 0 {
		return Box{}
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	b := Box{
		Q1:     Quantile(cp, 0.25),
		Median: Quantile(cp, 0.5),
		Q3:     Quantile(cp, 0.75),
	}
	iqr := b.Q3 - b.Q1
	lowFence, highFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, v := range cp {
		if v >= lowFence {
			b.LowerWhisker = v
			break
		}
	}
	for i := len(cp) - 1; i >= 0; i-- {
		if cp[i] <= highFence {
			b.UpperWhisker = cp[i]
			break
		}
	}
	for _, v := range cp {
		if v < lowFence || v > highFence {
			b.Outliers++
		}
	}
	return b
}
