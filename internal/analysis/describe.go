package analysis

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics of a numeric series (quartiles use linear interpolation).
type Summary struct {
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation (n-1)
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes count, mean, sample std, min, quartiles and max.
// NaN values are skipped. An empty input yields a zero Summary.
func Describe(vals []float64) Summary {
	var s Summary
	// Welford update
	var mean, m2 float64
	clean := make([]float64, 0, len(vals))
	for _, x := range vals {
		if math.IsNaN(x) {
			continue
		}
		clean = append(clean, x)
		s.Count++
		delta := x - mean
		mean += delta / float64(s.Count)
		m2 += delta * (x - mean)
	}
	if s.Count == 0 {
		return s
	}
	s.Mean = mean
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	sort.Float64s(clean)
	s.Min = clean[0]
	s.Max = clean[len(clean)-1]
	s.Q1 = Quantile(clean, 0.25)
	s.Median = Quantile(clean, 0.5)
	s.Q3 = Quantile(clean, 0.75)
	return s
}

// Sum adds all values.
func Sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return Sum(vals) / float64(len(vals))
}

// Quantile linearly interpolates the q-th quantile of an ascending slice.
// A NaN q yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	if math.IsNaN(q) {
		return math.NaN()
	}
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// QuantileOf sorts a copy of vals and returns its q-th quantile.
func QuantileOf(vals []float64, q float64) float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return Quantile(cp, q)
}

// MedianMAD computes median and MAD (median absolute deviation) of values.
func MedianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = Quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = Quantile(dev, 0.5)
	return
}

// RobustOutliers counts values whose robust Z-score (0.6745·(x-median)/MAD) exceeds
// threshold in absolute value. A threshold <= 0 defaults to 3.5. Fewer than 8 values,
// or a zero MAD, report no outliers.
func RobustOutliers(vals []float64, threshold float64) (count int, maxAbsZ float64) {
	if threshold <= 0 {
		threshold = 3.5
	}
	if len(vals) < 8 {
		return 0, 0
	}
	median, mad := MedianMAD(vals)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > threshold {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ
}
