// Package synth provides the seeded random primitives every demo dataset is drawn from.
// A Source created with the same seed always yields the same stream, so generators
// that consume it in a fixed order are reproducible.
package synth

import (
	"math/rand"
	"time"
)

// Source is a deterministic pseudo-random stream. It is not safe for concurrent use.
type Source struct {
	rnd *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// IntRange returns an int in [lo, hi). It panics if hi <= lo.
func (s *Source) IntRange(lo, hi int) int {
	return lo + s.rnd.Intn(hi-lo)
}

// Normal draws from N(mean, std²).
func (s *Source) Normal(mean, std float64) float64 {
	return mean + std*s.rnd.NormFloat64()
}

// Uniform draws from U[lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rnd.Float64()
}

// Choice picks one element uniformly. It panics on an empty slice.
func (s *Source) Choice(options []string) string {
	return options[s.rnd.Intn(len(options))]
}

// SampleWithoutReplacement returns k distinct indices from [0, n) in draw order.
// If k > n it returns a permutation of all n indices.
func (s *Source) SampleWithoutReplacement(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	perm := s.rnd.Perm(n)
	out := make([]int, k)
	copy(out, perm[:k])
	return out
}

// Timeline returns n timestamps starting at start and spaced by step.
func Timeline(start time.Time, n int, step time.Duration) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out
}
