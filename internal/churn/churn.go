// Package churn trains a random forest on synthetic subscription customers and
// scores simulated profiles for cancellation risk.
package churn

import (
	"fmt"

	"github.com/Zolinad/dsportfolio/internal/ml"
	"github.com/Zolinad/dsportfolio/internal/synth"
)

// Customer is one synthetic subscriber.
type Customer struct {
	TenureMonths int
	MonthlyFee   int
	Complaints   int
	Cancelled    bool
}

// Params controls dataset generation and model size.
type Params struct {
	Seed  int64
	Rows  int
	Trees int
}

// DefaultParams returns the settings used by the dashboard.
func DefaultParams() Params {
	return Params{Seed: 42, Rows: 200, Trees: 50}
}

// Generate draws p.Rows customers. Columns are drawn one after another (all
// tenures, then all fees, then all complaint counts) so the stream order is fixed.
func Generate(p Params) []Customer {
	src := synth.New(p.Seed)
	out := make([]Customer, p.Rows)
	for i := range out {
		out[i].TenureMonths = src.IntRange(1, 48)
	}
	for i := range out {
		out[i].MonthlyFee = src.IntRange(50, 150)
	}
	for i := range out {
		out[i].Complaints = src.IntRange(0, 5)
	}
	for i := range out {
		out[i].Cancelled = CancelRule(out[i])
	}
	return out
}

// CancelRule labels a customer as cancelled when they complained more than twice,
// or pay more than 100 while having fewer than six months of tenure.
func CancelRule(c Customer) bool {
	return c.Complaints > 2 || (c.MonthlyFee > 100 && c.TenureMonths < 6)
}

// CountCancelled returns how many customers carry the cancelled label.
func CountCancelled(customers []Customer) int {
	n := 0
	for _, c := range customers {
		if c.Cancelled {
			n++
		}
	}
	return n
}

func features(tenure, fee, complaints int) []float64 {
	return []float64{float64(tenure), float64(fee), float64(complaints)}
}

// Model wraps the fitted forest.
type Model struct {
	forest *ml.RandomForest
}

// Train fits a random forest on (tenure, fee, complaints) against the cancelled label.
func Train(customers []Customer, p Params) (*Model, error) {
	if len(customers) == 0 {
		return nil, fmt.Errorf("churn: no customers to train on")
	}
	X := make([][]float64, len(customers))
	y := make([]int, len(customers))
	for i, c := range customers {
		X[i] = features(c.TenureMonths, c.MonthlyFee, c.Complaints)
		if c.Cancelled {
			y[i] = 1
		}
	}
	trees := p.Trees
	if trees <= 0 {
		trees = DefaultParams().Trees
	}
	rf := ml.NewRandomForest(ml.WithNEstimators(trees), ml.WithRandomState(p.Seed))
	if err := rf.Fit(X, y); err != nil {
		return nil, fmt.Errorf("churn: fit forest: %w", err)
	}
	return &Model{forest: rf}, nil
}

// Assessment is the scored profile.
type Assessment struct {
	Profile     Profile
	Probability float64
	Risk        RiskLevel
}

// Assess returns the probability of cancellation for p and its risk level.
func (m *Model) Assess(p Profile) (Assessment, error) {
	p = p.Clamp()
	proba, err := m.forest.ProbaOf([][]float64{features(p.TenureMonths, p.MonthlyFee, p.Complaints)}, 1)
	if err != nil {
		return Assessment{}, fmt.Errorf("churn: predict: %w", err)
	}
	return Assessment{Profile: p, Probability: proba[0], Risk: Classify(proba[0])}, nil
}
