// Package audit generates synthetic corporate expenses with injected anomalies and
// flags outliers with an isolation forest.
package audit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Zolinad/dsportfolio/internal/ml"
	"github.com/Zolinad/dsportfolio/internal/synth"
)

var (
	Departments = []string{"TI", "Marketing", "RH", "Operações", "Vendas"}
	Categories  = []string{"Software", "Viagem", "Serviços", "Material de Escritório"}
)

// Detection statuses.
const (
	StatusAnomaly = "Anomalia Detectada"
	StatusNormal  = "Normal"
)

// Contamination bounds for the detector sensitivity control.
const (
	MinContamination     = 0.01
	MaxContamination     = 0.10
	DefaultContamination = 0.03
)

// Transaction is one expense entry.
type Transaction struct {
	ID         string
	Department string
	Category   string
	Amount     float64
	Date       time.Time
	Injected   bool
}

// Params controls generation and detection.
type Params struct {
	Seed      int64
	Rows      int
	Anomalies int
	Trees     int
}

// DefaultParams returns the dashboard settings.
func DefaultParams() Params {
	return Params{Seed: 42, Rows: 500, Anomalies: 15, Trees: 100}
}

var timelineStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Generate draws hourly transactions around a normal spend of 1200 ± 300 and then
// overwrites p.Anomalies distinct rows with amounts in [5000, 15000).
func Generate(p Params) []Transaction {
	src := synth.New(p.Seed)
	dates := synth.Timeline(timelineStart, p.Rows, time.Hour)
	out := make([]Transaction, p.Rows)
	for i := range out {
		out[i].ID = fmt.Sprintf("TRX-%04d", i)
		out[i].Date = dates[i]
	}
	for i := range out {
		out[i].Department = src.Choice(Departments)
	}
	for i := range out {
		out[i].Category = src.Choice(Categories)
	}
	for i := range out {
		out[i].Amount = src.Normal(1200, 300)
	}
	Inject(out, src, p.Anomalies)
	return out
}

// Inject marks k distinct rows as anomalies and gives them extreme amounts.
func Inject(txs []Transaction, src *synth.Source, k int) []int {
	idx := src.SampleWithoutReplacement(len(txs), k)
	for _, i := range idx {
		txs[i].Amount = src.Uniform(5000, 15000)
		txs[i].Injected = true
	}
	return idx
}

// ClampContamination keeps c inside the supported sensitivity range.
func ClampContamination(c float64) float64 {
	if math.IsNaN(c) {
		return DefaultContamination
	}
	if c < MinContamination {
		return MinContamination
	}
	if c > MaxContamination {
		return MaxContamination
	}
	return c
}

// Audited is a transaction with its detection outcome.
type Audited struct {
	Transaction
	Status string
}

// Flagged reports whether the detector marked the row.
func (a Audited) Flagged() bool { return a.Status == StatusAnomaly }

// Detect fits an isolation forest on the amounts and labels every row.
func Detect(txs []Transaction, contamination float64, trees int, seed int64) ([]Audited, error) {
	X := make([][]float64, len(txs))
	for i, t := range txs {
		X[i] = []float64{t.Amount}
	}
	f := ml.NewIsolationForest(ml.IsolationForestConfig{
		NumTrees:      trees,
		Contamination: ClampContamination(contamination),
		RandomState:   seed,
	})
	labels, err := f.FitPredict(X)
	if err != nil {
		return nil, fmt.Errorf("audit: detect: %w", err)
	}
	out := make([]Audited, len(txs))
	for i, t := range txs {
		out[i] = Audited{Transaction: t, Status: StatusNormal}
		if labels[i] == ml.LabelOutlier {
			out[i].Status = StatusAnomaly
		}
	}
	return out, nil
}

// Suspicious returns the flagged rows sorted by amount, largest first.
func Suspicious(rows []Audited) []Audited {
	var out []Audited
	for _, r := range rows {
		if r.Flagged() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// AtRisk sums the amounts of rows.
func AtRisk(rows []Audited) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}
