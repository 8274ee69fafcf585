// Package kpi generates a synthetic national retail ledger and computes the
// strategic indicators shown on the sales dashboard.
package kpi

import (
	"sort"
	"time"

	"github.com/Zolinad/dsportfolio/internal/analysis"
	"github.com/Zolinad/dsportfolio/internal/synth"
)

var (
	Regions    = []string{"Norte", "Nordeste", "Sudeste", "Sul", "Centro-Oeste"}
	Categories = []string{"Eletrônicos", "Móveis", "Eletrodomésticos", "Decoração"}
)

// QualityGoal is the target mean quality score.
const QualityGoal = 6.0

// Sale is one daily sales record.
type Sale struct {
	Date         time.Time
	Region       string
	Category     string
	Sales        int
	Margin       float64
	Profit       float64
	QualityScore float64
}

// Params controls generation.
type Params struct {
	Seed int64
	Rows int
}

// DefaultParams returns the dashboard settings.
func DefaultParams() Params {
	return Params{Seed: 42, Rows: 1000}
}

var firstDay = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// Generate draws p.Rows daily records and derives profit and quality score.
func Generate(p Params) []Sale {
	src := synth.New(p.Seed)
	dates := synth.Timeline(firstDay, p.Rows, 24*time.Hour)
	out := make([]Sale, p.Rows)
	for i := range out {
		out[i].Date = dates[i]
	}
	for i := range out {
		out[i].Region = src.Choice(Regions)
	}
	for i := range out {
		out[i].Category = src.Choice(Categories)
	}
	for i := range out {
		out[i].Sales = src.IntRange(100, 5000)
	}
	for i := range out {
		out[i].Margin = src.Uniform(0.05, 0.30)
	}
	for i := range out {
		Derive(&out[i])
	}
	return out
}

// Derive fills Profit and QualityScore from Sales and Margin.
func Derive(s *Sale) {
	s.Profit = float64(s.Sales) * s.Margin
	s.QualityScore = s.Margin * 100 / 3
}

// Filter selects regions and categories. Empty lists mean "all".
type Filter struct {
	Regions    []string
	Categories []string
}

// Apply keeps rows matching both selections.
func (f Filter) Apply(rows []Sale) []Sale {
	regions := toSet(f.Regions)
	cats := toSet(f.Categories)
	var out []Sale
	for _, r := range rows {
		if regions != nil && !regions[r.Region] {
			continue
		}
		if cats != nil && !cats[r.Category] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// Indicators are the headline KPIs.
type Indicators struct {
	Revenue      float64
	Profit       float64
	MeanQuality  float64
	QualityDelta float64
}

// Compute totals revenue and profit and compares mean quality to QualityGoal.
func Compute(rows []Sale) Indicators {
	var ind Indicators
	quality := make([]float64, len(rows))
	for i, r := range rows {
		ind.Revenue += float64(r.Sales)
		ind.Profit += r.Profit
		quality[i] = r.QualityScore
	}
	ind.MeanQuality = analysis.Mean(quality)
	ind.QualityDelta = ind.MeanQuality - QualityGoal
	return ind
}

// RegionTotal is total sales of a region.
type RegionTotal struct {
	Region string
	Sales  float64
}

// CategoryPerformance is volume and mean quality of a category.
type CategoryPerformance struct {
	Category    string
	Sales       float64
	MeanQuality float64
}

// ByRegion sums sales per region, ordered by region name.
func ByRegion(rows []Sale) []RegionTotal {
	keys := make([]string, len(rows))
	sales := make([]float64, len(rows))
	for i, r := range rows {
		keys[i] = r.Region
		sales[i] = float64(r.Sales)
	}
	groups, err := analysis.GroupBy(keys, map[string][]float64{"sales": sales})
	if err != nil {
		return nil
	}
	out := make([]RegionTotal, len(groups))
	for i, g := range groups {
		out[i] = RegionTotal{Region: g.Key, Sales: g.Metrics["sales"].Sum}
	}
	return out
}

// ByCategory sums sales and averages quality per category, ordered by category name.
func ByCategory(rows []Sale) []CategoryPerformance {
	keys := make([]string, len(rows))
	sales := make([]float64, len(rows))
	quality := make([]float64, len(rows))
	for i, r := range rows {
		keys[i] = r.Category
		sales[i] = float64(r.Sales)
		quality[i] = r.QualityScore
	}
	groups, err := analysis.GroupBy(keys, map[string][]float64{"sales": sales, "quality": quality})
	if err != nil {
		return nil
	}
	out := make([]CategoryPerformance, len(groups))
	for i, g := range groups {
		out[i] = CategoryPerformance{
			Category:    g.Key,
			Sales:       g.Metrics["sales"].Sum,
			MeanQuality: g.Metrics["quality"].Mean,
		}
	}
	return out
}

// Latest returns up to n rows ordered by date, newest first.
func Latest(rows []Sale, n int) []Sale {
	cp := make([]Sale, len(rows))
	copy(cp, rows)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Date.After(cp[j].Date) })
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}
