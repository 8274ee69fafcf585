package analysis

import (
	"math"
	"strings"
	"testing"
)

func TestDescribeInterpolatesQuartiles(t *testing.T) {
	s := Describe([]float64{4, 1, 3, 2, math.NaN()})
	if s.Count != 4 {
		t.Fatalf("count = %d, want 4", s.Count)
	}
	if s.Mean != 2.5 {
		t.Fatalf("mean = %v, want 2.5", s.Mean)
	}
	// sample std of 1..4
	if math.Abs(s.Std-1.2909944487) > 1e-9 {
		t.Fatalf("std = %v", s.Std)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Fatalf("min/max = %v/%v", s.Min, s.Max)
	}
	if s.Median != 2.5 || s.Q1 != 1.75 || s.Q3 != 3.25 {
		t.Fatalf("quartiles = %v %v %v", s.Q1, s.Median, s.Q3)
	}
	if q := Quantile([]float64{1, 2, 3}, math.NaN()); !math.IsNaN(q) {
		t.Fatalf("quantile of NaN q = %v, want NaN", q)
	}
	if z := Describe(nil); z.Count != 0 || z.Mean != 0 {
		t.Fatalf("empty describe = %+v", z)
	}
}

func TestRobustOutliers(t *testing.T) {
	vals := []float64{10, 11, 9.5, 10.5, 9.8, 10.2, 8.8, 9.7, 50}
	cnt, maxZ := RobustOutliers(vals, 0)
	if cnt != 1 {
		t.Fatalf("outliers = %d, want 1", cnt)
	}
	if maxZ <= 3.5 {
		t.Fatalf("max |z| = %v, want > 3.5", maxZ)
	}
	if cnt, _ := RobustOutliers(vals[:5], 0); cnt != 0 {
		t.Fatalf("short series should report none, got %d", cnt)
	}
}

func TestGroupBy(t *testing.T) {
	keys := []string{"Sul", "Norte", "Sul", "Norte", "Sul"}
	cols := map[string][]float64{
		"Vendas": {100, 200, 300, 400, 500},
	}
	groups, err := GroupBy(keys, cols)
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if len(groups) != 2 || groups[0].Key != "Norte" || groups[1].Key != "Sul" {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	sul := groups[1].Metrics["Vendas"]
	if groups[1].Size != 3 || sul.Sum != 900 || sul.Mean != 300 || sul.Min != 100 || sul.Max != 500 {
		t.Fatalf("unexpected Sul summary: %+v", sul)
	}
	if _, err := GroupBy(keys, map[string][]float64{"x": {1}}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestValueCountsAndUnique(t *testing.T) {
	vals := []string{"TI", "RH", "TI", "Vendas", "RH", "TI"}
	vc := ValueCounts(vals)
	if vc[0].Value != "TI" || vc[0].Count != 3 || vc[1].Value != "RH" {
		t.Fatalf("unexpected counts: %+v", vc)
	}
	u := Unique(vals)
	if strings.Join(u, ",") != "TI,RH,Vendas" {
		t.Fatalf("unexpected unique order: %v", u)
	}
}

func TestHistogramAndBox(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 59.9, 60, 61, -1}, 6, 0, 60)
	if len(bins) != 6 {
		t.Fatalf("bins = %d", len(bins))
	}
	if bins[0].Count != 3 || bins[5].Count != 2 {
		t.Fatalf("unexpected counts: %+v", bins)
	}

	b := BoxStats([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	if b.Median != 5 {
		t.Fatalf("median = %v", b.Median)
	}
	if b.Outliers != 1 || b.UpperWhisker != 8 || b.LowerWhisker != 1 {
		t.Fatalf("unexpected box: %+v", b)
	}
}

func TestMarkdownTableSanitizes(t *testing.T) {
	md := MarkdownTable([]string{"ID", ""}, [][]string{{"TRX-0001", "a|b\nc"}, {"TRX-0002"}})
	if !strings.Contains(md, "| ID | (unnamed) |") {
		t.Fatalf("missing header: %s", md)
	}
	if !strings.Contains(md, "| TRX-0001 | a/b c |") {
		t.Fatalf("cell not sanitized: %s", md)
	}
	if !strings.Contains(md, "| TRX-0002 |  |") {
		t.Fatalf("short row not padded: %s", md)
	}
}
