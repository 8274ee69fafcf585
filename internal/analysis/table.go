package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// NumSummary aggregates one numeric column inside a group.
type NumSummary struct {
	Count          int
	Sum            float64
	Min, Max, Mean float64
}

// GroupResult captures aggregated metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

// GroupBy aggregates named numeric columns by key. keys[i] is the group of row i and
// every column in cols must have len(keys) values. Groups are returned ordered by key.
func GroupBy(keys []string, cols map[string][]float64) ([]GroupResult, error) {
	for name, vals := range cols {
		if len(vals) != len(keys) {
			return nil, fmt.Errorf("group by: column %q has %d values, want %d", name, len(vals), len(keys))
		}
	}
	type acc struct {
		size int
		sum  map[string]float64
		cnt  map[string]int
		min  map[string]float64
		max  map[string]float64
	}
	groups := map[string]*acc{}
	for i, k := range keys {
		ga := groups[k]
		if ga == nil {
			ga = &acc{sum: map[string]float64{}, cnt: map[string]int{}, min: map[string]float64{}, max: map[string]float64{}}
			groups[k] = ga
		}
		ga.size++
		for name, vals := range cols {
			x := vals[i]
			if math.IsNaN(x) {
				continue
			}
			ga.sum[name] += x
			ga.cnt[name]++
			if _, ok := ga.min[name]; !ok || x < ga.min[name] {
				ga.min[name] = x
			}
			if _, ok := ga.max[name]; !ok || x > ga.max[name] {
				ga.max[name] = x
			}
		}
	}
	out := make([]GroupResult, 0, len(groups))
	for k, ga := range groups {
		gr := GroupResult{Key: k, Size: ga.size, Metrics: map[string]NumSummary{}}
		for name, n := range ga.cnt {
			gr.Metrics[name] = NumSummary{
				Count: n,
				Sum:   ga.sum[name],
				Min:   ga.min[name],
				Max:   ga.max[name],
				Mean:  ga.sum[name] / float64(n),
			}
		}
		out = append(out, gr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// CategoryCount is a value with its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts returns frequencies ordered by count desc, then value asc.
func ValueCounts(vals []string) []CategoryCount {
	m := map[string]int{}
	for _, v := range vals {
		m[v]++
	}
	out := make([]CategoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Unique returns the distinct values in first-seen order.
func Unique(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	var out []string
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// MarkdownTable renders a pipe table. Cells are sanitized so they cannot break the layout.
func MarkdownTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| ")
	for i, h := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(h))
	}
	b.WriteString(" |\n| ")
	for i := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range header {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if r := []rune(val); len(r) > 80 {
				val = string(r[:77]) + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
