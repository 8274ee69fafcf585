package logistics

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Zolinad/dsportfolio/internal/analysis"
	"github.com/Zolinad/dsportfolio/internal/chart"
	"github.com/Zolinad/dsportfolio/internal/format"
)

const (
	// ExtremeOutlierDays flags datasets whose slowest delivery exceeds this many days.
	ExtremeOutlierDays = 100
	histogramBins      = 100
	histogramMaxDays   = 60
	slowestRows        = 100
	maxOutlierPoints   = 500
)

// Years lists distinct purchase years in first-seen order.
func Years(orders []Order) []int {
	seen := map[int]bool{}
	var out []int
	for _, o := range orders {
		if y := o.Year(); !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}

// FilterYears keeps orders purchased in one of years. An empty list keeps everything.
func FilterYears(orders []Order, years []int) []Order {
	if len(years) == 0 {
		return orders
	}
	sel := map[int]bool{}
	for _, y := range years {
		sel[y] = true
	}
	var out []Order
	for _, o := range orders {
		if sel[o.Year()] {
			out = append(out, o)
		}
	}
	return out
}

// YearsFromQuery parses repeated "year" parameters, ignoring malformed values.
func YearsFromQuery(q url.Values) []int {
	var out []int
	for _, v := range q["year"] {
		if y, err := strconv.Atoi(v); err == nil {
			out = append(out, y)
		}
	}
	return out
}

// LeadTimes extracts the lead days as floats.
func LeadTimes(orders []Order) []float64 {
	out := make([]float64, len(orders))
	for i, o := range orders {
		out[i] = float64(o.LeadDays)
	}
	return out
}

// Slowest returns up to n orders with the longest lead time first.
func Slowest(orders []Order, n int) []Order {
	cp := make([]Order, len(orders))
	copy(cp, orders)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].LeadDays > cp[j].LeadDays })
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

// StatusBox is the lead-time distribution of one deadline status. OutlierDays
// holds the most extreme points beyond the whiskers, capped at 500.
type StatusBox struct {
	Status      string
	Count       int
	Box         analysis.Box
	OutlierDays []float64
}

// BoxesByStatus computes box statistics for on-time and late orders.
func BoxesByStatus(orders []Order) []StatusBox {
	var out []StatusBox
	for _, status := range []string{StatusOnTime, StatusLate} {
		var vals []float64
		for _, o := range orders {
			if o.DeadlineStatus == status {
				vals = append(vals, float64(o.LeadDays))
			}
		}
		if len(vals) == 0 {
			continue
		}
		box := analysis.BoxStats(vals)
		out = append(out, StatusBox{Status: status, Count: len(vals), Box: box, OutlierDays: outlierPoints(vals, box)})
	}
	return out
}

func outlierPoints(vals []float64, box analysis.Box) []float64 {
	var out []float64
	for _, v := range vals {
		if v < box.LowerWhisker || v > box.UpperWhisker {
			out = append(out, v)
		}
	}
	if len(out) <= maxOutlierPoints {
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i]-box.Median) > math.Abs(out[j]-box.Median)
	})
	return out[:maxOutlierPoints]
}

// YearOption is a year checkbox.
type YearOption struct {
	Year     int
	Selected bool
}

// View is what the logistics page displays. When Err or NoData is set the
// dependent sections are empty.
type View struct {
	Source         string
	Err            *LoadError
	NoData         bool
	Years          []YearOption
	Summary        analysis.Summary
	ExtremeOutlier bool
	RobustOutliers int
	Slowest        []Order
	Boxes          []StatusBox
	Histogram      chart.Figure
	BoxChart       chart.Figure
}

// Render builds the view from a load result and a year selection.
func Render(res Result, source string, years []int) View {
	v := View{Source: source, Err: res.Err}
	if !res.OK() {
		return v
	}
	if len(res.Orders) == 0 {
		v.NoData = true
		return v
	}
	all := Years(res.Orders)
	valid := map[int]bool{}
	for _, y := range all {
		valid[y] = true
	}
	var selected []int
	for _, y := range years {
		if valid[y] {
			selected = append(selected, y)
		}
	}
	if len(selected) == 0 {
		selected = all
	}
	sel := map[int]bool{}
	for _, y := range selected {
		sel[y] = true
	}
	sorted := append([]int(nil), all...)
	sort.Ints(sorted)
	for _, y := range sorted {
		v.Years = append(v.Years, YearOption{Year: y, Selected: sel[y]})
	}

	orders := FilterYears(res.Orders, selected)
	lead := LeadTimes(orders)
	v.Summary = analysis.Describe(lead)
	v.ExtremeOutlier = v.Summary.Count > 0 && v.Summary.Max > ExtremeOutlierDays
	v.RobustOutliers, _ = analysis.RobustOutliers(lead, 0)
	v.Slowest = Slowest(orders, slowestRows)
	v.Boxes = BoxesByStatus(orders)
	v.Histogram = HistogramFigure(lead, v.Summary)
	v.BoxChart = BoxFigure(v.Boxes)
	return v
}

// HistogramFigure bins lead times into 100 buckets over the observed range and
// zooms the axis to the first 60 days, marking mean and median.
func HistogramFigure(lead []float64, s analysis.Summary) chart.Figure {
	fig := chart.Figure{Layout: chart.Layout{
		Title:  "Distribuição Real dos Prazos de Entrega",
		XAxis:  &chart.Axis{Title: "Dias_Entrega", Range: []float64{0, histogramMaxDays}},
		YAxis:  &chart.Axis{Title: "Quantidade de Pedidos"},
		BarGap: 0.05,
	}}
	if s.Count == 0 {
		return fig
	}
	hi := s.Max
	if hi <= s.Min {
		hi = s.Min + 1
	}
	bins := analysis.Histogram(lead, histogramBins, s.Min, hi)
	var xs, ys, ws []float64
	for _, b := range bins {
		xs = append(xs, (b.Lo+b.Hi)/2)
		ys = append(ys, float64(b.Count))
		ws = append(ws, b.Hi-b.Lo)
	}
	fig.Data = []chart.Trace{{Type: "bar", X: xs, Y: ys, Width: ws, Marker: &chart.Marker{Color: "#00a65a"}}}
	fig.Layout.VLine(s.Mean, "red", "dash", "Média: "+format.Decimal(s.Mean, 1), "left")
	fig.Layout.VLine(s.Median, "black", "dot", "Mediana: "+format.Decimal(s.Median, 1), "right")
	return fig
}

// BoxFigure draws precomputed box statistics per deadline status.
func BoxFigure(boxes []StatusBox) chart.Figure {
	fig := chart.Figure{Layout: chart.Layout{
		Title: "Dispersão: Entregas no Prazo vs. Atrasadas",
		XAxis: &chart.Axis{Title: "Status_Prazo"},
		YAxis: &chart.Axis{Title: "Dias_Entrega"},
	}}
	for _, sb := range boxes {
		fig.Data = append(fig.Data, chart.Trace{
			Type:       "box",
			Name:       sb.Status,
			X:          []string{sb.Status},
			Q1:         []float64{sb.Box.Q1},
			Median:     []float64{sb.Box.Median},
			Q3:         []float64{sb.Box.Q3},
			LowerFence: []float64{sb.Box.LowerWhisker},
			UpperFence: []float64{sb.Box.UpperWhisker},
		})
		if len(sb.OutlierDays) == 0 {
			continue
		}
		xs := make([]string, len(sb.OutlierDays))
		for i := range xs {
			xs[i] = sb.Status
		}
		fig.Data = append(fig.Data, chart.Trace{
			Type:   "scatter",
			Mode:   "markers",
			Name:   sb.Status + " (outliers)",
			X:      xs,
			Y:      sb.OutlierDays,
			Marker: &chart.Marker{Size: 4, Color: "#d62728"},
		})
	}
	return fig
}

// DescribeHeader labels the columns of DescribeRows.
var DescribeHeader = []string{"Indicador", "Valor Real"}

// DescribeRows formats the summary for the statistics table.
func DescribeRows(s analysis.Summary) [][]string {
	return [][]string{
		{"Total de Pedidos", format.Int(s.Count)},
		{"Média (Mean)", format.Decimal(s.Mean, 2) + " dias"},
		{"Desvio Padrão", format.Decimal(s.Std, 2) + " dias"},
		{"Mínimo", format.Decimal(s.Min, 0) + " dias"},
		{"Mediana (Q2)", format.Decimal(s.Median, 0) + " dias"},
		{"Máximo", format.Decimal(s.Max, 0) + " dias"},
	}
}

// SlowestHeader labels the columns of SlowestRows.
var SlowestHeader = []string{"order_id", "order_status", "Dias_Entrega", "Status_Prazo", "order_purchase_timestamp"}

// SlowestRows formats orders for the raw sample table.
func SlowestRows(orders []Order) [][]string {
	out := make([][]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, []string{o.ID, o.Status, strconv.Itoa(o.LeadDays), o.DeadlineStatus, o.Purchased.Format(time.DateTime)})
	}
	return out
}

// Markdown renders the view as a plain report.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Fonte: %s\n\n", v.Source))
	if v.Err != nil {
		b.WriteString(v.Err.Message() + "\n\n")
		b.WriteString("Não foi possível carregar os dados. Verifique sua conexão com a internet.\n")
		return b.String()
	}
	if v.NoData {
		b.WriteString("Não foi possível carregar os dados: nenhum pedido entregue na fonte.\n")
		return b.String()
	}
	var years []string
	for _, y := range v.Years {
		if y.Selected {
			years = append(years, strconv.Itoa(y.Year))
		}
	}
	b.WriteString(fmt.Sprintf("Anos: %s\n\n", strings.Join(years, ", ")))
	b.WriteString("## 1. Estatística Descritiva: Tempo de Entrega (Dias)\n\n")
	b.WriteString(analysis.MarkdownTable(DescribeHeader, DescribeRows(v.Summary)))
	if v.ExtremeOutlier {
		b.WriteString("\n⚠️ **Outlier Extremo:** Há pedidos que levaram meses para chegar!\n")
	}
	b.WriteString(fmt.Sprintf("\nOutliers (Z robusto > 3,5): %s pedidos\n", format.Int(v.RobustOutliers)))
	b.WriteString("\n## 3. Box Plot (Análise de Atrasos)\n\n")
	for _, sb := range v.Boxes {
		b.WriteString(fmt.Sprintf("- %s: %s pedidos, Q1 %s, mediana %s, Q3 %s, %d outliers\n",
			sb.Status, format.Int(sb.Count), format.Decimal(sb.Box.Q1, 1), format.Decimal(sb.Box.Median, 1),
			format.Decimal(sb.Box.Q3, 1), sb.Box.Outliers))
	}
	b.WriteString("\n## Amostra dos Dados Brutos\n\n")
	b.WriteString(analysis.MarkdownTable(SlowestHeader, SlowestRows(v.Slowest)))
	return b.String()
}
