package kpi

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Zolinad/dsportfolio/internal/analysis"
	"github.com/Zolinad/dsportfolio/internal/chart"
	"github.com/Zolinad/dsportfolio/internal/format"
)

// LatestRows is how many recent rows the detail table shows.
const LatestRows = 50

// Dashboard holds the generated ledger for the process lifetime.
type Dashboard struct {
	Sales []Sale
}

// NewDashboard generates the ledger once.
func NewDashboard(p Params) *Dashboard {
	return &Dashboard{Sales: Generate(p)}
}

// FilterFromQuery reads repeated "region" and "category" parameters. Unknown values
// are dropped and an empty selection means all.
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Regions:    pick(q["region"], Regions),
		Categories: pick(q["category"], Categories),
	}
}

func pick(requested, allowed []string) []string {
	ok := toSet(allowed)
	var out []string
	for _, v := range analysis.Unique(requested) {
		if ok[v] {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), allowed...)
	}
	return out
}

// Option is a multi-select entry.
type Option struct {
	Name     string
	Selected bool
}

func options(all, selected []string) []Option {
	sel := toSet(selected)
	out := make([]Option, len(all))
	for i, v := range all {
		out[i] = Option{Name: v, Selected: sel == nil || sel[v]}
	}
	return out
}

// View is what the KPI page displays.
type View struct {
	Regions       []Option
	Categories    []Option
	Rows          int
	Indicators    Indicators
	ByRegion      []RegionTotal
	ByCategory    []CategoryPerformance
	Latest        []Sale
	RegionChart   chart.Figure
	QualityMatrix chart.Figure
}

// Render applies f and builds the indicators and charts.
func (d *Dashboard) Render(f Filter) View {
	rows := f.Apply(d.Sales)
	v := View{
		Regions:    options(Regions, f.Regions),
		Categories: options(Categories, f.Categories),
		Rows:       len(rows),
		Indicators: Compute(rows),
		ByRegion:   ByRegion(rows),
		ByCategory: ByCategory(rows),
		Latest:     Latest(rows, LatestRows),
	}
	v.RegionChart = RegionFigure(v.ByRegion)
	v.QualityMatrix = QualityFigure(v.ByCategory)
	return v
}

// RevenueText formats total revenue.
func (i Indicators) RevenueText() string { return format.BRL(i.Revenue) }

// ProfitText formats total profit.
func (i Indicators) ProfitText() string { return format.BRL(i.Profit) }

// QualityText formats the mean score out of ten.
func (i Indicators) QualityText() string { return format.Decimal(i.MeanQuality, 1) + "/10,0" }

// DeltaText formats the distance to the quality goal.
func (i Indicators) DeltaText() string { return format.Signed(i.QualityDelta) + " vs Meta" }

// RegionFigure is the regional sales ranking.
func RegionFigure(totals []RegionTotal) chart.Figure {
	var names []string
	var sales []float64
	for _, t := range totals {
		names = append(names, t.Region)
		sales = append(sales, t.Sales)
	}
	return chart.Figure{
		Data: []chart.Trace{{
			Type:   "bar",
			X:      names,
			Y:      sales,
			Marker: &chart.Marker{Color: sales, ColorScale: "Blues", ShowScale: true},
		}},
		Layout: chart.Layout{
			Title: "Volume de Vendas (Ranking Regional)",
			XAxis: &chart.Axis{Title: "Região"},
			YAxis: &chart.Axis{Title: "Vendas"},
		},
	}
}

// QualityFigure plots category volume against mean quality with the goal line.
func QualityFigure(perf []CategoryPerformance) chart.Figure {
	fig := chart.Figure{Layout: chart.Layout{
		Title: "Matriz de Desempenho (Qualidade x Volume)",
		XAxis: &chart.Axis{Title: "Volume Vendido R$"},
		YAxis: &chart.Axis{Title: "Score de Qualidade (0-10)"},
	}}
	maxSales := 1.0
	for _, p := range perf {
		if p.Sales > maxSales {
			maxSales = p.Sales
		}
	}
	for _, p := range perf {
		fig.Data = append(fig.Data, chart.Trace{
			Type:    "scatter",
			Mode:    "markers+text",
			Name:    p.Category,
			X:       []float64{p.Sales},
			Y:       []float64{p.MeanQuality},
			Text:    []string{p.Category},
			TextPos: "top center",
			Marker:  &chart.Marker{Size: []float64{p.Sales}, SizeMode: "area", SizeRef: 2 * maxSales / (40 * 40)},
		})
	}
	fig.Layout.HLine(QualityGoal, "", "dot", "Meta de Qualidade")
	return fig
}

// LatestHeader labels the columns of LatestRowsTable.
var LatestHeader = []string{"Data", "Região", "Categoria", "Vendas", "Margem_Lucro", "Lucro", "Score_Qualidade"}

// LatestRowsTable formats rows for the detail table.
func LatestRowsTable(rows []Sale) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format(time.DateOnly), r.Region, r.Category, format.Int(r.Sales),
			format.Decimal(r.Margin, 4), format.BRL(r.Profit), format.Decimal(r.QualityScore, 2),
		})
	}
	return out
}

// Markdown renders the view as a plain report.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registros filtrados: %d\n\n", v.Rows))
	b.WriteString(fmt.Sprintf("- Faturamento Total: %s\n", v.Indicators.RevenueText()))
	b.WriteString(fmt.Sprintf("- Lucro Líquido: %s\n", v.Indicators.ProfitText()))
	b.WriteString(fmt.Sprintf("- Score de Qualidade (Média): %s (%s)\n\n", v.Indicators.QualityText(), v.Indicators.DeltaText()))
	b.WriteString("## Performance por Região\n\n")
	rows := make([][]string, 0, len(v.ByRegion))
	for _, r := range v.ByRegion {
		rows = append(rows, []string{r.Region, format.BRL(r.Sales)})
	}
	b.WriteString(analysis.MarkdownTable([]string{"Região", "Vendas"}, rows))
	b.WriteString("\n## Qualidade vs. Volume\n\n")
	rows = rows[:0]
	for _, c := range v.ByCategory {
		rows = append(rows, []string{c.Category, format.BRL(c.Sales), format.Decimal(c.MeanQuality, 2)})
	}
	b.WriteString(analysis.MarkdownTable([]string{"Categoria", "Vendas", "Score_Qualidade"}, rows))
	b.WriteString("\n## 📋 Detalhamento Operacional\n\n")
	b.WriteString(analysis.MarkdownTable(LatestHeader, LatestRowsTable(v.Latest)))
	return b.String()
}
