package audit

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Zolinad/dsportfolio/internal/analysis"
	"github.com/Zolinad/dsportfolio/internal/chart"
	"github.com/Zolinad/dsportfolio/internal/format"
)

// Dashboard holds the generated ledger. Detection runs per render because the
// contamination is a user control.
type Dashboard struct {
	Transactions []Transaction
	params       Params
}

// NewDashboard generates the ledger once.
func NewDashboard(p Params) *Dashboard {
	return &Dashboard{Transactions: Generate(p), params: p}
}

// ContaminationFromQuery reads "contamination", defaulting and clamping it.
func ContaminationFromQuery(q url.Values) float64 {
	v := q.Get("contamination")
	if v == "" {
		return DefaultContamination
	}
	c, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(c) {
		return DefaultContamination
	}
	return ClampContamination(c)
}

// View is what the audit page displays.
type View struct {
	Contamination float64
	Analysed      int
	Found         int
	AtRisk        float64
	Suspicious    []Audited
	Offenders     []analysis.CategoryCount
	Scatter       chart.Figure
	OffenderChart chart.Figure
}

// Render runs detection at the given contamination.
func (d *Dashboard) Render(contamination float64) (View, error) {
	c := ClampContamination(contamination)
	rows, err := Detect(d.Transactions, c, d.params.Trees, d.params.Seed)
	if err != nil {
		return View{}, err
	}
	sus := Suspicious(rows)
	depts := make([]string, len(sus))
	for i, r := range sus {
		depts[i] = r.Department
	}
	offenders := analysis.ValueCounts(depts)
	return View{
		Contamination: c,
		Analysed:      len(rows),
		Found:         len(sus),
		AtRisk:        AtRisk(sus),
		Suspicious:    sus,
		Offenders:     offenders,
		Scatter:       ScatterFigure(rows),
		OffenderChart: OffenderFigure(offenders),
	}, nil
}

// AtRiskText formats the total at risk as currency.
func (v View) AtRiskText() string { return format.BRL(v.AtRisk) }

var statusColors = map[string]string{StatusNormal: "lightgrey", StatusAnomaly: "red"}

// ScatterFigure plots amount over time with one trace per status.
func ScatterFigure(rows []Audited) chart.Figure {
	fig := chart.Figure{Layout: chart.Layout{
		Title:  "Monitoramento em Tempo Real (Pontos Vermelhos = Suspeitos)",
		Height: 500,
		XAxis:  &chart.Axis{Title: "Data"},
		YAxis:  &chart.Axis{Title: "Valor"},
	}}
	for _, status := range []string{StatusNormal, StatusAnomaly} {
		tr := chart.Trace{Type: "scatter", Mode: "markers", Name: status, Marker: &chart.Marker{Color: statusColors[status]}}
		var xs []string
		var ys []float64
		for _, r := range rows {
			if r.Status != status {
				continue
			}
			xs = append(xs, r.Date.Format(time.DateTime))
			ys = append(ys, r.Amount)
			tr.HoverText = append(tr.HoverText, fmt.Sprintf("%s<br>%s / %s", r.ID, r.Department, r.Category))
		}
		tr.X, tr.Y = xs, ys
		fig.Data = append(fig.Data, tr)
	}
	return fig
}

// OffenderFigure is a horizontal bar chart of flagged rows per department.
func OffenderFigure(counts []analysis.CategoryCount) chart.Figure {
	var names []string
	var n []int
	for _, c := range counts {
		names = append(names, c.Value)
		n = append(n, c.Count)
	}
	fig := chart.Figure{
		Data:   []chart.Trace{{Type: "bar", Orientation: "h", X: n, Y: names}},
		Layout: chart.Layout{Title: "Contagem de Anomalias"},
	}
	fig.Layout.HideLegend()
	return fig
}

// SuspiciousHeader labels the columns of SuspiciousRows.
var SuspiciousHeader = []string{"ID_Transacao", "Data", "Departamento", "Categoria", "Valor"}

// SuspiciousRows formats flagged rows for a table.
func SuspiciousRows(rows []Audited) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ID, r.Date.Format(time.DateTime), r.Department, r.Category, format.BRL(r.Amount)})
	}
	return out
}

// Markdown renders the view as a plain report.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sensibilidade do Auditor: %s\n\n", format.Decimal(v.Contamination, 2)))
	b.WriteString(fmt.Sprintf("- Transações Analisadas: %d\n", v.Analysed))
	b.WriteString(fmt.Sprintf("- Anomalias Encontradas: %d\n", v.Found))
	b.WriteString(fmt.Sprintf("- Valor Total em Risco: %s\n\n", v.AtRiskText()))
	b.WriteString("## 📋 Relatório de Transações Suspeitas\n\n")
	b.WriteString(analysis.MarkdownTable(SuspiciousHeader, SuspiciousRows(v.Suspicious)))
	b.WriteString("\n## 📊 Ofensores por Depto\n\n")
	for _, o := range v.Offenders {
		b.WriteString(fmt.Sprintf("- %s: %d\n", o.Value, o.Count))
	}
	return b.String()
}
