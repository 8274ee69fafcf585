package web

import (
	"embed"
	"html/template"

	"github.com/Zolinad/dsportfolio/internal/audit"
	"github.com/Zolinad/dsportfolio/internal/chart"
	"github.com/Zolinad/dsportfolio/internal/geo"
	"github.com/Zolinad/dsportfolio/internal/kpi"
	"github.com/Zolinad/dsportfolio/internal/logistics"
)

//go:embed views/*.html
var viewsFS embed.FS

type plotData struct {
	ID   string
	Spec template.JS
}

type tableData struct {
	Header []string
	Rows   [][]string
}

// parseTemplates loads the embedded views. A figure that fails to encode is
// rendered as an empty plot.
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"plot": func(id string, fig chart.Figure) plotData {
			js, err := fig.JSON()
			if err != nil {
				js = `{"data":[]}`
			}
			return plotData{ID: id, Spec: template.JS(js)}
		},
		"table": func(header []string, rows [][]string) tableData {
			return tableData{Header: header, Rows: rows}
		},
		"hoodHeader":       func() []string { return geo.NeighbourhoodHeader },
		"hoodRows":         geo.NeighbourhoodRows,
		"storeHeader":      func() []string { return geo.StoreHeader },
		"storeRows":        geo.StoreRows,
		"suspiciousHeader": func() []string { return audit.SuspiciousHeader },
		"suspiciousRows":   audit.SuspiciousRows,
		"latestHeader":     func() []string { return kpi.LatestHeader },
		"latestRows":       kpi.LatestRowsTable,
		"describeHeader":   func() []string { return logistics.DescribeHeader },
		"describeRows":     logistics.DescribeRows,
		"slowestHeader":    func() []string { return logistics.SlowestHeader },
		"slowestRows":      logistics.SlowestRows,
	}
	return template.New("").Funcs(funcMap).ParseFS(viewsFS, "views/*.html")
}
