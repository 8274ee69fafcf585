package geo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Zolinad/dsportfolio/internal/analysis"
	"github.com/Zolinad/dsportfolio/internal/chart"
	"github.com/Zolinad/dsportfolio/internal/format"
)

// ViewMode selects between the analytic map and the raw tables.
type ViewMode string

const (
	ViewMap  ViewMode = "map"
	ViewData ViewMode = "data"
)

// Label is the navigation caption for the mode.
func (m ViewMode) Label() string {
	if m == ViewData {
		return "Base de Dados"
	}
	return "Mapa Analítico"
}

// ParseViewMode defaults to the map for anything but "data".
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == ViewData {
		return ViewData
	}
	return ViewMap
}

// Query is the user selection for one render.
type Query struct {
	Mode  ViewMode
	Zones []string
}

// QueryFromValues reads "view" and repeated "zone" parameters. Unknown zones are ignored;
// no valid zone selects all of them.
func QueryFromValues(q url.Values) Query {
	known := map[string]bool{}
	for _, z := range ZoneNames() {
		known[z] = true
	}
	var zones []string
	for _, z := range analysis.Unique(q["zone"]) {
		if known[z] {
			zones = append(zones, z)
		}
	}
	if len(zones) == 0 {
		zones = ZoneNames()
	}
	return Query{Mode: ParseViewMode(q.Get("view")), Zones: zones}
}

// Dashboard holds the generated market for the process lifetime.
type Dashboard struct {
	Neighbourhoods []Neighbourhood
	Stores         []Store
}

// NewDashboard generates the market once.
func NewDashboard(p Params) *Dashboard {
	hoods, stores := Generate(p)
	return &Dashboard{Neighbourhoods: hoods, Stores: stores}
}

// View is what the geomarketing page displays.
type View struct {
	Mode     ViewMode
	Zones    []ZoneOption
	Market   Market
	Visible  []Neighbourhood
	Stores   []Store
	MapChart chart.Figure
}

// ZoneOption is a zone checkbox.
type ZoneOption struct {
	Name     string
	Selected bool
}

// PopulationText formats the visible population with dot separators.
func (m Market) PopulationText() string { return format.Int(m.Population) }

// IncomeText formats the mean income as currency.
func (m Market) IncomeText() string { return format.BRL(m.MeanIncome) }

// Render filters by zone and builds the metrics and map.
func (d *Dashboard) Render(q Query) View {
	visible := FilterZones(d.Neighbourhoods, q.Zones)
	sel := map[string]bool{}
	for _, z := range q.Zones {
		sel[z] = true
	}
	v := View{
		Mode:    q.Mode,
		Market:  Summarise(visible, d.Stores),
		Visible: visible,
		Stores:  d.Stores,
	}
	for _, name := range ZoneNames() {
		v.Zones = append(v.Zones, ZoneOption{Name: name, Selected: sel[name]})
	}
	if q.Mode == ViewMap {
		v.MapChart = MapFigure(visible, d.Stores)
	}
	return v
}

var incomeScale = [][]any{
	{0, "#ffeba4"}, {0.33, "#ff8c00"}, {0.66, "#d30b0b"}, {1, "#4a0404"},
}

// MapFigure plots neighbourhoods sized by population and coloured by income, with
// stores as blue markers on top.
func MapFigure(hoods []Neighbourhood, stores []Store) chart.Figure {
	const maxMarker = 25.0
	demand := chart.Trace{Type: "scattermap", Mode: "markers", Name: "Bairros"}
	var pops, incomes []float64
	maxPop := 1.0
	for _, h := range hoods {
		demand.Lat = append(demand.Lat, h.Lat)
		demand.Lon = append(demand.Lon, h.Lon)
		demand.HoverText = append(demand.HoverText,
			fmt.Sprintf("%s<br>Renda Média: %s<br>População: %s", h.Zone, format.BRL(float64(h.Income)), format.Int(h.Population)))
		pops = append(pops, float64(h.Population))
		incomes = append(incomes, float64(h.Income))
		if float64(h.Population) > maxPop {
			maxPop = float64(h.Population)
		}
	}
	demand.Marker = &chart.Marker{
		Size:       pops,
		SizeMode:   "area",
		SizeRef:    2 * maxPop / (maxMarker * maxMarker),
		Color:      incomes,
		ColorScale: incomeScale,
		ShowScale:  true,
		ColorBar:   &chart.ColorBar{Title: "Renda Média"},
	}

	shops := chart.Trace{
		Type:   "scattermap",
		Mode:   "markers",
		Name:   "Lojas Físicas",
		Marker: &chart.Marker{Size: 14, Color: "blue", Symbol: "circle"},
	}
	for _, s := range stores {
		shops.Lat = append(shops.Lat, s.Lat)
		shops.Lon = append(shops.Lon, s.Lon)
		shops.Text = append(shops.Text, s.ID)
	}

	return chart.Figure{
		Data: []chart.Trace{demand, shops},
		Layout: chart.Layout{
			Title:  "Distribuição de Potencial de Consumo (RMB)",
			Height: 600,
			Map:    &chart.MapLayout{Style: "carto-positron", Center: chart.LatLon{Lat: -1.38, Lon: -48.43}, Zoom: 10.5},
			Margin: &chart.Margin{R: 0, T: 30, L: 0, B: 0},
		},
	}
}

// NeighbourhoodRows formats hoods for a table.
func NeighbourhoodRows(hoods []Neighbourhood) [][]string {
	rows := make([][]string, 0, len(hoods))
	for _, h := range hoods {
		rows = append(rows, []string{
			h.ID, h.Zone, format.Decimal(h.Lat, 4), format.Decimal(h.Lon, 4),
			format.Int(h.Population), format.BRL(float64(h.Income)),
		})
	}
	return rows
}

// StoreRows formats stores for a table.
func StoreRows(stores []Store) [][]string {
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []string{s.ID, format.Decimal(s.Lat, 4), format.Decimal(s.Lon, 4), format.BRL(float64(s.Revenue))})
	}
	return rows
}

var (
	NeighbourhoodHeader = []string{"Bairro", "Zona", "Latitude", "Longitude", "População", "Renda Média"}
	StoreHeader         = []string{"Loja", "Latitude", "Longitude", "Faturamento"}
)

// Markdown renders the view as a plain report.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", v.Mode.Label()))
	var zones []string
	for _, z := range v.Zones {
		if z.Selected {
			zones = append(zones, z.Name)
		}
	}
	b.WriteString(fmt.Sprintf("Zonas: %s\n\n", strings.Join(zones, ", ")))
	if v.Mode == ViewData {
		b.WriteString("### 📍 Clusters Demográficos\n\n")
		b.WriteString(analysis.MarkdownTable(NeighbourhoodHeader, NeighbourhoodRows(v.Visible)))
		b.WriteString("\n### 🏢 Unidades Operacionais\n\n")
		b.WriteString(analysis.MarkdownTable(StoreHeader, StoreRows(v.Stores)))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("- População na Área: %s\n", v.Market.PopulationText()))
	b.WriteString(fmt.Sprintf("- Renda Média: %s\n", v.Market.IncomeText()))
	b.WriteString(fmt.Sprintf("- Lojas na Região: %d\n", v.Market.Stores))
	return b.String()
}
