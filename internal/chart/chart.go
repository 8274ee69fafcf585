// Package chart builds Plotly figure specifications on the server. The browser
// only hands the JSON to Plotly.newPlot.
package chart

import (
	"encoding/json"
)

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Only the attributes the dashboards use are modelled.
type Trace struct {
	Type        string    `json:"type"`
	Mode        string    `json:"mode,omitempty"`
	Name        string    `json:"name,omitempty"`
	X           any       `json:"x,omitempty"`
	Y           any       `json:"y,omitempty"`
	Lat         []float64 `json:"lat,omitempty"`
	Lon         []float64 `json:"lon,omitempty"`
	Text        []string  `json:"text,omitempty"`
	HoverText   []string  `json:"hovertext,omitempty"`
	TextPos     string    `json:"textposition,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Width       []float64 `json:"width,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`

	// Precomputed box statistics (Plotly box trace with q1/median/q3 arrays).
	Q1         []float64 `json:"q1,omitempty"`
	Median     []float64 `json:"median,omitempty"`
	Q3         []float64 `json:"q3,omitempty"`
	LowerFence []float64 `json:"lowerfence,omitempty"`
	UpperFence []float64 `json:"upperfence,omitempty"`
	Mean       []float64 `json:"mean,omitempty"`
}

// Marker styles trace points or bars.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Size       any       `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
	ColorScale any       `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// ColorBar titles a continuous colour scale.
type ColorBar struct {
	Title string `json:"title,omitempty"`
}

// Layout is the subset of Plotly layout attributes used here.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	Height      int          `json:"height,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Map         *MapLayout   `json:"map,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	BarGap      float64      `json:"bargap,omitempty"`
}

// Axis configures a cartesian axis.
type Axis struct {
	Title string    `json:"title,omitempty"`
	Range []float64 `json:"range,omitempty"`
	Type  string    `json:"type,omitempty"`
}

// MapLayout configures a tile map (Plotly scattermap traces).
type MapLayout struct {
	Style  string  `json:"style"`
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// LatLon is a map coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Margin sets plot margins in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Shape is a layout line used for reference markers.
type Shape struct {
	Type string    `json:"type"`
	XRef string    `json:"xref"`
	YRef string    `json:"yref"`
	X0   float64   `json:"x0"`
	X1   float64   `json:"x1"`
	Y0   float64   `json:"y0"`
	Y1   float64   `json:"y1"`
	Line ShapeLine `json:"line"`
}

// ShapeLine styles a Shape.
type ShapeLine struct {
	Color string `json:"color,omitempty"`
	Dash  string `json:"dash,omitempty"`
	Width int    `json:"width,omitempty"`
}

// Annotation is a text label anchored in data or paper coordinates.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
}

// VLine adds a vertical reference line spanning the plot height at x, labelled at the top.
func (l *Layout) VLine(x float64, color, dash, label, anchor string) {
	l.Shapes = append(l.Shapes, Shape{
		Type: "line", XRef: "x", YRef: "paper",
		X0: x, X1: x, Y0: 0, Y1: 1,
		Line: ShapeLine{Color: color, Dash: dash, Width: 2},
	})
	if label != "" {
		l.Annotations = append(l.Annotations, Annotation{
			Text: label, X: x, Y: 1, XRef: "x", YRef: "paper", XAnchor: anchor, YAnchor: "bottom",
		})
	}
}

// HLine adds a horizontal reference line spanning the plot width at y, labelled at the bottom right.
func (l *Layout) HLine(y float64, color, dash, label string) {
	l.Shapes = append(l.Shapes, Shape{
		Type: "line", XRef: "paper", YRef: "y",
		X0: 0, X1: 1, Y0: y, Y1: y,
		Line: ShapeLine{Color: color, Dash: dash, Width: 1},
	})
	if label != "" {
		l.Annotations = append(l.Annotations, Annotation{
			Text: label, X: 1, Y: y, XRef: "paper", YRef: "y", XAnchor: "right", YAnchor: "top",
		})
	}
}

// HideLegend turns the legend off.
func (l *Layout) HideLegend() {
	off := false
	l.ShowLegend = &off
}

// JSON encodes the figure for Plotly.newPlot.
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
