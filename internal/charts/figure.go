package charts

import "encoding/json"

// Figure is a Plotly figure specification: a set of traces plus a layout.
// It marshals to the exact JSON shape Plotly.newPlot consumes, so the Go side
// never needs a chart renderer of its own. Marshaling is deterministic
// (struct field order), which keeps repeated runs byte-identical.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// JSON serializes the figure for embedding into the report page.
func (f Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Trace is a single scatter series. Dates travel as ISO strings, which
// Plotly parses as a date axis.
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name,omitempty"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Line          *Line     `json:"line,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	Text          []string  `json:"text,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
	XAxis         string    `json:"xaxis,omitempty"`
	YAxis         string    `json:"yaxis,omitempty"`
}

// Line styles a line trace.
type Line struct {
	Color string `json:"color,omitempty"`
}

// Marker styles a marker trace.
type Marker struct {
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// Layout holds figure-level presentation: title, sizing, the two axis pairs
// used by the panel layouts, and the panel-title annotations.
type Layout struct {
	Title        *Title       `json:"title,omitempty"`
	Height       int          `json:"height,omitempty"`
	Margin       *Margin      `json:"margin,omitempty"`
	Legend       *Legend      `json:"legend,omitempty"`
	PaperBGColor string       `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string       `json:"plot_bgcolor,omitempty"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	XAxis2       *Axis        `json:"xaxis2,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	YAxis2       *Axis        `json:"yaxis2,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

// Title wraps a title text, the shape Plotly expects for figure, axis, and
// legend titles alike.
type Title struct {
	Text string `json:"text"`
}

// Margin sets the figure margins in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Legend configures the figure legend.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Axis configures one axis of a panel. Domain and Anchor place the axis
// within the subplot grid; Matches ties a right panel's value axis to the
// left one so both panels share a scale.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	Matches        string    `json:"matches,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	DTick          string    `json:"dtick,omitempty"`
	TickFormat     string    `json:"tickformat,omitempty"`
	TickSuffix     string    `json:"ticksuffix,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	GridColor      string    `json:"gridcolor,omitempty"`
}

// Annotation is a paper-positioned text label, used for panel titles.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

// Font sets annotation text size.
type Font struct {
	Size int `json:"size,omitempty"`
}
