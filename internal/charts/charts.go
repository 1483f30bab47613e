// Package charts builds the four Plotly figure specifications of the report:
// normalized price, drawdown, rolling volatility, and the reference index
// annotated with aligned events.
//
// The first three figures use two side-by-side panels (one per period)
// sharing the value-axis scale, so magnitudes stay visually comparable across
// the two eras. The annotated figure stacks two independent panels instead,
// since the raw index levels of the two eras differ by an order of magnitude.
package charts

import (
	"fmt"
	"time"

	"github.com/alvaro-gj/bubblereport/internal/models"
)

// Trace colors per tracked index, matching the original study's palette.
var indexColors = map[string]string{
	"NASDAQ": "#1f77b4",
	"SP500":  "#ff7f0e",
}

// fallbackPalette colors indices beyond the two tracked by the original.
var fallbackPalette = []string{"#2ca02c", "#9467bd", "#8c564b", "#e377c2"}

// Display names for known index codes, used in Spanish chart titles.
var indexDisplayNames = map[string]string{
	"NASDAQ": "Nasdaq",
	"SP500":  "S&P 500",
}

// Marker styles for aligned events, per period.
var eventMarkers = map[models.Period]Marker{
	models.PeriodDotcom: {Size: 9, Color: "#d62728", Symbol: "circle"},
	models.PeriodIA:     {Size: 9, Color: "#ff7f0e", Symbol: "diamond"},
}

// periods fixes the panel order: dot-com left (or top), IA right (or bottom).
var periods = [2]models.Period{models.PeriodDotcom, models.PeriodIA}

const (
	gridColor = "#e5ecf6"
	dateTitle = "Fecha"
)

// Options controls figure sizing and the shared drawdown axis range.
type Options struct {
	PanelHeight     int
	AnnotatedHeight int
	DrawdownMin     float64 // percent, e.g. -100
	DrawdownMax     float64 // percent, e.g. +10 of headroom
}

// DefaultOptions returns the sizing used by the original study.
func DefaultOptions() Options {
	return Options{
		PanelHeight:     500,
		AnnotatedHeight: 700,
		DrawdownMin:     -100,
		DrawdownMax:     10,
	}
}

// Builder constructs the report figures for a fixed set of tracked indices.
type Builder struct {
	indices []string
	opts    Options
}

// NewBuilder creates a Builder. The indices order fixes trace order within
// every panel, which keeps figure JSON deterministic across runs.
func NewBuilder(indices []string, opts Options) *Builder {
	return &Builder{indices: indices, opts: opts}
}

// NormalizedPrice builds the rebased-to-100 comparison figure: one line per
// tracked index per period, shared value axis across both panels.
func (b *Builder) NormalizedPrice(obs []models.Observation) Figure {
	fig := Figure{
		Layout: b.sideBySideLayout("Evolución normalizada de Nasdaq y S&P 500 en las dos épocas", "Índice"),
	}
	b.addPanelLines(&fig, obs, func(o models.Observation) float64 { return o.CloseIndexed })
	return fig
}

// Drawdown builds the drawdown-percentage figure. Both panels get the same
// fixed y range so the severity of the two corrections can be compared
// directly.
func (b *Builder) Drawdown(obs []models.Observation) Figure {
	fig := Figure{
		Layout: b.sideBySideLayout("Profundidad de las caídas (drawdown) en cada burbuja", "Índice"),
	}
	ddRange := []float64{b.opts.DrawdownMin, b.opts.DrawdownMax}
	for _, axis := range []*Axis{fig.Layout.YAxis, fig.Layout.YAxis2} {
		axis.Title = &Title{Text: "Drawdown (%)"}
		axis.TickSuffix = " %"
		axis.Range = ddRange
	}
	b.addPanelLines(&fig, obs, func(o models.Observation) float64 { return o.DrawdownPct })
	return fig
}

// RollingVolatility builds the 30-day rolling volatility figure. The caller
// passes only rows where the metric is defined (derive.WithRollingVol).
func (b *Builder) RollingVolatility(volObs []models.Observation) Figure {
	fig := Figure{
		Layout: b.sideBySideLayout("Volatilidad rolling a 30 días en las dos épocas", "Índice"),
	}
	fig.Layout.YAxis.Title = &Title{Text: "Volatilidad rolling 30 días"}
	b.addPanelLines(&fig, volObs, func(o models.Observation) float64 { return o.RollingVol30d })
	return fig
}

// AnnotatedReference builds the two stacked panels showing the reference
// index close with one marker per aligned event. The panels do not share an
// axis: absolute index levels differ too much between the eras. A period
// with no aligned events simply gets no marker trace.
func (b *Builder) AnnotatedReference(reference []models.Observation, events []models.AlignedEvent, referenceIndex string) Figure {
	display := displayName(referenceIndex)
	fig := Figure{Layout: b.stackedLayout(display)}

	lineColors := map[models.Period]string{
		models.PeriodDotcom: "#1f77b4",
		models.PeriodIA:     "#2ca02c",
	}
	seriesNames := map[models.Period]string{
		models.PeriodDotcom: fmt.Sprintf("%s (dotcom)", display),
		models.PeriodIA:     fmt.Sprintf("%s (IA)", display),
	}
	eventNames := map[models.Period]string{
		models.PeriodDotcom: "Eventos dotcom",
		models.PeriodIA:     "Eventos IA",
	}
	hover := fmt.Sprintf("<b>%%{text}</b><br>Fecha: %%{x|%%Y-%%m-%%d}<br>Cierre %s: %%{y:.2f}<extra></extra>", display)

	for i, period := range periods {
		xAxis, yAxis := axisRefs(i)

		var x []string
		var y []float64
		for _, o := range reference {
			if o.Period != period {
				continue
			}
			x = append(x, isoDate(o.Date))
			y = append(y, o.Close)
		}
		fig.Data = append(fig.Data, Trace{
			Type:  "scatter",
			Mode:  "lines",
			Name:  seriesNames[period],
			X:     x,
			Y:     y,
			Line:  &Line{Color: lineColors[period]},
			XAxis: xAxis,
			YAxis: yAxis,
		})

		var ex []string
		var ey []float64
		var labels []string
		for _, e := range events {
			if e.Period != period {
				continue
			}
			ex = append(ex, isoDate(e.Date))
			ey = append(ey, e.Close)
			labels = append(labels, e.Name)
		}
		if len(ex) == 0 {
			continue
		}
		marker := eventMarkers[period]
		fig.Data = append(fig.Data, Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          eventNames[period],
			X:             ex,
			Y:             ey,
			Marker:        &marker,
			Text:          labels,
			HoverTemplate: hover,
			XAxis:         xAxis,
			YAxis:         yAxis,
		})
	}

	return fig
}

// addPanelLines adds one line trace per tracked index to each period panel,
// reading the y value through sel. Legend entries come from the left panel
// only so each index appears once.
func (b *Builder) addPanelLines(fig *Figure, obs []models.Observation, sel func(models.Observation) float64) {
	for i, period := range periods {
		xAxis, yAxis := axisRefs(i)
		showLegend := i == 0

		for ord, index := range b.indices {
			var x []string
			var y []float64
			for _, o := range obs {
				if o.Period != period || o.Index != index {
					continue
				}
				x = append(x, isoDate(o.Date))
				y = append(y, sel(o))
			}
			show := showLegend
			fig.Data = append(fig.Data, Trace{
				Type:       "scatter",
				Mode:       "lines",
				Name:       index,
				X:          x,
				Y:          y,
				Line:       &Line{Color: colorFor(index, ord)},
				ShowLegend: &show,
				XAxis:      xAxis,
				YAxis:      yAxis,
			})
		}
	}
}

// sideBySideLayout is the shared 1×2 panel layout of figures 1–3: one panel
// per period, right value axis tied to the left, yearly date ticks.
func (b *Builder) sideBySideLayout(title, legendTitle string) Layout {
	hidden := false
	return Layout{
		Title:        &Title{Text: title},
		Height:       b.opts.PanelHeight,
		Margin:       &Margin{L: 60, R: 20, T: 80, B: 40},
		Legend:       &Legend{Title: &Title{Text: legendTitle}},
		PaperBGColor: "#ffffff",
		PlotBGColor:  "#ffffff",
		XAxis: &Axis{
			Title:      &Title{Text: dateTitle},
			Domain:     []float64{0, 0.45},
			Anchor:     "y",
			DTick:      "M12",
			TickFormat: "%Y",
			GridColor:  gridColor,
		},
		XAxis2: &Axis{
			Title:      &Title{Text: dateTitle},
			Domain:     []float64{0.55, 1},
			Anchor:     "y2",
			DTick:      "M12",
			TickFormat: "%Y",
			GridColor:  gridColor,
		},
		YAxis: &Axis{
			Domain:    []float64{0, 1},
			Anchor:    "x",
			GridColor: gridColor,
		},
		YAxis2: &Axis{
			Domain:         []float64{0, 1},
			Anchor:         "x2",
			Matches:        "y",
			ShowTickLabels: &hidden,
			GridColor:      gridColor,
		},
		Annotations: []Annotation{
			panelTitle(models.PeriodDotcom.Label(), 0.225),
			panelTitle(models.PeriodIA.Label(), 0.775),
		},
	}
}

// stackedLayout is the 2×1 layout of the annotated figure: independent axes,
// dot-com on top.
func (b *Builder) stackedLayout(display string) Layout {
	closeTitle := &Title{Text: fmt.Sprintf("Cierre %s", display)}
	return Layout{
		Height:       b.opts.AnnotatedHeight,
		Margin:       &Margin{L: 60, R: 20, T: 80, B: 40},
		Legend:       &Legend{Title: &Title{Text: "Serie"}},
		PaperBGColor: "#ffffff",
		PlotBGColor:  "#ffffff",
		XAxis: &Axis{
			Title:     &Title{Text: dateTitle},
			Domain:    []float64{0, 1},
			Anchor:    "y",
			GridColor: gridColor,
		},
		XAxis2: &Axis{
			Title:     &Title{Text: dateTitle},
			Domain:    []float64{0, 1},
			Anchor:    "y2",
			GridColor: gridColor,
		},
		YAxis: &Axis{
			Title:     closeTitle,
			Domain:    []float64{0.575, 1},
			Anchor:    "x",
			GridColor: gridColor,
		},
		YAxis2: &Axis{
			Title:     closeTitle,
			Domain:    []float64{0, 0.425},
			Anchor:    "x2",
			GridColor: gridColor,
		},
		Annotations: []Annotation{
			stackedTitle(fmt.Sprintf("%s en la burbuja puntocom (1997–2002)", display), 1.0),
			stackedTitle(fmt.Sprintf("%s en la narrativa de IA (2020–2025)", display), 0.425),
		},
	}
}

// axisRefs returns the trace axis references for panel i (0 = first panel).
func axisRefs(i int) (xAxis, yAxis string) {
	if i == 0 {
		return "x", "y"
	}
	return "x2", "y2"
}

func panelTitle(text string, x float64) Annotation {
	return Annotation{
		Text:      text,
		X:         x,
		Y:         1.0,
		XRef:      "paper",
		YRef:      "paper",
		XAnchor:   "center",
		YAnchor:   "bottom",
		ShowArrow: false,
		Font:      &Font{Size: 14},
	}
}

func stackedTitle(text string, y float64) Annotation {
	return Annotation{
		Text:      text,
		X:         0.5,
		Y:         y,
		XRef:      "paper",
		YRef:      "paper",
		XAnchor:   "center",
		YAnchor:   "bottom",
		ShowArrow: false,
		Font:      &Font{Size: 14},
	}
}

// colorFor picks the study palette color for known indices and a stable
// fallback for any others.
func colorFor(index string, ordinal int) string {
	if c, ok := indexColors[index]; ok {
		return c
	}
	return fallbackPalette[ordinal%len(fallbackPalette)]
}

func displayName(index string) string {
	if name, ok := indexDisplayNames[index]; ok {
		return name
	}
	return index
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}
