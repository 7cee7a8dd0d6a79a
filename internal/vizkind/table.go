package vizkind

import "strings"

// labels is the static table of known label spellings. Lookup is
// case-insensitive; add new spellings here rather than in the inference rules.
var labels = map[string]Kind{
	"Scatter Plot Matrix (Splom)":           ScatterMatrix,
	"Scatter Plot Matrix":                   ScatterMatrix,
	"Splom":                                 ScatterMatrix,
	"Scatter Matrix":                        ScatterMatrix,
	"Scatter Plot (px.scatter)":             Scatter,
	"Scatter Plot":                          Scatter,
	"Scatter Plot with Colors (px.scatter)": ScatterColor,
	"Scatter Plot with Color (px.scatter)":  ScatterColor,

	"Bar Chart (px.bar)":         Bar,
	"Bar Chart":                  Bar,
	"Grouped Bar Chart (px.bar)": BarGrouped,
	"Grouped Bar Chart":          BarGrouped,
	"Stacked Bar Chart (px.bar)": BarStacked,
	"Stacked Bar Chart":          BarStacked,

	"Pie Chart (px.pie)":           Pie,
	"Pie Chart":                    Pie,
	"Sunburst Chart (px.sunburst)": Sunburst,
	"Sunburst (px.sunburst)":       Sunburst,
	"Sunburst Chart":               Sunburst,
	"Treemap (px.treemap)":         Treemap,
	"Treemap":                      Treemap,

	"Line Chart (px.line)":         Line,
	"Line Chart":                   Line,
	"Line Plot (px.line)":          Line,
	"Multi-line Chart (px.line)":   LineMulti,
	"Area Chart (px.area)":         Area,
	"Area Chart":                   Area,
	"Stacked Area Chart (px.area)": AreaStacked,

	"Box Plot (px.box)":               Box,
	"Box Plot":                        Box,
	"Strip Plot (px.box with points)": BoxStrip,
	"Violin Plot (px.violin)":         Violin,
	"Violin Plot":                     Violin,
	"Histogram (px.histogram)":        Histogram,
	"Histogram":                       Histogram,

	"Heatmap (px.imshow)":                  Heatmap,
	"Heatmap (px.heatmap)":                 Heatmap,
	"Heatmap":                              Heatmap,
	"Density Heatmap (px.density_heatmap)": DensityHeatmap,
	"Calendar Heatmap (px.heatmap)":        CalendarHeatmap,
	"Calendar Heatmap":                     CalendarHeatmap,

	"Choropleth Map (px.choropleth)": Choropleth,
	"Choropleth Map":                 Choropleth,

	"Parallel Categories (px.parallel_categories)": ParallelCategories,
	"Parallel Categories":                          ParallelCategories,
	"Candlestick Chart (px.candlestick)":           Candlestick,
	"Candlestick Chart":                            Candlestick,
	"Table (go.Table)":                             Table,
	"Timeline (px.scatter)":                        Timeline,
	"Timeline":                                     Timeline,

	"3D Scatter Plot (px.scatter3d)":            Scatter3D,
	"3D Scatter Plot":                           Scatter3D,
	"Animated Scatter (px.scatter with frames)": ScatterAnimated,
	"Animated Scatter":                          ScatterAnimated,
	"Faceted Scatter Plots (px.subplots)":       ScatterFaceted,

	"Triple Visualization": Triple,
}

// functions maps the function token of a "(library.function)" suffix to a kind.
var functions = map[string]Kind{
	"scatter":             Scatter,
	"scatter3d":           Scatter3D,
	"scatter_3d":          Scatter3D,
	"scatter_matrix":      ScatterMatrix,
	"splom":               ScatterMatrix,
	"subplots":            ScatterFaceted,
	"bar":                 Bar,
	"line":                Line,
	"area":                Area,
	"box":                 Box,
	"strip":               BoxStrip,
	"violin":              Violin,
	"histogram":           Histogram,
	"pie":                 Pie,
	"treemap":             Treemap,
	"icicle":              Treemap,
	"sunburst":            Sunburst,
	"imshow":              Heatmap,
	"heatmap":             Heatmap,
	"density_heatmap":     DensityHeatmap,
	"choropleth":          Choropleth,
	"parallel_categories": ParallelCategories,
	"candlestick":         Candlestick,
	"table":               Table,
	"timeline":            Timeline,
}

var lowerLabels = func() map[string]Kind {
	m := make(map[string]Kind, len(labels))
	for k, v := range labels {
		m[strings.ToLower(k)] = v
	}
	return m
}()

// Lookup consults the static label table only.
func Lookup(label string) (Kind, bool) {
	k, ok := lowerLabels[strings.ToLower(strings.TrimSpace(label))]
	return k, ok
}

// Labels returns a copy of the static label table.
func Labels() map[string]Kind {
	out := make(map[string]Kind, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
