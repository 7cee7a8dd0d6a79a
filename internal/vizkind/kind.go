// Package vizkind maps free-text visualization labels onto a closed set of
// canonical chart kinds.
package vizkind

// Kind is a canonical visualization kind. The zero value, None, means no
// visualization could be resolved.
type Kind string

const (
	None               Kind = ""
	Scatter            Kind = "scatter"
	ScatterColor       Kind = "scatter_color"
	ScatterMatrix      Kind = "scatter_matrix"
	Scatter3D          Kind = "scatter3d"
	Bar                Kind = "bar"
	BarGrouped         Kind = "bar_grouped"
	BarStacked         Kind = "bar_stacked"
	Line               Kind = "line"
	LineMulti          Kind = "line_multi"
	Area               Kind = "area"
	AreaStacked        Kind = "area_stacked"
	Box                Kind = "box"
	BoxStrip           Kind = "box_strip"
	Violin             Kind = "violin"
	Histogram          Kind = "histogram"
	Pie                Kind = "pie"
	Treemap            Kind = "treemap"
	Sunburst           Kind = "sunburst"
	Heatmap            Kind = "heatmap"
	DensityHeatmap     Kind = "density_heatmap"
	CalendarHeatmap    Kind = "calendar_heatmap"
	Choropleth         Kind = "choropleth"
	ParallelCategories Kind = "parallel_categories"
	Candlestick        Kind = "candlestick"
	Table              Kind = "table"
	Timeline           Kind = "timeline"
	ScatterAnimated    Kind = "scatter_animated"
	ScatterFaceted     Kind = "scatter_faceted"
	Triple             Kind = "triple"
)

var all = []Kind{
	Scatter, ScatterColor, ScatterMatrix, Scatter3D,
	Bar, BarGrouped, BarStacked,
	Line, LineMulti, Area, AreaStacked,
	Box, BoxStrip, Violin, Histogram,
	Pie, Treemap, Sunburst,
	Heatmap, DensityHeatmap, CalendarHeatmap,
	Choropleth, ParallelCategories, Candlestick, Table, Timeline,
	ScatterAnimated, ScatterFaceted, Triple,
}

var known = func() map[Kind]bool {
	m := make(map[Kind]bool, len(all))
	for _, k := range all {
		m[k] = true
	}
	return m
}()

// All returns every canonical kind, None excluded.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all)
	return out
}

// Valid reports whether k is a canonical kind other than None.
func (k Kind) Valid() bool { return known[k] }

// NeedsThree reports whether the kind encodes a third column.
func (k Kind) NeedsThree() bool {
	return k == Scatter3D || k == ScatterColor
}

func (k Kind) String() string {
	if k == None {
		return "none"
	}
	return string(k)
}
