package vizkind

import "strings"

// rule is one step of keyword inference. refine picks the sub-kind once the
// rule's keywords matched.
type rule struct {
	any    []string
	refine []refinement
	kind   Kind
}

type refinement struct {
	any  []string
	kind Kind
}

// inference is evaluated top to bottom; the first rule whose keywords occur in
// the lowercased label wins.
var inference = []rule{
	{any: []string{"scatter"}, kind: Scatter, refine: []refinement{
		{[]string{"matrix", "splom"}, ScatterMatrix},
		{[]string{"3d"}, Scatter3D},
		{[]string{"animate", "frame"}, ScatterAnimated},
		{[]string{"facet"}, ScatterFaceted},
		{[]string{"color"}, ScatterColor},
	}},
	{any: []string{"bar"}, kind: Bar, refine: []refinement{
		{[]string{"grouped"}, BarGrouped},
		{[]string{"stacked"}, BarStacked},
	}},
	{any: []string{"line"}, kind: Line, refine: []refinement{
		{[]string{"multi"}, LineMulti},
	}},
	{any: []string{"area"}, kind: Area, refine: []refinement{
		{[]string{"stacked"}, AreaStacked},
	}},
	{any: []string{"heatmap"}, kind: Heatmap, refine: []refinement{
		{[]string{"calendar"}, CalendarHeatmap},
		{[]string{"density"}, DensityHeatmap},
	}},
	{any: []string{"pie"}, kind: Pie},
	{any: []string{"box"}, kind: Box, refine: []refinement{
		{[]string{"strip", "point"}, BoxStrip},
	}},
	{any: []string{"histogram", "hist"}, kind: Histogram},
	{any: []string{"violin"}, kind: Violin},
	{any: []string{"tree", "treemap"}, kind: Treemap},
	{any: []string{"sunburst"}, kind: Sunburst},
	{any: []string{"table"}, kind: Table},
	{any: []string{"parallel", "categor"}, kind: ParallelCategories},
	{any: []string{"choropleth", "map"}, kind: Choropleth},
	{any: []string{"candlestick"}, kind: Candlestick},
	{any: []string{"timeline"}, kind: Timeline},
	{any: []string{"triple"}, kind: Triple},
}

// Normalize maps a visualization label to a canonical kind. It tries the
// static table, then the function token of a "(library.function)" suffix, then
// keyword inference. It returns None when nothing matches.
func Normalize(label string) Kind {
	if k, ok := Lookup(label); ok {
		return k
	}
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return None
	}
	if k, ok := lookupFunction(lower); ok {
		return k
	}
	return infer(lower)
}

// lookupFunction resolves the token between the first pair of parentheses,
// with any "library." prefix removed.
func lookupFunction(lower string) (Kind, bool) {
	open := strings.Index(lower, "(")
	if open < 0 {
		return None, false
	}
	end := strings.Index(lower[open:], ")")
	if end < 0 {
		return None, false
	}
	tok := strings.TrimSpace(lower[open+1 : open+end])
	if i := strings.LastIndex(tok, "."); i >= 0 {
		tok = tok[i+1:]
	}
	if k, ok := functions[tok]; ok {
		return k, true
	}
	if k := Kind(tok); k.Valid() {
		return k, true
	}
	return None, false
}

func infer(lower string) Kind {
	for _, r := range inference {
		if !containsAny(lower, r.any) {
			continue
		}
		for _, ref := range r.refine {
			if containsAny(lower, ref.any) {
				return ref.kind
			}
		}
		return r.kind
	}
	return None
}

var splomTerms = []string{"scatter plot matrix", "splom", "scatter matrix"}

// Descriptor carries what ForDescriptor needs to know about a recommendation.
type Descriptor struct {
	Label   string
	Pair    bool
	Triple  bool
	Columns int
}

// ForDescriptor resolves the kind for a recommendation. Triples always render
// as Triple; pairs whose label names a scatter matrix render as
// ScatterMatrix. Kinds that encode a third column fall back to Scatter when
// only two columns were resolved.
func ForDescriptor(d Descriptor) Kind {
	if d.Triple {
		return Triple
	}
	if d.Pair && containsAny(strings.ToLower(d.Label), splomTerms) {
		return ScatterMatrix
	}
	k := Normalize(d.Label)
	if k.NeedsThree() && d.Columns == 2 {
		return Scatter
	}
	return k
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
