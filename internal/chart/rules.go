package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

const (
	maxPieSlices    = 20
	maxBarDistinct  = 20
	maxTreemapNodes = 30
	maxTreemapBins  = 10
	densityBins     = 10
	previewRows     = 50
)

// rule builds a chart or returns nil to let the next rule try.
type rule struct {
	name  string
	build func(in *input) *Chart
}

// rules are tried in order. Kind-specific rules come first, then the pair
// scatter matrix, then generic rules keyed on column types only.
var rules = []rule{
	{"histogram", histogramRule},
	{"bar/single", barSingleRule},
	{"pie", pieRule},
	{"box/single", boxSingleRule},
	{"treemap/single", treemapSingleRule},
	{"calendar", calendarRule},
	{"table", tableRule},

	{"scatter", scatterRule},
	{"scatter/three", threeColumnRule},
	{"line/multi", lineMultiRule},
	{"line", lineRule},
	{"bar/pair", barPairRule},
	{"bar/grouped", barGroupedRule},
	{"heatmap", heatmapRule},
	{"heatmap/density", densityRule},
	{"box/pair", boxPairRule},
	{"treemap/pair", treemapPairRule},
	{"parallel", parallelRule},

	{"scatter_matrix", scatterMatrixRule},

	{"generic/single", genericSingleRule},
	{"generic/pair", genericPairRule},
}

func histogramRule(in *input) *Chart {
	if !in.is(vizkind.Histogram) {
		return nil
	}
	return distribution(in.cols[0])
}

func barSingleRule(in *input) *Chart {
	if !in.is(vizkind.Bar) || in.n() != 1 {
		return nil
	}
	c := in.cols[0]
	if categorical(c) || (c.IsNumeric() && c.Distinct() <= maxBarDistinct) {
		return countBar(c, "Count by "+c.Name, 0)
	}
	return histChart(c)
}

func pieRule(in *input) *Chart {
	if !in.is(vizkind.Pie) {
		return nil
	}
	if in.n() >= 2 && in.numericCount(2) == 1 {
		num, cat := in.split()
		labels, sums := groupSum(cat, num)
		ch := newChart(vizkind.Pie, fmt.Sprintf("Share of %s by %s", num.Name, cat.Name))
		ch.XLabel, ch.YLabel = cat.Name, num.Name
		ch.Series = []Series{{Name: num.Name, Labels: labels, Y: sums}}
		return ch
	}
	c := in.cols[0]
	if c.Distinct() > maxPieSlices {
		return countBar(c, fmt.Sprintf("Top %d Categories of %s", maxPieSlices, c.Name), maxPieSlices)
	}
	labels, counts := valueCounts(c)
	ch := newChart(vizkind.Pie, "Pie Chart of "+c.Name)
	ch.XLabel, ch.YLabel = c.Name, "count"
	ch.Series = []Series{{Name: "count", Labels: labels, Y: counts}}
	return ch
}

func boxSingleRule(in *input) *Chart {
	if !in.is(vizkind.Box, vizkind.Violin, vizkind.BoxStrip) || in.n() != 1 {
		return nil
	}
	c := in.cols[0]
	if !c.IsNumeric() {
		return countBar(c, "Count by "+c.Name, 0)
	}
	title := "Box Plot of " + c.Name
	if in.kind == vizkind.Violin {
		title = "Violin Plot of " + c.Name
	}
	ch := newChart(in.kind, title)
	ch.YLabel = c.Name
	ch.Boxes = []BoxStats{boxStats(c.Name, c.Floats())}
	return ch
}

func treemapSingleRule(in *input) *Chart {
	if !in.is(vizkind.Treemap, vizkind.Sunburst) || in.n() != 1 {
		return nil
	}
	c := in.cols[0]
	if !categorical(c) && c.Distinct() > maxTreemapNodes {
		return countBar(c, fmt.Sprintf("Top %d Values of %s", maxTreemapNodes, c.Name), maxTreemapNodes)
	}
	labels, counts := valueCounts(c)
	ch := newChart(in.kind, hierarchyTitle(in.kind)+" of "+c.Name)
	for i, l := range labels {
		ch.Nodes = append(ch.Nodes, Node{Path: []string{l}, Value: counts[i]})
	}
	return ch
}

func hierarchyTitle(k vizkind.Kind) string {
	if k == vizkind.Sunburst {
		return "Sunburst"
	}
	return "Treemap"
}

// calendarRule lays a temporal column out as weekday by month, counting rows
// or summing the first numeric column.
func calendarRule(in *input) *Chart {
	if !in.is(vizkind.CalendarHeatmap) {
		return nil
	}
	var t, val *dataset.Column
	for _, c := range in.cols {
		switch {
		case c.IsTemporal() && t == nil:
			t = c
		case c.IsNumeric() && val == nil:
			val = c
		}
	}
	if t == nil {
		return nil
	}
	m := &Matrix{Values: make([][]float64, 7)}
	for d := time.Monday; d < time.Monday+7; d++ {
		m.Rows = append(m.Rows, (d % 7).String()[:3])
	}
	for mo := time.January; mo <= time.December; mo++ {
		m.Cols = append(m.Cols, mo.String()[:3])
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, 12)
	}
	for i := 0; i < t.Len(); i++ {
		ts, ok := t.Time(i)
		if !ok {
			continue
		}
		v := 1.0
		if val != nil {
			if v, ok = val.Float(i); !ok {
				continue
			}
		}
		row := (int(ts.Weekday()) + 6) % 7
		m.Values[row][int(ts.Month())-1] += v
	}
	title := "Calendar of " + t.Name
	if val != nil {
		title = fmt.Sprintf("%s by weekday and month", val.Name)
	}
	ch := newChart(vizkind.CalendarHeatmap, title)
	ch.XLabel, ch.YLabel = "month", "weekday"
	ch.Matrix = m
	return ch
}

func tableRule(in *input) *Chart {
	if !in.is(vizkind.Table) {
		return nil
	}
	t := &Table{Header: in.names()}
	rows := min(in.ds.Rows(), previewRows)
	for i := 0; i < rows; i++ {
		row := make([]string, len(in.cols))
		for j, c := range in.cols {
			row[j] = c.Label(i)
		}
		t.Rows = append(t.Rows, row)
	}
	ch := newChart(vizkind.Table, "Data Preview")
	ch.Table = t
	return ch
}

func scatterRule(in *input) *Chart {
	if !in.is(vizkind.Scatter) || in.n() < 2 || in.numericCount(2) != 2 {
		return nil
	}
	return scatterChart(in.cols[0], in.cols[1])
}

// threeColumnRule draws two numeric columns against each other and encodes a
// third column as depth (numeric) or colour.
func threeColumnRule(in *input) *Chart {
	if !in.is(vizkind.Triple, vizkind.ScatterColor, vizkind.Scatter3D, vizkind.ScatterFaceted, vizkind.ScatterAnimated) || in.n() < 3 {
		return nil
	}
	var nums, rest []*dataset.Column
	for _, c := range in.cols {
		if c.IsNumeric() {
			nums = append(nums, c)
		} else {
			rest = append(rest, c)
		}
	}
	if len(nums) < 2 {
		return nil
	}
	x, y := nums[0], nums[1]
	if len(nums) >= 3 && in.is(vizkind.Triple, vizkind.Scatter3D) {
		z := nums[2]
		pts := paired(x, y, z)
		ch := newChart(vizkind.Scatter3D, fmt.Sprintf("3D view of %s, %s and %s", x.Name, y.Name, z.Name))
		ch.XLabel, ch.YLabel = x.Name, y.Name
		ch.Series = []Series{{Name: z.Name, X: pts[0], Y: pts[1], Z: pts[2]}}
		return ch
	}
	g := append(rest, nums[2:]...)[0]
	s := Series{Name: g.Name}
	for i := 0; i < x.Len(); i++ {
		xv, ok1 := x.Float(i)
		yv, ok2 := y.Float(i)
		if !ok1 || !ok2 || g.Missing(i) {
			continue
		}
		s.X = append(s.X, xv)
		s.Y = append(s.Y, yv)
		s.Groups = append(s.Groups, g.Label(i))
	}
	kind := in.kind
	if in.is(vizkind.Triple, vizkind.Scatter3D) {
		kind = vizkind.ScatterColor
	}
	ch := newChart(kind, fmt.Sprintf("%s vs %s by %s", y.Name, x.Name, g.Name))
	ch.XLabel, ch.YLabel = x.Name, y.Name
	ch.Series = []Series{s}
	return ch
}

// lineMultiRule draws every numeric column against a shared x axis.
func lineMultiRule(in *input) *Chart {
	if !in.is(vizkind.LineMulti) || in.n() < 3 {
		return nil
	}
	x := in.cols[0]
	for _, c := range in.cols {
		if c.IsTemporal() {
			x = c
			break
		}
	}
	if !x.IsTemporal() && !x.IsNumeric() {
		return nil
	}
	var series []Series
	var ys []string
	for _, c := range in.cols {
		if c == x || !c.IsNumeric() {
			continue
		}
		pts := paired(x, c)
		sortPaired(pts[0], pts[1])
		series = append(series, Series{Name: c.Name, X: pts[0], Y: pts[1]})
		ys = append(ys, c.Name)
	}
	if len(series) == 0 {
		return nil
	}
	sep := " vs "
	if x.IsTemporal() {
		sep = " over "
	}
	ch := newChart(vizkind.LineMulti, strings.Join(ys, ", ")+sep+x.Name)
	ch.XLabel, ch.XTime = x.Name, x.IsTemporal()
	ch.Series = series
	return ch
}

// lineRule puts the first temporal column on x; without one it sorts by the
// first column when that is numeric. A categorical y over time becomes one
// count line per category.
func lineRule(in *input) *Chart {
	if !in.is(vizkind.Line, vizkind.LineMulti, vizkind.Area, vizkind.AreaStacked, vizkind.Timeline, vizkind.Candlestick) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	var x, y *dataset.Column
	switch {
	case a.IsTemporal():
		x, y = a, b
	case b.IsTemporal():
		x, y = b, a
	case a.IsNumeric():
		x, y = a, b
	default:
		return nil
	}
	if !y.IsNumeric() {
		if !x.IsTemporal() {
			return nil
		}
		ch := newChart(vizkind.LineMulti, fmt.Sprintf("Count of %s over %s", y.Name, x.Name))
		ch.XLabel, ch.YLabel, ch.XTime = x.Name, "count", true
		ch.Series = countsOverTime(x, y)
		return ch
	}
	pts := paired(x, y)
	sortPaired(pts[0], pts[1])
	kind := vizkind.Line
	if in.is(vizkind.Area, vizkind.AreaStacked) {
		kind = in.kind
	}
	title := y.Name + " vs " + x.Name
	if x.IsTemporal() {
		title = y.Name + " over " + x.Name
	}
	ch := newChart(kind, title)
	ch.XLabel, ch.YLabel, ch.XTime = x.Name, y.Name, x.IsTemporal()
	ch.Series = []Series{{Name: y.Name, X: pts[0], Y: pts[1]}}
	return ch
}

func barPairRule(in *input) *Chart {
	if !in.is(vizkind.Bar) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	switch in.numericCount(2) {
	case 1:
		num, cat := in.split()
		return sumBar(vizkind.Bar, num, cat, num.Name+" by "+cat.Name)
	case 0:
		ch := newChart(vizkind.Bar, fmt.Sprintf("Count of %s by %s", b.Name, a.Name))
		ch.XLabel, ch.YLabel = a.Name, "count"
		ch.Series = stacked(a, b, nil)
		return ch
	default:
		return sumBar(vizkind.Bar, b, a, fmt.Sprintf("Sum of %s by %s", b.Name, a.Name))
	}
}

func barGroupedRule(in *input) *Chart {
	if !in.is(vizkind.BarGrouped, vizkind.BarStacked) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	switch in.numericCount(2) {
	case 1:
		num, cat := in.split()
		return sumBar(in.kind, num, cat, num.Name+" by "+cat.Name)
	case 0:
		if in.n() >= 3 && in.cols[2].IsNumeric() {
			v := in.cols[2]
			ch := newChart(in.kind, fmt.Sprintf("Sum of %s by %s and %s", v.Name, a.Name, b.Name))
			ch.XLabel, ch.YLabel = a.Name, v.Name
			ch.Series = stacked(a, b, v)
			return ch
		}
		ch := newChart(in.kind, fmt.Sprintf("Count of %s by %s", b.Name, a.Name))
		ch.XLabel, ch.YLabel = a.Name, "count"
		ch.Series = stacked(a, b, nil)
		return ch
	}
	return nil
}

func heatmapRule(in *input) *Chart {
	if !in.is(vizkind.Heatmap) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	if in.numericCount(in.n()) == in.n() {
		names := in.names()
		m := &Matrix{Rows: names, Cols: names, Values: make([][]float64, len(names))}
		for i, ci := range in.cols {
			m.Values[i] = make([]float64, len(names))
			for j, cj := range in.cols {
				if i == j {
					m.Values[i][j] = 1
					continue
				}
				pts := paired(ci, cj)
				m.Values[i][j] = correlation(pts[0], pts[1])
			}
		}
		title := "Correlation Matrix"
		if in.n() == 2 {
			title = fmt.Sprintf("Correlation between %s and %s", a.Name, b.Name)
		}
		ch := newChart(vizkind.Heatmap, title)
		ch.Matrix = m
		return ch
	}
	ch := newChart(vizkind.Heatmap, fmt.Sprintf("Heatmap of %s vs %s", b.Name, a.Name))
	ch.XLabel, ch.YLabel = b.Name, a.Name
	ch.Matrix = crosstab(a, b)
	return ch
}

// densityRule counts points of two numeric columns on a 2D grid.
func densityRule(in *input) *Chart {
	if !in.is(vizkind.DensityHeatmap) || in.n() < 2 || in.numericCount(2) != 2 {
		return nil
	}
	x, y := in.cols[0], in.cols[1]
	pts := paired(x, y)
	if len(pts[0]) == 0 {
		return nil
	}
	xl, xb := equalWidthBins(pts[0], densityBins)
	yl, yb := equalWidthBins(pts[1], densityBins)
	m := &Matrix{Rows: yl, Cols: xl, Values: make([][]float64, len(yl))}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(xl))
	}
	for i := range xb {
		m.Values[yb[i]][xb[i]]++
	}
	ch := newChart(vizkind.DensityHeatmap, fmt.Sprintf("Density of %s vs %s", y.Name, x.Name))
	ch.XLabel, ch.YLabel = x.Name, y.Name
	ch.Matrix = m
	return ch
}

func boxPairRule(in *input) *Chart {
	if !in.is(vizkind.Box, vizkind.Violin, vizkind.BoxStrip) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	if in.numericCount(2) != 1 {
		ch := newChart(vizkind.Bar, fmt.Sprintf("Count of %s by %s", b.Name, a.Name))
		ch.XLabel, ch.YLabel = a.Name, "count"
		ch.Series = stacked(a, b, nil)
		return ch
	}
	num, cat := in.split()
	groups, values := groupValues(cat, num)
	ch := newChart(in.kind, fmt.Sprintf("Distribution of %s by %s", num.Name, cat.Name))
	ch.XLabel, ch.YLabel = cat.Name, num.Name
	for i, g := range groups {
		ch.Boxes = append(ch.Boxes, boxStats(g, values[i]))
	}
	return ch
}

func treemapPairRule(in *input) *Chart {
	if !in.is(vizkind.Treemap, vizkind.Sunburst) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	switch in.numericCount(2) {
	case 1:
		num, cat := in.split()
		labels, sums := groupSum(cat, num)
		ch := newChart(in.kind, fmt.Sprintf("Sum of %s by %s", num.Name, cat.Name))
		for i, l := range labels {
			ch.Nodes = append(ch.Nodes, Node{Path: []string{l}, Value: sums[i]})
		}
		return ch
	case 0:
		m := crosstab(a, b)
		ch := newChart(in.kind, fmt.Sprintf("Hierarchical view of %s and %s", a.Name, b.Name))
		for i, r := range m.Rows {
			for j, c := range m.Cols {
				if v := m.Values[i][j]; v > 0 {
					ch.Nodes = append(ch.Nodes, Node{Path: []string{r, c}, Value: v})
				}
			}
		}
		return ch
	default:
		pts := paired(a, b)
		labels, assign := equalWidthBins(pts[0], min(maxTreemapBins, a.Distinct()))
		sums := make([]float64, len(labels))
		seen := make([]bool, len(labels))
		for i, bin := range assign {
			sums[bin] += pts[1][i]
			seen[bin] = true
		}
		ch := newChart(in.kind, fmt.Sprintf("Sum of %s by binned %s", b.Name, a.Name))
		for i, l := range labels {
			if seen[i] {
				ch.Nodes = append(ch.Nodes, Node{Path: []string{l}, Value: sums[i]})
			}
		}
		return ch
	}
}

func parallelRule(in *input) *Chart {
	if !in.is(vizkind.ParallelCategories) || in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	if a.Distinct() > maxTreemapNodes || b.Distinct() > maxTreemapNodes {
		return nil
	}
	ch := newChart(vizkind.ParallelCategories, fmt.Sprintf("Flow between %s and %s", a.Name, b.Name))
	ch.XLabel, ch.YLabel = b.Name, a.Name
	ch.Matrix = crosstab(a, b)
	return ch
}

// scatterMatrixRule plots every pair of columns. Non-numeric columns are
// placed by the ordinal of their sorted labels.
func scatterMatrixRule(in *input) *Chart {
	if !(in.pair || in.is(vizkind.ScatterMatrix)) || in.n() < 2 {
		return nil
	}
	ords := make([]map[string]int, len(in.cols))
	for j, c := range in.cols {
		if categorical(c) {
			ords[j] = sortedIndex(c)
		}
	}
	series := make([]Series, len(in.cols))
	for j, c := range in.cols {
		series[j].Name = c.Name
	}
rows:
	for i := 0; i < in.ds.Rows(); i++ {
		row := make([]float64, len(in.cols))
		for j, c := range in.cols {
			if ords[j] != nil {
				if c.Missing(i) {
					continue rows
				}
				row[j] = float64(ords[j][c.Label(i)])
				continue
			}
			v, ok := axisValue(c, i)
			if !ok {
				continue rows
			}
			row[j] = v
		}
		for j := range series {
			series[j].X = append(series[j].X, row[j])
		}
	}
	ch := newChart(vizkind.ScatterMatrix, "Scatter Plot Matrix of "+strings.Join(in.names(), ", "))
	ch.Series = series
	return ch
}

func genericSingleRule(in *input) *Chart {
	if in.n() != 1 {
		return nil
	}
	return distribution(in.cols[0])
}

func genericPairRule(in *input) *Chart {
	if in.n() < 2 {
		return nil
	}
	a, b := in.cols[0], in.cols[1]
	switch in.numericCount(2) {
	case 2:
		return scatterChart(a, b)
	case 1:
		num, cat := in.split()
		return sumBar(vizkind.Bar, num, cat, num.Name+" by "+cat.Name)
	default:
		ch := newChart(vizkind.Heatmap, fmt.Sprintf("Heatmap of %s vs %s", b.Name, a.Name))
		ch.XLabel, ch.YLabel = a.Name, b.Name
		ch.Matrix = crosstab(b, a)
		return ch
	}
}

// distribution is a histogram for numeric and temporal columns and a value
// count bar otherwise.
func distribution(c *dataset.Column) *Chart {
	if categorical(c) {
		return countBar(c, "Distribution of "+c.Name, 0)
	}
	return histChart(c)
}

func histChart(c *dataset.Column) *Chart {
	ch := newChart(vizkind.Histogram, "Distribution of "+c.Name)
	ch.XLabel, ch.YLabel, ch.XTime = c.Name, "count", c.IsTemporal()
	ch.Bins = histogram(paired(c)[0])
	return ch
}

// countBar charts value counts, most frequent first, keeping at most limit
// bars when limit > 0.
func countBar(c *dataset.Column, title string, limit int) *Chart {
	labels, counts := valueCounts(c)
	if limit > 0 {
		labels, counts = head(labels, counts, limit)
	}
	ch := newChart(vizkind.Bar, title)
	ch.XLabel, ch.YLabel = c.Name, "count"
	ch.Series = []Series{{Name: "count", Labels: labels, Y: counts}}
	return ch
}

func sumBar(kind vizkind.Kind, num, cat *dataset.Column, title string) *Chart {
	labels, sums := groupSum(cat, num)
	ch := newChart(kind, title)
	ch.XLabel, ch.YLabel = cat.Name, num.Name
	ch.Series = []Series{{Name: num.Name, Labels: labels, Y: sums}}
	return ch
}

func scatterChart(x, y *dataset.Column) *Chart {
	pts := paired(x, y)
	ch := newChart(vizkind.Scatter, y.Name+" vs "+x.Name)
	ch.XLabel, ch.YLabel = x.Name, y.Name
	ch.Series = []Series{{Name: y.Name, X: pts[0], Y: pts[1]}}
	return ch
}

// stacked builds one series per label of g over the sorted labels of x,
// counting rows or summing val when it is non-nil.
func stacked(x, g, val *dataset.Column) []Series {
	xi, gi := sortedIndex(x), sortedIndex(g)
	xl, gl := keys(xi), keys(gi)
	out := make([]Series, len(gl))
	for j, l := range gl {
		out[j] = Series{Name: l, Labels: xl, Y: make([]float64, len(xl))}
	}
	for i := 0; i < x.Len(); i++ {
		if x.Missing(i) || g.Missing(i) {
			continue
		}
		v := 1.0
		if val != nil {
			f, ok := val.Float(i)
			if !ok {
				continue
			}
			v = f
		}
		out[gi[g.Label(i)]].Y[xi[x.Label(i)]] += v
	}
	return out
}
