package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/vizloom-cli/internal/chart"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

const (
	maxTableLines = 15
	timeFormat    = "2006-01-02"
)

// Plot converts c into a gonum plot. The drawing is chosen from the payload
// the chart carries; Kind only picks between variants (area or line, stacked
// or grouped bars).
func Plot(c *chart.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	var err error
	switch {
	case c.Placeholder:
		err = addMessage(p, c.Annotation)
	case c.Table != nil:
		err = addTable(p, c.Table)
	case c.Matrix != nil && len(c.Matrix.Rows) > 0 && len(c.Matrix.Cols) > 0:
		addHeatMap(p, c.Matrix)
	case len(c.Nodes) > 0:
		err = addNodes(p, c.Nodes)
	case len(c.Boxes) > 0:
		err = addBoxes(p, c.Boxes)
	case len(c.Bins) > 0:
		addBins(p, c.Bins)
	case hasCategories(c.Series):
		err = addBars(p, c.Series, c.Kind == vizkind.BarStacked)
	case hasPoints(c.Series):
		if isLine(c.Kind) {
			err = addLines(p, c.Series, c.Kind == vizkind.Area || c.Kind == vizkind.AreaStacked)
		} else {
			err = addScatter(p, c.Series)
		}
	default:
		err = addMessage(p, "No data to display")
	}
	if err != nil {
		return nil, err
	}
	if c.XTime {
		p.X.Tick.Marker = plot.TimeTicks{Format: timeFormat}
	}
	return p, nil
}

func isLine(k vizkind.Kind) bool {
	switch k {
	case vizkind.Line, vizkind.LineMulti, vizkind.Area, vizkind.AreaStacked:
		return true
	}
	return false
}

func hasCategories(series []chart.Series) bool {
	return len(series) > 0 && len(series[0].Labels) > 0
}

func hasPoints(series []chart.Series) bool {
	for _, s := range series {
		if len(s.X) > 0 {
			return true
		}
	}
	return false
}

// addMessage writes text in the middle of an axis-less plot.
func addMessage(p *plot.Plot, text string) error {
	p.HideAxes()
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = 0, 1, 0, 1
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	l.TextStyle[0].XAlign = draw.XCenter
	l.TextStyle[0].YAlign = draw.YCenter
	p.Add(l)
	return nil
}

func addTable(p *plot.Plot, t *chart.Table) error {
	lines := []string{strings.Join(t.Header, " | ")}
	for i, row := range t.Rows {
		if i == maxTableLines {
			lines = append(lines, fmt.Sprintf("... %d more rows", len(t.Rows)-i))
			break
		}
		lines = append(lines, strings.Join(row, " | "))
	}
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, float64(len(lines)+1)
	xys := make([]plotter.XY, len(lines))
	for i := range lines {
		xys[i] = plotter.XY{X: 0, Y: float64(len(lines) - i)}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// grid adapts a chart matrix to plotter.GridXYZ; cell (c, r) is column c of
// row r.
type grid struct{ m *chart.Matrix }

func (g grid) Dims() (c, r int)   { return len(g.m.Cols), len(g.m.Rows) }
func (g grid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

func addHeatMap(p *plot.Plot, m *chart.Matrix) {
	h := plotter.NewHeatMap(grid{m}, palette.Heat(12, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	p.Add(h)
	p.X.Tick.Marker = nominal(m.Cols)
	p.Y.Tick.Marker = nominal(m.Rows)
}

func nominal(labels []string) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return ticks
}

// addNodes draws hierarchy leaves as horizontal bars, one per path.
func addNodes(p *plot.Plot, nodes []chart.Node) error {
	values := make(plotter.Values, len(nodes))
	labels := make([]string, len(nodes))
	for i, n := range nodes {
		values[i] = n.Value
		labels[i] = strings.Join(n.Path, " / ")
	}
	b, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	b.Horizontal = true
	b.Color = plotutil.Color(0)
	p.Add(b)
	p.NominalY(labels...)
	return nil
}

func addBoxes(p *plot.Plot, boxes []chart.BoxStats) error {
	var names []string
	for _, bx := range boxes {
		if len(bx.Values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), plotter.Values(bx.Values))
		if err != nil {
			return err
		}
		b.FillColor = plotutil.Color(len(names))
		p.Add(b)
		names = append(names, bx.Group)
	}
	if len(names) == 0 {
		return addMessage(p, "No data to display")
	}
	p.NominalX(names...)
	return nil
}

func addBins(p *plot.Plot, bins []chart.Bin) {
	h := &plotter.Histogram{
		FillColor: plotutil.Color(0),
		LineStyle: plotter.DefaultLineStyle,
	}
	for _, b := range bins {
		h.Bins = append(h.Bins, plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)})
	}
	h.Width = bins[0].Hi - bins[0].Lo
	p.Add(h)
}

// addBars draws one bar set per series over the first series' labels, side
// by side or stacked.
func addBars(p *plot.Plot, series []chart.Series, stack bool) error {
	n := len(series)
	width := vg.Points(math.Max(4, 40/float64(n)))
	if stack {
		width = vg.Points(30)
	}
	var below *plotter.BarChart
	for i, s := range series {
		b, err := plotter.NewBarChart(plotter.Values(s.Y), width)
		if err != nil {
			return err
		}
		b.Color = plotutil.Color(i)
		b.LineStyle.Width = 0
		if stack {
			if below != nil {
				b.StackOn(below)
			}
			below = b
		} else {
			b.Offset = width * vg.Length(float64(i)-float64(n-1)/2)
		}
		p.Add(b)
		if n > 1 {
			p.Legend.Add(s.Name, b)
		}
	}
	p.Legend.Top = true
	p.NominalX(series[0].Labels...)
	return nil
}

func addLines(p *plot.Plot, series []chart.Series, fill bool) error {
	for i, s := range series {
		l, err := plotter.NewLine(xys(s.X, s.Y))
		if err != nil {
			return err
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		if fill {
			l.FillColor = withAlpha(plotutil.Color(i), 0x60)
		}
		p.Add(l)
		if len(series) > 1 {
			p.Legend.Add(s.Name, l)
		}
	}
	return nil
}

// addScatter draws points. Groups split a series into coloured sets; a Z
// dimension scales the glyph radius.
func addScatter(p *plot.Plot, series []chart.Series) error {
	for _, s := range series {
		if len(s.Groups) == len(s.X) && len(s.Groups) > 0 {
			if err := addGroupedScatter(p, s); err != nil {
				return err
			}
			continue
		}
		sc, err := plotter.NewScatter(xys(s.X, s.Y))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(0)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		if len(s.Z) == len(s.X) && len(s.Z) > 0 {
			lo, hi := minMax(s.Z)
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				g := sc.GlyphStyle
				g.Radius = vg.Points(2 + 6*scale(s.Z[i], lo, hi))
				return g
			}
		}
		p.Add(sc)
	}
	return nil
}

func addGroupedScatter(p *plot.Plot, s chart.Series) error {
	var order []string
	pts := map[string]plotter.XYs{}
	for i, g := range s.Groups {
		if _, ok := pts[g]; !ok {
			order = append(order, g)
		}
		pts[g] = append(pts[g], plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	for i, g := range order {
		sc, err := plotter.NewScatter(pts[g])
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(i)
		sc.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(sc)
		p.Legend.Add(g, sc)
	}
	p.Legend.Top = true
	return nil
}

func xys(x, y []float64) plotter.XYs {
	out := make(plotter.XYs, min(len(x), len(y)))
	for i := range out {
		out[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return out
}

func minMax(v []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
