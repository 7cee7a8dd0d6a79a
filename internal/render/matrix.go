package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/vizloom-cli/internal/chart"
)

// drawMatrix tiles one plot per column pair: histograms on the diagonal,
// scatters elsewhere. Row i plots column i on y, column j on x.
func drawMatrix(dc draw.Canvas, c *chart.Chart) error {
	title := text.Style{Font: plot.DefaultFont, Handler: plot.DefaultTextHandler}
	title.Font.Size = vg.Points(12)
	title.XAlign = draw.XCenter
	th := title.Height(c.Title)
	dc.FillText(title, vg.Point{X: dc.Center().X, Y: dc.Max.Y - th}, c.Title)
	body := draw.Crop(dc, 0, 0, 0, -2*th)

	n := len(c.Series)
	plots := make([][]*plot.Plot, n)
	for i := range plots {
		plots[i] = make([]*plot.Plot, n)
		for j := range plots[i] {
			p, err := cell(c.Series, i, j)
			if err != nil {
				return err
			}
			if j == 0 {
				p.Y.Label.Text = c.Series[i].Name
			}
			if i == n-1 {
				p.X.Label.Text = c.Series[j].Name
			}
			plots[i][j] = p
		}
	}
	tiles := draw.Tiles{Rows: n, Cols: n, PadX: vg.Millimeter, PadY: vg.Millimeter}
	canvases := plot.Align(plots, tiles, body)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}
	return nil
}

func cell(series []chart.Series, i, j int) (*plot.Plot, error) {
	p := plot.New()
	if len(series[j].X) == 0 {
		return p, nil
	}
	if i == j {
		h, err := plotter.NewHist(plotter.Values(series[i].X), 10)
		if err != nil {
			return nil, err
		}
		h.FillColor = plotutil.Color(0)
		p.Add(h)
		return p, nil
	}
	s, err := plotter.NewScatter(xys(series[j].X, series[i].X))
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = plotutil.Color(0)
	s.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(s)
	return p, nil
}
