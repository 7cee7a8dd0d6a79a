// Package render draws charts to SVG or PNG with gonum/plot, or encodes them
// as JSON.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/vizloom-cli/internal/chart"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

// Format is an output encoding.
type Format string

const (
	SVG  Format = "svg"
	PNG  Format = "png"
	JSON Format = "json"
)

// ParseFormat accepts svg, png or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SVG, PNG, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use svg, png or json)", s)
}

// Ext is the file extension for f, dot included.
func (f Format) Ext() string { return "." + string(f) }

// Options controls the output size and encoding.
type Options struct {
	Format Format
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions is an 800x500pt SVG.
func DefaultOptions() Options {
	return Options{Format: SVG, Width: 800, Height: 500}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

// Render writes c to w.
func Render(w io.Writer, c *chart.Chart, opt Options) error {
	opt = opt.withDefaults()
	if c == nil {
		c = chart.Unavailable()
	}
	if opt.Format == JSON {
		b, err := utils.PrettyJSON(c)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}

	canvas, err := draw.NewFormattedCanvas(opt.Width, opt.Height, string(opt.Format))
	if err != nil {
		return fmt.Errorf("create canvas: %w", err)
	}
	dc := draw.New(canvas)
	if c.Kind == vizkind.ScatterMatrix && len(c.Series) >= 2 {
		err = drawMatrix(dc, c)
	} else {
		var p *plot.Plot
		if p, err = Plot(c); err == nil {
			p.Draw(dc)
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Kind, err)
	}
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", opt.Format, err)
	}
	return nil
}

// WriteFile renders c into path atomically.
func WriteFile(path string, c *chart.Chart, opt Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, c, opt); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// Marshal is Render into memory.
func Marshal(c *chart.Chart, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, c, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
