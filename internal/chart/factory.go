package chart

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

// Request names what to draw: a canonical kind and resolved columns. Pair
// marks requests coming from a two-column recommendation, which fall back to
// a scatter matrix when no kind-specific rule applies.
type Request struct {
	Kind    vizkind.Kind
	Columns []string
	Pair    bool
}

// Factory turns requests into charts.
type Factory struct {
	logger *slog.Logger
}

// NewFactory returns a factory. A nil logger discards output.
func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Factory{logger: logger}
}

// Build returns a chart for req. It never returns nil and never panics: a
// failing rule yields a placeholder carrying the error text.
func Build(ds *dataset.Dataset, req Request) *Chart {
	return NewFactory(nil).Build(ds, req)
}

func (f *Factory) Build(ds *dataset.Dataset, req Request) (out *Chart) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("chart build failed", "kind", req.Kind, "columns", req.Columns, "error", r)
			out = Placeholder("Visualization Error", fmt.Sprintf("Visualization error: %v", r))
			out.Requested = req.Kind
		}
	}()

	if ds == nil || ds.Width() == 0 {
		out = Unavailable()
		out.Requested = req.Kind
		return out
	}
	in := newInput(ds, req)
	for _, r := range rules {
		c := r.build(in)
		if c == nil {
			continue
		}
		c.Requested = req.Kind
		c.Columns = in.names()
		f.logger.Debug("chart built", "rule", r.name, "requested", req.Kind, "kind", c.Kind, "columns", c.Columns)
		return c
	}
	f.logger.Debug("no chart rule applied", "requested", req.Kind, "columns", in.names())
	out = Unavailable()
	out.Requested = req.Kind
	return out
}

// input is the normalized state every rule sees.
type input struct {
	ds   *dataset.Dataset
	kind vizkind.Kind
	pair bool
	cols []*dataset.Column
}

// newInput keeps the requested columns that exist. With none left it uses
// the dataset's first column, or first two for pairs.
func newInput(ds *dataset.Dataset, req Request) *input {
	in := &input{ds: ds, kind: req.Kind, pair: req.Pair}
	for _, name := range req.Columns {
		if c, ok := ds.Column(name); ok {
			in.cols = append(in.cols, c)
		}
	}
	if len(in.cols) == 0 {
		all := ds.Columns()
		n := 1
		if req.Pair && len(all) >= 2 {
			n = 2
		}
		in.cols = append(in.cols, all[:n]...)
	}
	return in
}

func (in *input) n() int { return len(in.cols) }

func (in *input) names() []string {
	out := make([]string, len(in.cols))
	for i, c := range in.cols {
		out[i] = c.Name
	}
	return out
}

func (in *input) is(kinds ...vizkind.Kind) bool {
	for _, k := range kinds {
		if in.kind == k {
			return true
		}
	}
	return false
}

// numericCount counts numeric columns among the first n.
func (in *input) numericCount(n int) int {
	cnt := 0
	for _, c := range in.cols[:min(n, len(in.cols))] {
		if c.IsNumeric() {
			cnt++
		}
	}
	return cnt
}

// split returns the numeric and the other column of the first two, for
// inputs where exactly one of them is numeric.
func (in *input) split() (num, other *dataset.Column) {
	a, b := in.cols[0], in.cols[1]
	if a.IsNumeric() {
		return a, b
	}
	return b, a
}

func categorical(c *dataset.Column) bool {
	return !c.IsNumeric() && !c.IsTemporal()
}
