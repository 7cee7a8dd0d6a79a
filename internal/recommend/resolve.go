package recommend

import (
	"log/slog"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
)

// Resolver turns descriptor names into existing column names. It never fails:
// when the name cannot be matched it falls back to columns picked by type and
// declared order, except for Column descriptors, which resolve to nothing.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil logger discards output.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger}
}

// Resolve is NewResolver(nil).Resolve.
func Resolve(d Descriptor, ds *dataset.Dataset) []string {
	return NewResolver(nil).Resolve(d, ds)
}

// Resolve returns the ordered columns d refers to. Pairs are completed to two
// columns when the dataset has them. A Column descriptor must name an existing
// column exactly and resolves to an empty list otherwise; the other types fall
// back to the first column (first two for pairs) when nothing valid remains.
func (r *Resolver) Resolve(d Descriptor, ds *dataset.Dataset) []string {
	if ds == nil || ds.Width() == 0 {
		return []string{}
	}
	names := ds.Names()
	res := Parse(d, names)
	cols := append([]string(nil), res.Columns...)
	fallback := ""

	if d.Type == TypePair && len(cols) < 2 && len(names) >= 2 {
		cols, fallback = repairPair(cols, ds)
	}
	switch {
	case len(cols) > 0:
	case d.Type == TypeColumn:
		cols, fallback = []string{}, "none"
	default:
		n := 1
		if d.Type == TypePair && len(names) > 1 {
			n = 2
		}
		cols = append(cols, names[:n]...)
		fallback = "first columns"
	}

	r.logger.Debug("resolved descriptor",
		"name", d.Name.Text,
		"type", string(d.Type),
		"strategy", res.Strategy,
		"outcome", res.Outcome.String(),
		"fallback", fallback,
		"columns", cols)
	return cols
}

// repairPair completes a pair that resolved to fewer than two columns.
func repairPair(valid []string, ds *dataset.Dataset) ([]string, string) {
	names := ds.Names()
	if len(valid) == 1 {
		for _, n := range names {
			if n != valid[0] {
				return []string{valid[0], n}, "complementary column"
			}
		}
		return valid, ""
	}
	if numeric := ds.NumericNames(); len(numeric) >= 2 {
		return []string{numeric[0], numeric[1]}, "first numeric columns"
	}
	return []string{names[0], names[1]}, "first columns"
}
