package chart

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
)

// valueCounts counts labels, most frequent first; ties keep first appearance.
func valueCounts(c *dataset.Column) ([]string, []float64) {
	idx := map[string]int{}
	var labels []string
	var counts []float64
	for i := 0; i < c.Len(); i++ {
		if c.Missing(i) {
			continue
		}
		l := c.Label(i)
		j, ok := idx[l]
		if !ok {
			j = len(labels)
			idx[l] = j
			labels = append(labels, l)
			counts = append(counts, 0)
		}
		counts[j]++
	}
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })
	outL := make([]string, len(order))
	outC := make([]float64, len(order))
	for i, j := range order {
		outL[i], outC[i] = labels[j], counts[j]
	}
	return outL, outC
}

func head(labels []string, values []float64, n int) ([]string, []float64) {
	if len(labels) > n {
		return labels[:n], values[:n]
	}
	return labels, values
}

// histogram buckets values into Sturges' number of equal-width bins.
func histogram(values []float64) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(values)}}
	}
	k := int(math.Ceil(math.Log2(float64(len(values))) + 1))
	width := (hi - lo) / float64(k)
	bins := make([]Bin, k)
	for i := range bins {
		bins[i] = Bin{Lo: lo + float64(i)*width, Hi: lo + float64(i+1)*width}
	}
	bins[k-1].Hi = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= k {
			i = k - 1
		}
		bins[i].Count++
	}
	return bins
}

// boxStats computes quartiles with 1.5 IQR whiskers.
func boxStats(group string, values []float64) BoxStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	b := BoxStats{Group: group, N: len(sorted), Values: sorted}
	if len(sorted) == 0 {
		return b
	}
	b.Q1 = metrics.Quantile(sorted, 0.25)
	b.Median = metrics.Quantile(sorted, 0.5)
	b.Q3 = metrics.Quantile(sorted, 0.75)
	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.Min, b.Max = math.Inf(1), math.Inf(-1)
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		b.Min = math.Min(b.Min, v)
		b.Max = math.Max(b.Max, v)
	}
	return b
}

// groupValues collects num per distinct label of cat, in first-appearance
// order, over rows where both hold a value.
func groupValues(cat, num *dataset.Column) ([]string, [][]float64) {
	idx := map[string]int{}
	var groups []string
	var values [][]float64
	for i := 0; i < cat.Len(); i++ {
		v, ok := num.Float(i)
		if !ok || cat.Missing(i) {
			continue
		}
		l := cat.Label(i)
		j, seen := idx[l]
		if !seen {
			j = len(groups)
			idx[l] = j
			groups = append(groups, l)
			values = append(values, nil)
		}
		values[j] = append(values[j], v)
	}
	return groups, values
}

func groupSum(cat, num *dataset.Column) ([]string, []float64) {
	groups, values := groupValues(cat, num)
	sums := make([]float64, len(values))
	for i, vs := range values {
		sums[i] = floats.Sum(vs)
	}
	return groups, sums
}

// crosstab counts rows per (row label, column label) pair. Labels are sorted.
func crosstab(rows, cols *dataset.Column) *Matrix {
	rowIdx, colIdx := sortedIndex(rows), sortedIndex(cols)
	m := &Matrix{Rows: keys(rowIdx), Cols: keys(colIdx)}
	m.Values = make([][]float64, len(m.Rows))
	for i := range m.Values {
		m.Values[i] = make([]float64, len(m.Cols))
	}
	for i := 0; i < rows.Len(); i++ {
		if rows.Missing(i) || cols.Missing(i) {
			continue
		}
		m.Values[rowIdx[rows.Label(i)]][colIdx[cols.Label(i)]]++
	}
	return m
}

func sortedIndex(c *dataset.Column) map[string]int {
	labels := c.Labels()
	sortLabels(c, labels)
	idx := map[string]int{}
	for _, l := range labels {
		if _, ok := idx[l]; !ok {
			idx[l] = len(idx)
		}
	}
	return idx
}

// sortLabels orders numeric labels by value and everything else as text.
func sortLabels(c *dataset.Column, labels []string) {
	if !c.IsNumeric() {
		sort.Strings(labels)
		return
	}
	vals := map[string]float64{}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			vals[c.Label(i)] = v
		}
	}
	sort.SliceStable(labels, func(a, b int) bool { return vals[labels[a]] < vals[labels[b]] })
}

func keys(idx map[string]int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[i] = k
	}
	return out
}

// axisValue is the numeric position of row i: the value for numeric columns,
// Unix seconds for temporal ones.
func axisValue(c *dataset.Column, i int) (float64, bool) {
	if c.IsTemporal() {
		t, ok := c.Time(i)
		if !ok {
			return 0, false
		}
		return float64(t.Unix()), true
	}
	return c.Float(i)
}

// paired returns the rows where every column has a position, as one slice
// per column.
func paired(cols ...*dataset.Column) [][]float64 {
	out := make([][]float64, len(cols))
	if len(cols) == 0 {
		return out
	}
rows:
	for i := 0; i < cols[0].Len(); i++ {
		row := make([]float64, len(cols))
		for j, c := range cols {
			v, ok := axisValue(c, i)
			if !ok {
				continue rows
			}
			row[j] = v
		}
		for j := range cols {
			out[j] = append(out[j], row[j])
		}
	}
	return out
}

// sortPaired sorts xs ascending and applies the same permutation to ys.
func sortPaired(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	sx := make([]float64, len(xs))
	sy := make([]float64, len(ys))
	for i, j := range idx {
		sx[i], sy[i] = xs[j], ys[j]
	}
	copy(xs, sx)
	copy(ys, sy)
}

// correlation is Pearson's r, 0 when undefined.
func correlation(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// equalWidthBins assigns each value to one of k equal-width intervals over
// [min, max] and returns interval labels plus the bin of each value.
func equalWidthBins(values []float64, k int) ([]string, []int) {
	if len(values) == 0 || k < 1 {
		return nil, nil
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		assign := make([]int, len(values))
		return []string{fmt.Sprintf("(%.3g, %.3g]", lo, hi)}, assign
	}
	width := (hi - lo) / float64(k)
	labels := make([]string, k)
	for i := range labels {
		labels[i] = fmt.Sprintf("(%.3g, %.3g]", lo+float64(i)*width, lo+float64(i+1)*width)
	}
	assign := make([]int, len(values))
	for i, v := range values {
		b := int(math.Ceil((v-lo)/width)) - 1
		if b < 0 {
			b = 0
		}
		if b >= k {
			b = k - 1
		}
		assign[i] = b
	}
	return labels, assign
}

// countsOverTime counts the rows of each label of g per distinct instant of
// the temporal column t. Every series shares the ascending X positions.
func countsOverTime(t, g *dataset.Column) []Series {
	gi := sortedIndex(g)
	at := map[float64]int{}
	var xs []float64
	for i := 0; i < t.Len(); i++ {
		if g.Missing(i) {
			continue
		}
		x, ok := axisValue(t, i)
		if !ok {
			continue
		}
		if _, seen := at[x]; !seen {
			at[x] = 0
			xs = append(xs, x)
		}
	}
	sort.Float64s(xs)
	for j, x := range xs {
		at[x] = j
	}
	out := make([]Series, len(gi))
	for j, l := range keys(gi) {
		out[j] = Series{Name: l, X: xs, Y: make([]float64, len(xs))}
	}
	for i := 0; i < t.Len(); i++ {
		if g.Missing(i) {
			continue
		}
		x, ok := axisValue(t, i)
		if !ok {
			continue
		}
		out[gi[g.Label(i)]].Y[at[x]]++
	}
	return out
}
