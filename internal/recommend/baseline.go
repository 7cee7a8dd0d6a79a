package recommend

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
)

const (
	baselineNumeric     = 5
	baselineCategorical = 3
	maxCategories       = 30
)

// Baseline derives simple candidates from the column ranking and column
// types, for use when no external scorer output is available. ds should
// already carry cleaned names (see dataset.Dataset.Normalized).
func Baseline(ds *dataset.Dataset, domain metrics.Domain) []Descriptor {
	if ds == nil {
		return nil
	}
	_, ranking := metrics.Score(ds, domain)
	score := make(map[string]float64, len(ranking))
	var numeric []string
	for _, sc := range ranking {
		if !ds.Has(sc.Column) {
			continue
		}
		score[sc.Column] = sc.FinalScore
		if len(numeric) < baselineNumeric {
			numeric = append(numeric, sc.Column)
		}
	}
	var categorical, temporal []string
	for _, c := range ds.Columns() {
		switch c.Type {
		case dataset.Categorical:
			if n := c.Distinct(); n >= 2 && n <= maxCategories && len(categorical) < baselineCategorical {
				categorical = append(categorical, c.Name)
			}
		case dataset.Temporal:
			temporal = append(temporal, c.Name)
		}
	}

	var out []Descriptor
	add := func(t Type, name Label, viz string, s float64) {
		out = append(out, Descriptor{Name: name, Type: t, Visualization: viz, Score: round2(s)})
	}

	for _, n := range numeric {
		add(TypeColumn, TextLabel(n), "Histogram (px.histogram)", score[n])
	}
	for _, n := range categorical {
		c, _ := ds.Column(n)
		add(TypeColumn, TextLabel(n), "Bar Chart (px.bar)", 1+1/float64(c.Distinct()))
	}

	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			a, b := numeric[i], numeric[j]
			r := correlation(ds, a, b)
			add(TypePair, TextLabel(a+" & "+b), "Scatter Plot (px.scatter)", (score[a]+score[b])/2+math.Abs(r))
		}
	}
	if len(temporal) > 0 {
		for _, n := range numeric {
			add(TypePair, TextLabel(temporal[0]+" & "+n), "Line Chart (px.line)", score[n]+0.5)
		}
	}
	for _, c := range categorical {
		for _, n := range numeric {
			add(TypePair, TextLabel(n+" by "+c), "Box Plot (px.box)", score[n])
		}
	}

	if len(numeric) >= 3 {
		a, b, c := numeric[0], numeric[1], numeric[2]
		add(TypeTriple, TextLabel(a+" & "+b+" & "+c), "3D Scatter Plot (px.scatter3d)", (score[a]+score[b]+score[c])/3)
	}
	if len(numeric) >= 2 {
		for _, c := range categorical {
			a, b := numeric[0], numeric[1]
			add(TypeTriple, TextLabel(a+" vs "+b+" by "+c), "Scatter Plot with Colors (px.scatter)", (score[a]+score[b])/2+0.25)
		}
	}

	for _, c := range categorical {
		for _, n := range numeric {
			add(TypeGroupBy, TextLabel(n+" [by] "+c), "Bar Chart (px.bar)", score[n]+0.1)
		}
	}
	return out
}

// correlation is Pearson's r over rows where both columns hold a value.
func correlation(ds *dataset.Dataset, a, b string) float64 {
	ca, ok1 := ds.Column(a)
	cb, ok2 := ds.Column(b)
	if !ok1 || !ok2 {
		return 0
	}
	var xs, ys []float64
	for i := 0; i < ca.Len(); i++ {
		x, okx := ca.Float(i)
		y, oky := cb.Float(i)
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 3 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
