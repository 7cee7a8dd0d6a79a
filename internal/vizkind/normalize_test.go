package vizkind

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelTableResolvesEveryEntry(t *testing.T) {
	table := Labels()
	require.NotEmpty(t, table)
	for label, want := range table {
		assert.True(t, want.Valid(), label)
		assert.Equal(t, want, Normalize(label), label)
		assert.Equal(t, want, Normalize(strings.ToUpper(label)), label)
		assert.Equal(t, want, Normalize("  "+strings.ToLower(label)+" "), label)
	}
}

func TestEveryKindIsReachableFromTheTable(t *testing.T) {
	reached := map[Kind]bool{}
	for _, k := range Labels() {
		reached[k] = true
	}
	for _, k := range All() {
		assert.True(t, reached[k], "no label for %s", k)
	}
}

func TestFunctionTokensMapToKnownKinds(t *testing.T) {
	for tok, k := range functions {
		assert.True(t, k.Valid(), tok)
	}
}

func TestNormalizeScatterMatrixSpellings(t *testing.T) {
	assert.Equal(t, ScatterMatrix, Normalize("Scatter Plot Matrix (Splom)"))
	assert.Equal(t, ScatterMatrix, Normalize("splom"))
	assert.Equal(t, ScatterMatrix, Normalize("Pairwise scatter matrix of sales"))
}

func TestNormalizeFunctionSuffix(t *testing.T) {
	cases := map[string]Kind{
		"Correlation grid (px.imshow)":  Heatmap,
		"Small multiples (px.subplots)": ScatterFaceted,
		"Bubble Chart (px.scatter)":     Scatter,
		"Funnel (go.Table)":             Table,
		"Whatever (plotly.sunburst)":    Sunburst,
		"Weird (px.density_heatmap)":    DensityHeatmap,
		"Ranked view (px.unknown)":      None,
		"Ranked bars (px.unknown)":      Bar,
	}
	for label, want := range cases {
		assert.Equal(t, want, Normalize(label), label)
	}
}

func TestNormalizeKeywordInference(t *testing.T) {
	cases := map[string]Kind{
		"3d scatter of things":       Scatter3D,
		"animated scatter by year":   ScatterAnimated,
		"faceted scatter":            ScatterFaceted,
		"scatter colored by region":  ScatterColor,
		"grouped bars":               BarGrouped,
		"stacked bar":                BarStacked,
		"multi line":                 LineMulti,
		"stacked area":               AreaStacked,
		"calendar heatmap of visits": CalendarHeatmap,
		"density heatmap":            DensityHeatmap,
		"donut pie":                  Pie,
		"box with points":            BoxStrip,
		"hist of ages":               Histogram,
		"violin":                     Violin,
		"tree of regions":            Treemap,
		"sunburst":                   Sunburst,
		"pivot table":                Table,
		"parallel sets":              ParallelCategories,
		"world map":                  Choropleth,
		"candlestick":                Candlestick,
		"project timeline":           Line,
		"triple view":                Triple,
	}
	for label, want := range cases {
		assert.Equal(t, want, Normalize(label), label)
	}
}

func TestNormalizeUnknownLabel(t *testing.T) {
	assert.Equal(t, None, Normalize("Frobnicator Chart"))
	assert.Equal(t, None, Normalize(""))
	assert.False(t, None.Valid())
	assert.Equal(t, "none", None.String())
}

func TestForDescriptor(t *testing.T) {
	assert.Equal(t, Triple, ForDescriptor(Descriptor{Label: "Bar Chart", Triple: true, Columns: 3}))
	assert.Equal(t, ScatterMatrix, ForDescriptor(Descriptor{Label: "Interactive SPLOM view", Pair: true, Columns: 2}))
	assert.Equal(t, Scatter, ForDescriptor(Descriptor{Label: "3D Scatter Plot", Columns: 2}))
	assert.Equal(t, Scatter, ForDescriptor(Descriptor{Label: "Scatter Plot with Colors (px.scatter)", Columns: 2}))
	assert.Equal(t, Scatter3D, ForDescriptor(Descriptor{Label: "3D Scatter Plot", Columns: 3}))
	assert.Equal(t, Bar, ForDescriptor(Descriptor{Label: "Bar Chart", Pair: true, Columns: 2}))
}
