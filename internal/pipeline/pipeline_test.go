package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/KaramelBytes/vizloom-cli/internal/recommend"
	"github.com/KaramelBytes/vizloom-cli/internal/testutil"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

func TestRevenueByRegionEndToEnd(t *testing.T) {
	ds := dataset.MustNew("shop",
		dataset.NewIdentifier("id", []string{"1", "2", "3", "4", "5", "6", "7", "8"}),
		dataset.NewNumeric("revenue", []float64{10, 12, 12, 15, 20, 30, 60, 400}),
		dataset.NewCategorical("region", []string{"n", "s", "e", "w", "n", "s", "e", "w"}),
	)

	top, ranking := metrics.Score(ds, nil)
	require.Len(t, ranking, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "revenue", top[0].Column)
	assert.Equal(t, metrics.Sum, top[0].SuggestedAggregation)

	desc := recommend.Descriptor{
		Name:          recommend.TextLabel("revenue & region"),
		Type:          recommend.TypePair,
		Visualization: "Bar Chart",
	}
	results, err := Run(context.Background(), ds, []recommend.Descriptor{desc}, Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, []string{"revenue", "region"}, []string(res.Descriptor.Columns))
	assert.Equal(t, vizkind.Bar, res.Kind)
	require.NotNil(t, res.Chart)
	assert.Equal(t, vizkind.Bar, res.Chart.Kind)
	assert.Equal(t, "region", res.Chart.XLabel)
	assert.Equal(t, "revenue", res.Chart.YLabel)
	assert.Equal(t, []string{"n", "s", "e", "w"}, res.Chart.Series[0].Labels)
	assert.Equal(t, []float64{30, 42, 72, 415}, res.Chart.Series[0].Y)
}

func TestRunKeepsOrderAndAppliesDescriptorRules(t *testing.T) {
	ds := testutil.SalesDataset()
	descs := []recommend.Descriptor{
		{Name: recommend.TextLabel("revenue & units & region"), Type: recommend.TypeTriple, Visualization: "Bar Chart"},
		{Name: recommend.TextLabel("revenue & units"), Type: recommend.TypePair, Visualization: "Scatter Plot Matrix (Splom)"},
		{Name: recommend.TextLabel("revenue & units"), Type: recommend.TypePair, Visualization: "3D Scatter Plot (px.scatter_3d)"},
		{Name: recommend.TextLabel("units"), Type: recommend.TypeColumn, Visualization: "Frobnicator Chart"},
		{Name: recommend.TextLabel("revenue [by] region"), Type: recommend.TypeGroupBy, Visualization: "Box Plot (px.box)"},
	}
	results, err := Run(context.Background(), ds, descs, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, len(descs))

	assert.Equal(t, vizkind.Triple, results[0].Kind)
	assert.Equal(t, vizkind.ScatterColor, results[0].Chart.Kind)

	assert.Equal(t, vizkind.ScatterMatrix, results[1].Kind)
	assert.Equal(t, vizkind.ScatterMatrix, results[1].Chart.Kind)

	assert.Equal(t, vizkind.Scatter, results[2].Kind)

	assert.Equal(t, vizkind.None, results[3].Kind)
	assert.Equal(t, "Distribution of units", results[3].Chart.Title)

	assert.Equal(t, vizkind.Box, results[4].Chart.Kind)
	assert.Equal(t, "Distribution of revenue by region", results[4].Chart.Title)

	for i, r := range results {
		assert.Equal(t, descs[i].Name.Text, r.Descriptor.Name.Text)
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testutil.SalesDataset(), []recommend.Descriptor{
		{Name: recommend.TextLabel("units"), Type: recommend.TypeColumn},
	}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeWithBaseline(t *testing.T) {
	domain, ok := metrics.LookupDomain("sales")
	require.True(t, ok)
	rep, err := Analyze(context.Background(), testutil.SalesDataset(), "Sales", domain, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, "sales", rep.Dataset)
	assert.Equal(t, 12, rep.Rows)
	assert.Len(t, rep.Ranking.Top, 2)
	assert.Len(t, rep.Cards, 2)
	require.Len(t, rep.Results, recommend.BoardSize)
	for _, r := range rep.Results {
		assert.NotNil(t, r.Chart)
		assert.False(t, r.Chart.Placeholder, r.Descriptor.Name.Text)
		assert.NotEmpty(t, r.Descriptor.Columns)
	}

	_, err = Analyze(context.Background(), nil, "", nil, nil, Options{})
	assert.Error(t, err)
}
