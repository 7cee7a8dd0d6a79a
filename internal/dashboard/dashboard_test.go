package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/pipeline"
	"github.com/KaramelBytes/vizloom-cli/internal/recommend"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/KaramelBytes/vizloom-cli/internal/testutil"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	d := New("Sales review", "sales.csv", dir)
	require.NoError(t, d.Save())

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Sales review", got.Name)
	assert.Equal(t, dir, got.RootDir())

	_, err = Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	assert.Error(t, (&Dashboard{}).Save())
}

func TestAddReportWritesCharts(t *testing.T) {
	dir := t.TempDir()
	descs := []recommend.Descriptor{
		{Name: recommend.TextLabel("revenue & region"), Type: recommend.TypePair, Visualization: "Bar Chart"},
		{Name: recommend.TextLabel("units"), Type: recommend.TypeColumn, Visualization: "Histogram (px.histogram)"},
	}
	rep, err := pipeline.Analyze(context.Background(), testutil.SalesDataset(), "Sales", nil, descs, pipeline.Options{})
	require.NoError(t, err)

	d := New("Sales", "sales.csv", dir)
	require.NoError(t, d.AddReport(rep, render.Options{Format: render.SVG, Width: 300, Height: 200}))
	require.NoError(t, d.Save())

	require.Len(t, d.Charts, 2)
	assert.Equal(t, "charts/01-revenue-by-region.svg", d.Charts[0].File)
	assert.Equal(t, "charts/02-distribution-of-units.svg", d.Charts[1].File)
	for _, e := range d.Charts {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(e.File)))
		assert.NoError(t, err, e.File)
	}

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, loaded.Charts, 2)
	assert.Equal(t, []string{"revenue", "region"}, []string(loaded.Charts[0].Recommendation.Columns))
	assert.Equal(t, 12, loaded.Rows)
	assert.Len(t, loaded.Cards, 2)

	summary, err := os.ReadFile(filepath.Join(dir, SummaryFileName))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "## Key metrics")
	assert.Contains(t, string(summary), "[revenue by region](charts/01-revenue-by-region.svg)")

	assert.Error(t, d.AddReport(nil, render.Options{}))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "count-of-id-by-region", slug("Count of id by region"))
	assert.Equal(t, "chart", slug("!!!"))
	assert.LessOrEqual(t, len(slug("a very long title that keeps going and going and going forever")), 48)
}
