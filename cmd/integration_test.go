package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/dashboard"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
)

const salesCSV = `id,revenue,region,units,order date
1,12,north,1,2024-01-01
2,15,south,2,2024-01-08
3,15,east,2,2024-01-15
4,18,west,3,2024-01-22
5,22,north,3,2024-01-29
6,22,south,4,2024-02-05
7,30,east,5,2024-02-12
8,41,west,5,2024-02-19
9,55,north,6,2024-02-26
10,90,south,8,2024-03-04
11,160,east,12,2024-03-11
12,420,west,20,2024-03-18
`

// execCmd runs the root command with args against fresh flag and config state.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = nil
	cfgFile = ""
	debug = false
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is execCmd for commands that must succeed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	require.NoError(t, err, "command %v", args)
	return out
}

// resetFlags restores defaults; flags keep their Changed state across
// Execute calls otherwise.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupHome isolates HOME and writes the sales fixture into it.
func setupHome(t *testing.T) (home, csvPath string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	csvPath = filepath.Join(home, "sales.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(salesCSV), 0o644))
	return home, csvPath
}

func TestCLI_Metrics(t *testing.T) {
	_, csvPath := setupHome(t)

	out := runCmd(t, "metrics", csvPath)
	assert.Contains(t, out, "revenue")
	assert.Contains(t, out, "units")
	assert.Contains(t, out, "1 ✓")
	assert.NotContains(t, out, "│ id ")

	out = runCmd(t, "metrics", csvPath, "--json", "--domain", "sales")
	var doc struct {
		Top   []metrics.ScoredColumn `json:"top"`
		Cards []metrics.MetricCard   `json:"cards"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Top, 2)
	assert.Len(t, doc.Cards, 2)

	out = runCmd(t, "metrics", csvPath, "--alternatives")
	assert.Contains(t, out, "(no alternatives)")

	_, err := execCmd(t, "metrics", csvPath, "--swap", "1:1")
	assert.Error(t, err)
	_, err = execCmd(t, "metrics", csvPath, "--swap", "first")
	assert.Error(t, err)
	_, err = execCmd(t, "metrics", csvPath, "--domain", "astrology")
	assert.Error(t, err)
	_, err = execCmd(t, "metrics", csvPath, "--delimiter", "#")
	assert.Error(t, err)
}

func TestCLI_RecommendBoard(t *testing.T) {
	_, csvPath := setupHome(t)

	out := runCmd(t, "recommend", csvPath, "--json")
	var doc struct {
		Charts []struct {
			Kind  string `json:"kind"`
			Chart struct {
				Title       string `json:"title"`
				Placeholder bool   `json:"placeholder"`
			} `json:"chart"`
		} `json:"charts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Charts, 5)
	for _, c := range doc.Charts {
		assert.NotEmpty(t, c.Chart.Title)
		assert.False(t, c.Chart.Placeholder, c.Chart.Title)
	}

	out = runCmd(t, "recommend", csvPath, "--alternatives")
	assert.Contains(t, out, "Recommendation")
	assert.Contains(t, out, "Drawn as")

	_, err := execCmd(t, "recommend", csvPath, "--swap", "9:1")
	assert.Error(t, err)
}

func TestCLI_RecommendFromFile(t *testing.T) {
	home, csvPath := setupHome(t)
	recs := filepath.Join(home, "recs.yaml")
	require.NoError(t, os.WriteFile(recs, []byte(`- Name: revenue & region
  Type: Pair
  Recommended Visualization: Bar Chart
- Name: Units
  Type: Column
  Recommended Visualization: Histogram (px.histogram)
`), 0o644))

	out := runCmd(t, "recommend", csvPath, "--recs", recs)
	assert.Contains(t, out, "revenue by region")
	assert.Contains(t, out, "Distribution of units")

	_, err := execCmd(t, "recommend", csvPath, "--recs", recs, "--swap", "1:1")
	assert.Error(t, err)
	_, err = execCmd(t, "recommend", csvPath, "--recs", filepath.Join(home, "missing.yaml"))
	assert.Error(t, err)
}

func TestCLI_RenderAndList(t *testing.T) {
	home, csvPath := setupHome(t)
	outDir := filepath.Join(home, "out")

	out := runCmd(t, "render", csvPath, "--out", outDir, "-q", "--width", "300", "--height", "200")
	assert.Contains(t, out, "✓ Wrote dashboard 'sales' (5 charts)")
	assert.NotContains(t, out, "[1/1]")

	d, err := dashboard.Load(filepath.Join(outDir, "sales"))
	require.NoError(t, err)
	require.Len(t, d.Charts, 5)
	assert.Equal(t, 12, d.Rows)
	for _, e := range d.Charts {
		assert.True(t, strings.HasSuffix(e.File, ".svg"), e.File)
		_, err := os.Stat(filepath.Join(d.RootDir(), filepath.FromSlash(e.File)))
		assert.NoError(t, err, e.File)
	}

	out = runCmd(t, "list", "--out", outDir)
	assert.Contains(t, out, "- sales: ")
	assert.Contains(t, out, "5 charts")

	out = runCmd(t, "list", "--out", outDir, "--charts", "sales")
	assert.Contains(t, out, "charts/01-")

	out = runCmd(t, "list", "--charts", filepath.Join(d.RootDir(), filepath.FromSlash(d.Charts[0].File)))
	assert.Contains(t, out, d.Charts[0].File)

	out = runCmd(t, "list", "--out", filepath.Join(home, "nothing"))
	assert.Contains(t, out, "(no dashboards)")
}

func TestCLI_RenderBatchAndOptions(t *testing.T) {
	home, csvPath := setupHome(t)
	for _, sub := range []string{"d1", "d2"} {
		dir := filepath.Join(home, sub)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.csv"), []byte(salesCSV), 0o644))
	}
	outDir := filepath.Join(home, "out")

	out := runCmd(t, "render", filepath.Join(home, "d*", "metrics.csv"), "--out", outDir)
	assert.Contains(t, out, "[2/2]")
	for _, name := range []string{"metrics", "metrics__2"} {
		_, err := os.Stat(filepath.Join(outDir, name, dashboard.ManifestFileName))
		assert.NoError(t, err, name)
	}

	recs := filepath.Join(home, "recs.json")
	require.NoError(t, os.WriteFile(recs, []byte(`[{"Name":"revenue & region","Type":"Pair","Recommended Visualization":"Bar Chart"}]`), 0o644))
	runCmd(t, "render", csvPath, "--out", outDir, "--recs", recs, "--format", "json", "--name", "Regional revenue")
	b, err := os.ReadFile(filepath.Join(outDir, "sales", "charts", "01-revenue-by-region.json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"title": "revenue by region"`)
	d, err := dashboard.Load(filepath.Join(outDir, "sales"))
	require.NoError(t, err)
	assert.Equal(t, "Regional revenue", d.Name)

	_, err = execCmd(t, "render", filepath.Join(home, "d*", "metrics.csv"), "--out", outDir, "--name", "x")
	assert.Error(t, err)
	_, err = execCmd(t, "render", csvPath, "--out", outDir, "--format", "gif")
	assert.Error(t, err)
	_, err = execCmd(t, "render", filepath.Join(home, "*.parquet"))
	assert.Error(t, err)
}

func TestCLI_ConfigAndDomains(t *testing.T) {
	setupHome(t)

	runCmd(t, "config", "set", "chart_format", "PNG")
	runCmd(t, "config", "set", "domains.retail.Basket", "2.5")
	runCmd(t, "config", "set", "default_domain", "retail")
	out := runCmd(t, "config", "show")
	assert.Contains(t, out, "chart_format: png")
	assert.Contains(t, out, "default_domain: retail")
	assert.Contains(t, out, "domains.retail: basket ×2.5")

	_, err := execCmd(t, "config", "set", "no_such_key", "1")
	assert.Error(t, err)
	_, err = execCmd(t, "config", "set", "chart_width", "wide")
	assert.Error(t, err)
	_, err = execCmd(t, "config", "set", "chart_format", "gif")
	assert.Error(t, err)
	_, err = execCmd(t, "config", "set", "default_domain", "astrology")
	assert.Error(t, err)

	out = runCmd(t, "domains")
	assert.Contains(t, out, "Sales / Ventes")
	assert.Contains(t, out, "retail (config)")
}

func TestReportDashboardQuiet(t *testing.T) {
	d := dashboard.New("sales", "sales.csv", filepath.Join(t.TempDir(), "sales"))
	d.Charts = []dashboard.Entry{{Title: "revenue by region"}, {Title: "Visualization Error", Placeholder: true}}

	var buf bytes.Buffer
	reportDashboard(&buf, d, "sales.csv", false)
	assert.Contains(t, buf.String(), "⚠ 1 of 2 charts could not be drawn from sales.csv")
	assert.Contains(t, buf.String(), "✓ Wrote dashboard 'sales' (2 charts)")

	buf.Reset()
	reportDashboard(&buf, d, "sales.csv", true)
	assert.NotContains(t, buf.String(), "⚠")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "quiet prints only the final line")
}

func TestParseSwap(t *testing.T) {
	pos, alt, err := parseSwap("2:3")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 2, alt)

	for _, bad := range []string{"2", "0:1", "a:b", "1:-1"} {
		_, _, err := parseSwap(bad)
		assert.Error(t, err, bad)
	}
}
