package recommend

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/testutil"
)

func salesDataset() *dataset.Dataset {
	return dataset.MustNew("sales",
		dataset.NewIdentifier("id", []string{"1", "2", "3", "4", "5", "6"}),
		dataset.NewNumeric("Revenue", []float64{10, 12, 15, 20, 80, 250}),
		dataset.NewCategorical("Region", []string{"n", "s", "e", "w", "n", "s"}),
		dataset.NewNumeric("Units", []float64{1, 2, 2, 3, 8, 20}),
	)
}

func pair(name string) Descriptor {
	return Descriptor{Name: TextLabel(name), Type: TypePair, Visualization: "Bar Chart"}
}

func TestResolvePairSeparators(t *testing.T) {
	ds := salesDataset()
	for _, name := range []string{
		"Revenue & Region",
		"(Revenue,Region)",
		"('Revenue','Region')",
		"Revenue, Region",
		"Revenue vs Region",
		"Revenue by Region",
		"Revenue and Region",
		"Revenue with Region",
	} {
		assert.Equal(t, []string{"Revenue", "Region"}, Resolve(pair(name), ds), name)
	}
}

func TestParseOutcomes(t *testing.T) {
	names := salesDataset().Names()

	res := Parse(pair("Revenue & Region"), names)
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "separator &", res.Strategy)

	res = Parse(pair("(Revenue,Region)"), names)
	assert.Equal(t, Matched, res.Outcome)
	assert.Equal(t, "tuple", res.Strategy)

	// ", " applies before the tuple form is considered
	res = Parse(pair("(Revenue, Region)"), names)
	assert.Equal(t, "separator ,", res.Strategy)
	assert.Equal(t, []string{"(Revenue", "Region)"}, res.Parts)
	assert.Equal(t, NoMatch, res.Outcome)

	res = Parse(pair("Revenue & Margin"), names)
	assert.Equal(t, Ambiguous, res.Outcome)
	assert.Equal(t, []string{"Revenue", "Margin"}, res.Parts)
	assert.Equal(t, []string{"Revenue"}, res.Columns)

	res = Parse(pair("XYZ"), names)
	assert.Equal(t, NoMatch, res.Outcome)
	assert.Empty(t, res.Columns)

	res = Parse(Descriptor{Name: TextLabel("Revenue"), Type: TypePair}, names)
	assert.Equal(t, Ambiguous, res.Outcome, "a single column is not enough for a pair")
}

func TestResolvePairFallbacks(t *testing.T) {
	ds := salesDataset()
	assert.Equal(t, []string{"Revenue", "Units"}, Resolve(pair("XYZ"), ds))
	assert.Equal(t, []string{"Region", "id"}, Resolve(pair("Region & Margin"), ds))

	noNumeric := dataset.MustNew("cats",
		dataset.NewCategorical("a", []string{"x"}),
		dataset.NewCategorical("b", []string{"y"}),
		dataset.NewCategorical("c", []string{"z"}),
	)
	assert.Equal(t, []string{"a", "b"}, Resolve(pair("XYZ"), noNumeric))

	single := dataset.MustNew("one", dataset.NewNumeric("only", []float64{1}))
	assert.Equal(t, []string{"only"}, Resolve(pair("XYZ"), single))

	empty := dataset.MustNew("empty")
	assert.Empty(t, Resolve(pair("XYZ"), empty))
}

func TestResolveColumn(t *testing.T) {
	ds := salesDataset()
	col := Descriptor{Name: TextLabel("Units"), Type: TypeColumn}
	assert.Equal(t, []string{"Units"}, Resolve(col, ds))

	res := Parse(Descriptor{Name: TextLabel("units"), Type: TypeColumn}, ds.Names())
	assert.Equal(t, NoMatch, res.Outcome, "column match is exact")
	assert.Equal(t, []string{}, Resolve(Descriptor{Name: TextLabel("units"), Type: TypeColumn}, ds))
	assert.Equal(t, []string{}, Resolve(Descriptor{Name: TextLabel("Nope"), Type: TypeColumn}, ds))
	assert.Equal(t, []string{}, Resolve(Descriptor{Name: ListLabel("Ghost"), Type: TypeColumn}, ds))
}

func TestParseFirstApplicableStrategyDecides(t *testing.T) {
	ds := dataset.MustNew("amp",
		dataset.NewNumeric("a", []float64{1, 2}),
		dataset.NewNumeric("b", []float64{3, 4}),
		dataset.NewNumeric("a & b", []float64{5, 6}),
		dataset.NewNumeric("c", []float64{7, 8}),
	)

	res := Parse(pair("a & b, c"), ds.Names())
	assert.Equal(t, "separator &", res.Strategy)
	assert.Equal(t, []string{"a", "b, c"}, res.Parts)
	assert.Equal(t, Ambiguous, res.Outcome)
	assert.Equal(t, []string{"a", "b"}, Resolve(pair("a & b, c"), ds), "one valid part is completed, not re-split")

	assert.Equal(t, []string{"a", "b"}, Resolve(pair("a & b"), ds))

	gb := Descriptor{Name: TextLabel("x by a & b"), Type: TypeGroupBy}
	res = Parse(gb, ds.Names())
	assert.Equal(t, "separator by", res.Strategy)
	assert.Equal(t, []string{"x", "a & b"}, res.Parts)
	assert.Equal(t, []string{"a & b"}, Resolve(gb, ds))

	col := Descriptor{Name: TextLabel("a & b"), Type: TypeColumn}
	assert.Equal(t, []string{"a & b"}, Resolve(col, ds))
}

func TestResolveTriple(t *testing.T) {
	ds := salesDataset()
	cases := map[string][]string{
		"Revenue & Units & Region":  {"Revenue", "Units", "Region"},
		"Revenue, Units, Region":    {"Revenue", "Units", "Region"},
		"Revenue vs Units by Region": {"Revenue", "Units", "Region"},
		"Revenue & Units":           {"Revenue", "Units"},
		"Revenue vs Units":          {"id"},
	}
	for name, want := range cases {
		d := Descriptor{Name: TextLabel(name), Type: TypeTriple}
		assert.Equal(t, want, Resolve(d, ds), name)
	}
}

func TestResolveGroupBy(t *testing.T) {
	ds := salesDataset()
	cases := map[string][]string{
		"Revenue [by] Region":       {"Revenue", "Region"},
		"Revenue grouped by Region": {"Revenue", "Region"},
		"Revenue by Region":         {"Revenue", "Region"},
		"Units":                     {"Units"},
		"Units by Nothing":          {"Units"},
	}
	for name, want := range cases {
		d := Descriptor{Name: TextLabel(name), Type: TypeGroupBy}
		assert.Equal(t, want, Resolve(d, ds), name)
	}
}

func TestResolveListLabel(t *testing.T) {
	ds := salesDataset()
	d := Descriptor{Name: ListLabel("Units", "Region", "Ghost"), Type: TypeTriple}
	assert.Equal(t, []string{"Units", "Region"}, Resolve(d, ds))
}

func TestResolverLogsDecisions(t *testing.T) {
	r := NewResolver(testutil.NewTestLogger(t))
	assert.Equal(t, []string{"Revenue", "Units"}, r.Resolve(pair("nothing here"), salesDataset()))
}

func TestDescriptorJSONShapes(t *testing.T) {
	raw := `[
		{"Name": "Revenue & Region", "Type": "Pair", "Recommended Visualization": "Bar Chart", "Total Score": 2.5},
		{"Name": ["Revenue", "Units"], "Type": "pair", "Recommended Visualization": "Scatter Plot"},
		{"Name": 42, "Type": "Column", "Recommended Visualization": "Histogram", "columns": "Units"}
	]`
	var ds []Descriptor
	require.NoError(t, json.Unmarshal([]byte(raw), &ds))
	require.Len(t, ds, 3)

	assert.Equal(t, "Revenue & Region", ds[0].Name.Text)
	assert.False(t, ds[0].Name.IsList())
	assert.Equal(t, 2.5, ds[0].Score)

	assert.Equal(t, TypePair, ds[1].Type)
	assert.Equal(t, []string{"Revenue", "Units"}, ds[1].Name.Parts)
	assert.Equal(t, "Revenue & Units", ds[1].Name.String())

	assert.Equal(t, "42", ds[2].Name.Text)
	assert.Equal(t, Columns{"Units"}, ds[2].Columns)

	out, err := json.Marshal(ds[1])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Name":["Revenue","Units"]`)
	assert.Contains(t, string(out), `"Recommended Visualization":"Scatter Plot"`)
}

func TestLoadDescriptors(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "recs.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`recommendations:
  - Name: Revenue [by] Region
    Type: group by
    Recommended Visualization: Bar Chart (px.bar)
    Total Score: 1.5
  - Name: [Revenue, Units]
    Type: Pair
    Recommended Visualization: Scatter Plot Matrix (Splom)
`), 0o644))
	list, err := LoadDescriptors(yml)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, TypeGroupBy, list[0].Type)
	assert.Equal(t, 1.5, list[0].Score)
	assert.Equal(t, []string{"Revenue", "Units"}, list[1].Name.Parts)

	seq := filepath.Join(dir, "recs.yml")
	require.NoError(t, os.WriteFile(seq, []byte("- Name: Units\n  Type: Column\n  Recommended Visualization: Histogram\n"), 0o644))
	list, err = LoadDescriptors(seq)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TypeColumn, list[0].Type)

	js := filepath.Join(dir, "recs.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"recommendations":[{"Name":"Units","Type":"Column","Recommended Visualization":"Histogram"}]}`), 0o644))
	list, err = LoadDescriptors(js)
	require.NoError(t, err)
	require.Len(t, list, 1)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"Name":"Units","Type":"Quad"}]`), 0o644))
	_, err = LoadDescriptors(bad)
	assert.Error(t, err)

	_, err = LoadDescriptors(filepath.Join(dir, "recs.txt"))
	assert.Error(t, err)
}
