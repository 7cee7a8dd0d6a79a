package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "svg", c.ChartFormat)
	assert.Equal(t, 800, c.ChartWidth)
	assert.Equal(t, 500, c.ChartHeight)
	assert.Equal(t, 0, c.Workers)
	assert.Equal(t, "vizloom-out", c.OutputDir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Global{
		DefaultDomain: "Sales",
		OutputDir:     "out",
		ChartFormat:   "png",
		ChartWidth:    640,
		ChartHeight:   480,
		MaxRows:       1000,
		Delimiter:     ";",
		Workers:       4,
		Domains:       map[string]map[string]float64{"retail": {"basket": 2.5}},
	}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sales", out.DefaultDomain)
	assert.Equal(t, "png", out.ChartFormat)
	assert.Equal(t, 1000, out.MaxRows)
	assert.Equal(t, ";", out.Delimiter)
	assert.Equal(t, 4, out.Workers)
	assert.Equal(t, 2.5, out.Domains["retail"]["basket"])
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart_format: gif\n"), 0o644))
	_, err := Load(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "chart_format", verr.Key)
}

func TestDomainResolution(t *testing.T) {
	c := &Global{
		DefaultDomain: "sales",
		Domains: map[string]map[string]float64{
			"sales":  {"Basket": 4},
			"retail": {"aisle": 1},
		},
	}
	d, err := c.Domain("")
	require.NoError(t, err)
	assert.Equal(t, 4.0, d["basket"])
	assert.Greater(t, len(d), 1, "preset keywords are kept")

	d, err = c.Domain("Retail")
	require.NoError(t, err)
	assert.Equal(t, 1.0, d["aisle"])

	d, err = (&Global{}).Domain("")
	require.NoError(t, err)
	assert.Empty(t, d)

	_, err = c.Domain("astrology")
	assert.Error(t, err)
}
