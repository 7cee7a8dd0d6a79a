package metrics

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Domain maps a lowercase keyword phrase to a relevance weight. A column whose
// cleaned name contains the keyword gets the weight added to its score.
type Domain map[string]float64

// Boost sums the weights of every keyword contained in name. Keywords are
// visited in sorted order so the float sum is reproducible.
func (d Domain) Boost(name string) float64 {
	if len(d) == 0 {
		return 0
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var boost float64
	for _, k := range keys {
		if k != "" && strings.Contains(name, k) {
			boost += d[k]
		}
	}
	return boost
}

// Merge returns a new domain holding d overlaid with extra. Keywords are
// lowercased; extra wins on conflicts.
func (d Domain) Merge(extra Domain) Domain {
	out := make(Domain, len(d)+len(extra))
	for k, v := range d {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range extra {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Preset is a named keyword table shipped with the tool.
type Preset struct {
	Name     string   `yaml:"name" json:"name"`
	Aliases  []string `yaml:"aliases" json:"aliases"`
	Keywords Domain   `yaml:"keywords" json:"keywords"`
}

//go:embed domains.yaml
var presetsYAML []byte

var presets []Preset

func init() {
	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(presetsYAML, &doc); err != nil {
		panic(fmt.Sprintf("metrics: invalid domains.yaml: %v", err))
	}
	presets = doc.Presets
}

// Presets returns the built-in domain presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupDomain finds a preset by display name or alias (case-insensitive).
// The returned map is a copy.
func LookupDomain(name string) (Domain, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Domain{}, true
	}
	for _, p := range presets {
		if strings.ToLower(p.Name) == key {
			return p.Keywords.Merge(nil), true
		}
		for _, a := range p.Aliases {
			if strings.ToLower(a) == key {
				return p.Keywords.Merge(nil), true
			}
		}
	}
	return nil, false
}
