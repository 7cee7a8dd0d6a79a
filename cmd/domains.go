package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List business domains and their keyword boosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Domain", "Aliases", "Keywords"})
		for _, p := range metrics.Presets() {
			t.AppendRow(table.Row{p.Name, strings.Join(p.Aliases, ", "), keywords(p.Keywords)})
		}
		if c, err := loadedConfig(); err == nil {
			names := make([]string, 0, len(c.Domains))
			for name := range c.Domains {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				t.AppendRow(table.Row{name + " (config)", "", keywords(c.Domains[name])})
			}
		}
		t.Render()
		return nil
	},
}

// keywords formats weights as "kw ×w", heaviest first.
func keywords(m map[string]float64) string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool {
		if m[ks[i]] != m[ks[j]] {
			return m[ks[i]] > m[ks[j]]
		}
		return ks[i] < ks[j]
	})
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = fmt.Sprintf("%s ×%g", k, m[k])
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}
