package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	metIn           inputFlags
	metJSON         bool
	metAlternatives bool
	metSwap         []string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <file>",
	Short: "Rank numeric columns and show the key metric cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := getLogger(cmd.Context())
		ds, domainName, domain, err := metIn.load(args[0])
		if err != nil {
			return err
		}
		norm := ds.Normalized()
		ranking := metrics.Rank(norm, domain)
		for _, s := range metSwap {
			pos, alt, err := parseSwap(s)
			if err != nil {
				return err
			}
			if err := ranking.Swap(pos, alt); err != nil {
				return err
			}
		}
		cards := metrics.Cards(norm, ranking.Top)
		logger.Debug("metrics ranked", "dataset", ds.Name, "domain", domainName, "scored", len(ranking.Full))

		out := cmd.OutOrStdout()
		if metJSON {
			b, err := utils.PrettyJSON(map[string]any{
				"dataset":      ds.Name,
				"top":          ranking.Top,
				"ranking":      ranking.Full,
				"alternatives": ranking.Alternatives(),
				"cards":        cards,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		if len(ranking.Full) == 0 {
			fmt.Fprintf(out, "⚠ No numeric columns with at least %d values in %s\n", metrics.MinValues, ds.Name)
			return nil
		}
		renderCards(out, cards)
		fmt.Fprintln(out)
		renderRanking(out, ranking.Full, len(ranking.Top))
		if metAlternatives {
			alts := ranking.Alternatives()
			fmt.Fprintln(out)
			if len(alts) == 0 {
				fmt.Fprintln(out, "(no alternatives)")
			} else {
				fmt.Fprintln(out, "Alternatives (use --swap <metric>:<alternative>):")
				renderRanking(out, alts, 0)
			}
		}
		return nil
	},
}

func renderCards(w io.Writer, cards []metrics.MetricCard) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value", "Description"})
	for _, c := range cards {
		t.AppendRow(table.Row{c.Label, c.Formatted, c.Description})
	}
	t.Render()
}

// renderRanking prints scored columns; the first marked rows get a check.
func renderRanking(w io.Writer, cols []metrics.ScoredColumn, marked int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Column", "CV", "Skew", "Kurt", "Entropy", "Unique", "Outlier", "Boost", "Score", "Agg"})
	for i, c := range cols {
		rank := strconv.Itoa(i + 1)
		if i < marked {
			rank += " ✓"
		}
		t.AppendRow(table.Row{
			rank, c.Column,
			f3(c.CVScore), f3(c.SkewScore), f3(c.KurtosisScore), f3(c.EntropyScore),
			f3(c.UniquenessScore), f3(c.OutlierScore), f3(c.BusinessRelevanceBoost),
			f3(c.FinalScore), c.SuggestedAggregation,
		})
	}
	t.Render()
}

func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

// parseSwap reads a 1-based "pos:alt" pair and returns it zero-based.
func parseSwap(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid --swap %q (use <position>:<alternative>)", s)
	}
	pos, err1 := strconv.Atoi(strings.TrimSpace(a))
	alt, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil || pos < 1 || alt < 1 {
		return 0, 0, fmt.Errorf("invalid --swap %q (use 1-based numbers)", s)
	}
	return pos - 1, alt - 1, nil
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metIn.bind(metricsCmd)
	metricsCmd.Flags().BoolVar(&metJSON, "json", false, "print the ranking and cards as JSON")
	metricsCmd.Flags().BoolVar(&metAlternatives, "alternatives", false, "also list the alternatives that can be swapped in")
	metricsCmd.Flags().StringArrayVar(&metSwap, "swap", nil, "replace top metric <position> with alternative <n>, e.g. 2:1 (repeatable)")
}
