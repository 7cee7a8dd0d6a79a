package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/KaramelBytes/vizloom-cli/internal/pipeline"
	"github.com/KaramelBytes/vizloom-cli/internal/recommend"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	recIn           inputFlags
	recFile         string
	recJSON         bool
	recAlternatives bool
	recSwap         []string
	recWorkers      int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <file>",
	Short: "Resolve chart recommendations against a dataset's columns",
	Long: `Resolve chart recommendations against a dataset's columns and show which chart
each one turns into. Recommendations come from --recs (a JSON or YAML list) or,
when omitted, from the built-in board of baseline suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := getLogger(cmd.Context())
		ds, _, domain, err := recIn.load(args[0])
		if err != nil {
			return err
		}
		norm := ds.Normalized()
		descs, board, err := recommendations(norm, domain, recFile, recSwap, logger)
		if err != nil {
			return err
		}
		results, err := pipeline.Run(cmd.Context(), norm, descs, pipeline.Options{Logger: logger, Workers: workers(recWorkers)})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if recJSON {
			doc := map[string]any{"dataset": ds.Name, "charts": results}
			if board != nil {
				doc["alternatives"] = board.Alternatives
			}
			b, err := utils.PrettyJSON(doc)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		renderResults(out, results)
		if recAlternatives && board != nil {
			fmt.Fprintln(out)
			renderAlternatives(out, board)
		}
		return nil
	},
}

// recommendations loads descriptors from file, or builds the baseline board
// for ds and applies swaps to it. board is nil when descriptors come from a file.
func recommendations(ds *dataset.Dataset, domain metrics.Domain, file string, swaps []string, logger *slog.Logger) ([]recommend.Descriptor, *recommend.Board, error) {
	if file != "" {
		if len(swaps) > 0 {
			return nil, nil, fmt.Errorf("--swap only applies to the built-in board, not --recs")
		}
		descs, err := recommend.LoadDescriptors(file)
		if err != nil {
			return nil, nil, err
		}
		return descs, nil, nil
	}
	board := recommend.NewBoard(recommend.Baseline(ds, domain), ds, recommend.NewResolver(logger))
	for _, s := range swaps {
		pos, alt, err := parseSwap(s)
		if err != nil {
			return nil, nil, err
		}
		if err := board.Swap(pos, alt); err != nil {
			return nil, nil, err
		}
	}
	if len(board.Items) == 0 {
		return nil, nil, fmt.Errorf("no recommendations could be made for %s", ds.Name)
	}
	return board.Items, board, nil
}

func renderResults(w io.Writer, results []pipeline.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Recommendation", "Columns", "Visualization", "Chart", "Drawn as"})
	for i, r := range results {
		title := r.Chart.Title
		if r.Chart.Placeholder {
			title = "⚠ " + title
		}
		t.AppendRow(table.Row{
			i + 1, r.Descriptor.Type, r.Descriptor.Name.Text,
			strings.Join(r.Descriptor.Columns, ", "), r.Descriptor.Visualization,
			title, r.Chart.Kind,
		})
	}
	t.Render()
}

func renderAlternatives(w io.Writer, b *recommend.Board) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "#", "Recommendation", "Visualization", "Score"})
	n := 0
	for _, typ := range recommend.Types {
		for i, d := range b.Alternatives[typ] {
			t.AppendRow(table.Row{typ, i + 1, d.Name.Text, d.Visualization, strconv.FormatFloat(d.Score, 'f', 2, 64)})
			n++
		}
	}
	if n == 0 {
		fmt.Fprintln(w, "(no alternatives)")
		return
	}
	fmt.Fprintln(w, "Alternatives (use --swap <position>:<n>; the alternative must match the item's type):")
	t.Render()
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recIn.bind(recommendCmd)
	recommendCmd.Flags().StringVar(&recFile, "recs", "", "JSON or YAML file with recommendations (default: built-in board)")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "print resolved recommendations and charts as JSON")
	recommendCmd.Flags().BoolVar(&recAlternatives, "alternatives", false, "also list board alternatives")
	recommendCmd.Flags().StringArrayVar(&recSwap, "swap", nil, "replace board item <position> with alternative <n> of its type, e.g. 3:1 (repeatable)")
	recommendCmd.Flags().IntVar(&recWorkers, "workers", 0, "concurrent chart builds (0 = config value, or number of CPUs)")
}
