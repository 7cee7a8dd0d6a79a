package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/vizloom-cli/internal/dashboard"
	"github.com/KaramelBytes/vizloom-cli/internal/pipeline"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	renIn      inputFlags
	renFile    string
	renOut     string
	renFormat  string
	renWidth   int
	renHeight  int
	renName    string
	renSwap    []string
	renWorkers int
	renQuiet   bool
)

var renderCmd = &cobra.Command{
	Use:   "render <files...>",
	Short: "Analyze datasets and write a dashboard of charts for each",
	Long: `Analyze one or more datasets (globs allowed) and write, per dataset, a dashboard
directory with dashboard.json, summary.md and one chart file per recommendation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := getLogger(cmd.Context())
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		c, err := loadedConfig()
		if err != nil {
			return err
		}
		ropt, err := renderOptions(cmd, c.ChartFormat, c.ChartWidth, c.ChartHeight)
		if err != nil {
			return err
		}
		outRoot := renOut
		if outRoot == "" {
			outRoot = c.OutputDir
		}
		if renName != "" && len(files) > 1 {
			return fmt.Errorf("--name can only be used with a single input file")
		}

		used := map[string]int{}
		out := cmd.OutOrStdout()
		for i, path := range files {
			if !renQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(files), path)
			}
			ds, domainName, domain, err := renIn.load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			norm := ds.Normalized()
			descs, _, err := recommendations(norm, domain, renFile, renSwap, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rep, err := pipeline.Analyze(cmd.Context(), ds, domainName, domain, descs, pipeline.Options{Logger: logger, Workers: workers(renWorkers)})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			dirName := base
			if n := used[base]; n > 0 {
				dirName = fmt.Sprintf("%s__%d", base, n+1)
			}
			used[base]++
			name := renName
			if name == "" {
				name = base
			}
			d := dashboard.New(name, path, filepath.Join(outRoot, dirName))
			if err := d.AddReport(rep, ropt); err != nil {
				return err
			}
			if err := d.Save(); err != nil {
				return err
			}
			reportDashboard(out, d, path, renQuiet)
		}
		return nil
	},
}

// reportDashboard prints the outcome of one dataset. quiet keeps only the
// final line.
func reportDashboard(w io.Writer, d *dashboard.Dashboard, path string, quiet bool) {
	placeholders := 0
	for _, e := range d.Charts {
		if e.Placeholder {
			placeholders++
		}
	}
	if placeholders > 0 && !quiet {
		fmt.Fprintf(w, "⚠ %d of %d charts could not be drawn from %s\n", placeholders, len(d.Charts), path)
	}
	fmt.Fprintf(w, "✓ Wrote dashboard '%s' (%d charts) to %s\n", d.Name, len(d.Charts), d.RootDir())
}

// renderOptions merges the chart output flags over the configured values.
func renderOptions(cmd *cobra.Command, format string, width, height int) (render.Options, error) {
	if cmd.Flags().Changed("format") {
		format = renFormat
	}
	if cmd.Flags().Changed("width") {
		width = renWidth
	}
	if cmd.Flags().Changed("height") {
		height = renHeight
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return render.Options{}, err
	}
	if width <= 0 || height <= 0 {
		return render.Options{}, fmt.Errorf("invalid chart size %dx%d", width, height)
	}
	return render.Options{Format: f, Width: vg.Length(width), Height: vg.Length(height)}, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renIn.bind(renderCmd)
	renderCmd.Flags().StringVar(&renFile, "recs", "", "JSON or YAML file with recommendations (default: built-in board)")
	renderCmd.Flags().StringVarP(&renOut, "out", "o", "", "output root directory (default from config: output_dir)")
	renderCmd.Flags().StringVarP(&renFormat, "format", "f", "svg", "chart format: svg | png | json")
	renderCmd.Flags().IntVar(&renWidth, "width", 800, "chart width in points")
	renderCmd.Flags().IntVar(&renHeight, "height", 500, "chart height in points")
	renderCmd.Flags().StringVar(&renName, "name", "", "dashboard name (single input only; default: file name)")
	renderCmd.Flags().StringArrayVar(&renSwap, "swap", nil, "replace board item <position> with alternative <n> of its type (repeatable)")
	renderCmd.Flags().IntVar(&renWorkers, "workers", 0, "concurrent chart builds (0 = config value, or number of CPUs)")
	renderCmd.Flags().BoolVarP(&renQuiet, "quiet", "q", false, "only print the final line per dataset")
}
