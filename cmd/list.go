package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/vizloom-cli/internal/dashboard"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	listOut    string
	listCharts string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dashboards, or the charts of one dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := listOut
		if root == "" {
			c, err := loadedConfig()
			if err != nil {
				return err
			}
			root = c.OutputDir
		}
		out := cmd.OutOrStdout()
		if listCharts != "" {
			dir := filepath.Join(root, listCharts)
			if _, err := os.Stat(listCharts); err == nil {
				// a path inside a dashboard, e.g. one of its chart files
				found, err := utils.FindUp(listCharts, dashboard.ManifestFileName)
				if err != nil {
					return err
				}
				dir = found
			}
			d, err := dashboard.Load(dir)
			if err != nil {
				return err
			}
			if len(d.Charts) == 0 {
				fmt.Fprintln(out, "(no charts)")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Title", "Kind", "File"})
			for i, e := range d.Charts {
				kind := string(e.Built)
				if e.Built != e.Kind {
					kind = fmt.Sprintf("%s (asked %s)", e.Built, e.Kind)
				}
				t.AppendRow(table.Row{i + 1, e.Title, kind, e.File})
			}
			t.Render()
			return nil
		}

		dirs, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(out, "(no dashboards)")
				return nil
			}
			return err
		}
		found := false
		for _, e := range dirs {
			if !e.IsDir() {
				continue
			}
			d, err := dashboard.Load(filepath.Join(root, e.Name()))
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "- %s: %s (%d rows, %d charts)\n", e.Name(), d.Source, d.Rows, len(d.Charts))
			found = true
		}
		if !found {
			fmt.Fprintln(out, "(no dashboards)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listOut, "out", "o", "", "output root directory (default from config: output_dir)")
	listCmd.Flags().StringVar(&listCharts, "charts", "", "list the charts of a dashboard: its name under the output root, or any path inside it")
}
