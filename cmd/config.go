package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/vizloom-cli/internal/config"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set VizLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		c, err := loadedConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "default_domain: %s\n", c.DefaultDomain)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "chart_format: %s\n", c.ChartFormat)
		fmt.Fprintf(out, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", c.ChartHeight)
		fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		names := make([]string, 0, len(c.Domains))
		for name := range c.Domains {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "domains.%s: %s\n", name, keywords(c.Domains[name]))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. Keys: default_domain, output_dir,
chart_format, chart_width, chart_height, max_rows, delimiter, workers, and
domains.<name>.<keyword> to add a custom keyword weight.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := loadedConfig()
		if err != nil {
			return err
		}
		next := *c
		if err := setKey(&next, key, val); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "default_domain":
		if val != "" {
			if _, ok := metrics.LookupDomain(val); !ok {
				if _, custom := c.Domains[val]; !custom {
					return fmt.Errorf("unknown domain %q (see `vizloom domains`)", val)
				}
			}
		}
		c.DefaultDomain = val
	case "output_dir":
		c.OutputDir = val
	case "chart_format":
		c.ChartFormat = strings.ToLower(val)
	case "chart_width":
		c.ChartWidth, err = atoi()
	case "chart_height":
		c.ChartHeight, err = atoi()
	case "max_rows":
		c.MaxRows, err = atoi()
	case "delimiter":
		if val == "tab" {
			val = "\t"
		}
		c.Delimiter = val
	case "workers":
		c.Workers, err = atoi()
	default:
		name, kw, ok := strings.Cut(strings.TrimPrefix(key, "domains."), ".")
		if !strings.HasPrefix(key, "domains.") || !ok || name == "" || kw == "" {
			return fmt.Errorf("unknown key: %s", key)
		}
		w, perr := strconv.ParseFloat(val, 64)
		if perr != nil || w < 0 {
			return fmt.Errorf("invalid weight for %s: %v", key, val)
		}
		domains := make(map[string]map[string]float64, len(c.Domains)+1)
		for k, v := range c.Domains {
			domains[k] = v
		}
		weights := make(map[string]float64, len(domains[name])+1)
		for k, v := range domains[name] {
			weights[k] = v
		}
		weights[strings.ToLower(kw)] = w
		domains[name] = weights
		c.Domains = domains
	}
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
