package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cfgpkg "github.com/KaramelBytes/vizloom-cli/internal/config"
	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/spf13/cobra"
)

// inputFlags are the dataset loading flags shared by every command that reads
// a file.
type inputFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
	domain     string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (sniffed if omitted)")
	fs.StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	fs.StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	fs.IntVar(&f.maxRows, "max-rows", 0, "maximum rows to load (0 = config value, or 100000)")
	fs.StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	fs.IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fs.StringVar(&f.domain, "domain", "", "business domain used to boost relevant columns (see `vizloom domains`)")
}

// options maps the flags, with c filling whatever was not given.
func (f *inputFlags) options(c *cfgpkg.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if c != nil && c.MaxRows > 0 {
		opt.MaxRows = c.MaxRows
	}
	if f.maxRows > 0 {
		opt.MaxRows = f.maxRows
	}
	delim := f.delimiter
	if delim == "" && c != nil {
		delim = c.Delimiter
	}
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	switch strings.ToLower(strings.TrimSpace(f.decimal)) {
	case ",", "comma":
		opt.Parse.DecimalSeparator = ','
	case ".", "dot":
		opt.Parse.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", f.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(f.thousands)) {
	case ",":
		opt.Parse.ThousandsSeparator = ','
	case ".":
		opt.Parse.ThousandsSeparator = '.'
	case "space", " ":
		opt.Parse.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", f.thousands)
	}
	opt.Sheet = f.sheetName
	if f.sheetIndex > 0 {
		opt.SheetIndex = f.sheetIndex
	}
	return opt, nil
}

// load reads path with the flag options and resolves the domain weights.
func (f *inputFlags) load(path string) (*dataset.Dataset, string, metrics.Domain, error) {
	c, err := loadedConfig()
	if err != nil {
		return nil, "", nil, err
	}
	opt, err := f.options(c)
	if err != nil {
		return nil, "", nil, err
	}
	domain, err := c.Domain(f.domain)
	if err != nil {
		return nil, "", nil, err
	}
	name := f.domain
	if name == "" {
		name = c.DefaultDomain
	}
	ds, err := dataset.LoadFile(path, opt)
	if err != nil {
		return nil, "", nil, err
	}
	return ds, name, domain, nil
}

// expandInputs resolves glob patterns and literal paths into a sorted,
// de-duplicated file list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// workers returns the flag value when set, else the configured one.
func workers(flag int) int {
	if flag > 0 {
		return flag
	}
	if c, err := loadedConfig(); err == nil {
		return c.Workers
	}
	return 0
}
