package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
)

const (
	envPrefix = "VIZLOOM"
	dirName   = ".vizloom"
)

// Global configuration structure.
type Global struct {
	DefaultDomain string `mapstructure:"default_domain" yaml:"default_domain"`
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`

	// Chart output
	ChartFormat string `mapstructure:"chart_format" yaml:"chart_format"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`

	// Ingestion
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Workers bounds concurrent chart builds; 0 means one per CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// Domains holds custom keyword weights per domain name. They are merged
	// over the built-in preset of the same name.
	Domains map[string]map[string]float64 `mapstructure:"domains" yaml:"domains,omitempty"`
}

// ValidationError reports a configuration value that cannot be used.
type ValidationError struct {
	Key   string
	Value any
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Key, e.Value, e.Msg)
}

// Validate checks value ranges and enumerations.
func (c *Global) Validate() error {
	switch strings.ToLower(c.ChartFormat) {
	case "svg", "png", "json":
	default:
		return &ValidationError{Key: "chart_format", Value: c.ChartFormat, Msg: "use svg, png or json"}
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return &ValidationError{Key: "chart size", Value: fmt.Sprintf("%dx%d", c.ChartWidth, c.ChartHeight), Msg: "must be positive"}
	}
	if c.MaxRows < 0 {
		return &ValidationError{Key: "max_rows", Value: c.MaxRows, Msg: "must be >= 0"}
	}
	if len([]rune(c.Delimiter)) > 1 {
		return &ValidationError{Key: "delimiter", Value: c.Delimiter, Msg: "must be a single character or empty"}
	}
	if c.Workers < 0 {
		return &ValidationError{Key: "workers", Value: c.Workers, Msg: "must be >= 0"}
	}
	return nil
}

// Domain resolves name (or DefaultDomain when name is empty) to keyword
// weights: the preset, if any, with custom weights from Domains merged over it.
func (c *Global) Domain(name string) (metrics.Domain, error) {
	if name == "" {
		name = c.DefaultDomain
	}
	preset, found := metrics.LookupDomain(name)
	var custom map[string]float64
	for k, v := range c.Domains {
		if strings.EqualFold(k, name) {
			custom = v
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown domain %q (see `vizloom domains`)", name)
	}
	return preset.Merge(custom), nil
}

// Path returns cfgFile, or ~/.vizloom/config.yaml when it is empty.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.vizloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("default_domain", "")
	v.SetDefault("output_dir", "vizloom-out")
	v.SetDefault("chart_format", "svg")
	v.SetDefault("chart_width", 800)
	v.SetDefault("chart_height", 500)
	v.SetDefault("max_rows", 0)
	v.SetDefault("delimiter", "")
	v.SetDefault("workers", 0)
	v.SetDefault("domains", map[string]map[string]float64{})

	path, err := Path(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	// optional read
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
