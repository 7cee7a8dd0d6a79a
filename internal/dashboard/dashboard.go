// Package dashboard persists an analysis as a directory: a dashboard.json
// manifest, one rendered file per chart and a plain-text summary.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/KaramelBytes/vizloom-cli/internal/pipeline"
	"github.com/KaramelBytes/vizloom-cli/internal/render"
	"github.com/KaramelBytes/vizloom-cli/internal/utils"
)

const (
	ManifestFileName = "dashboard.json"
	SummaryFileName  = "summary.md"
	chartsDir        = "charts"
)

// Dashboard is the on-disk record of one analysis.
type Dashboard struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Source    string                 `json:"source"`
	Domain    string                 `json:"domain,omitempty"`
	Rows      int                    `json:"rows"`
	Cards     []metrics.MetricCard   `json:"cards"`
	Metrics   []metrics.ScoredColumn `json:"metrics"`
	Charts    []*Entry               `json:"charts"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`

	rootDir string
}

// New constructs an empty dashboard rooted at rootDir. Call Save to persist.
func New(name, source, rootDir string) *Dashboard {
	now := time.Now()
	return &Dashboard{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
		rootDir:   rootDir,
	}
}

// Load reads the manifest in dir.
func Load(dir string) (*Dashboard, error) {
	path := filepath.Join(dir, ManifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dashboard not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read dashboard: %w", err)
	}
	var d Dashboard
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse dashboard: %w", err)
	}
	d.rootDir = dir
	return &d, nil
}

// RootDir returns the dashboard directory.
func (d *Dashboard) RootDir() string { return d.rootDir }

// Save writes the manifest and the summary.
func (d *Dashboard) Save() error {
	if d.rootDir == "" {
		return errors.New("dashboard root directory not set")
	}
	if err := utils.EnsureDir(d.rootDir); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(d)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(filepath.Join(d.rootDir, ManifestFileName), data); err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(d.rootDir, SummaryFileName), []byte(d.Summary()))
}

// AddReport records rep's metrics and renders each of its charts into the
// charts directory. Previously added charts are kept.
func (d *Dashboard) AddReport(rep *pipeline.Report, opt render.Options) error {
	if rep == nil {
		return errors.New("report is nil")
	}
	if d.rootDir == "" {
		return errors.New("dashboard root directory not set")
	}
	if opt.Format == "" {
		opt.Format = render.DefaultOptions().Format
	}
	dir := filepath.Join(d.rootDir, chartsDir)
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}

	d.Rows = rep.Rows
	d.Domain = rep.Domain
	d.Cards = rep.Cards
	if rep.Ranking != nil {
		d.Metrics = rep.Ranking.Full
	}
	for _, res := range rep.Results {
		c := res.Chart
		name := fmt.Sprintf("%02d-%s%s", len(d.Charts)+1, slug(c.Title), opt.Format.Ext())
		if err := render.WriteFile(filepath.Join(dir, name), c, opt); err != nil {
			return fmt.Errorf("chart %q: %w", c.Title, err)
		}
		d.Charts = append(d.Charts, &Entry{
			ID:             c.ID,
			Title:          c.Title,
			Recommendation: res.Descriptor,
			Kind:           res.Kind,
			Built:          c.Kind,
			File:           filepath.ToSlash(filepath.Join(chartsDir, name)),
			Placeholder:    c.Placeholder,
			AddedAt:        time.Now(),
		})
	}
	d.UpdatedAt = time.Now()
	return nil
}

// Summary is a Markdown digest of the metric cards and charts.
func (d *Dashboard) Summary() string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(d.Name)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Source: %s (%d rows)\n", d.Source, d.Rows)
	if d.Domain != "" {
		fmt.Fprintf(&sb, "Domain: %s\n", d.Domain)
	}

	sb.WriteString("\n## Key metrics\n\n")
	if len(d.Cards) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, c := range d.Cards {
		fmt.Fprintf(&sb, "- **%s**: %s (%s)\n", c.Label, c.Formatted, c.Description)
	}

	sb.WriteString("\n## Charts\n\n")
	if len(d.Charts) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, e := range d.Charts {
		fmt.Fprintf(&sb, "%d. [%s](%s) from %q", i+1, e.Title, e.File, e.Recommendation.Name.Text)
		if e.Built != e.Kind {
			fmt.Fprintf(&sb, " (drawn as %s instead of %s)", e.Built, e.Kind)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(s) > 48 {
		s = strings.TrimRight(s[:48], "-")
	}
	if s == "" {
		return "chart"
	}
	return s
}
