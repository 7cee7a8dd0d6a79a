// Package pipeline runs recommendations through column resolution, kind
// normalization and chart building, and assembles the metrics panel.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/vizloom-cli/internal/chart"
	"github.com/KaramelBytes/vizloom-cli/internal/dataset"
	"github.com/KaramelBytes/vizloom-cli/internal/metrics"
	"github.com/KaramelBytes/vizloom-cli/internal/recommend"
	"github.com/KaramelBytes/vizloom-cli/internal/vizkind"
)

// Options tunes a run. Zero values are usable.
type Options struct {
	Logger *slog.Logger
	// Workers bounds concurrent chart builds; <= 0 means GOMAXPROCS.
	Workers int
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Result is one recommendation after resolution: its columns, the kind it
// was drawn as and the chart.
type Result struct {
	Descriptor recommend.Descriptor `json:"recommendation"`
	Kind       vizkind.Kind         `json:"kind"`
	Chart      *chart.Chart         `json:"chart"`
}

// Report is everything a dashboard shows for one dataset.
type Report struct {
	Dataset string               `json:"dataset"`
	Rows    int                  `json:"rows"`
	Domain  string               `json:"domain,omitempty"`
	Ranking *metrics.Ranking     `json:"metrics"`
	Cards   []metrics.MetricCard `json:"cards"`
	Results []Result             `json:"charts"`
}

// Run resolves and builds every descriptor against ds. Results keep the input
// order. The only error is ctx's.
func Run(ctx context.Context, ds *dataset.Dataset, descs []recommend.Descriptor, opt Options) ([]Result, error) {
	log := opt.logger()
	resolver := recommend.NewResolver(log)
	factory := chart.NewFactory(log)

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Result, len(descs))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, d := range descs {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			out[i] = resolveOne(d, ds, resolver, factory)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveOne(d recommend.Descriptor, ds *dataset.Dataset, r *recommend.Resolver, f *chart.Factory) Result {
	cols := r.Resolve(d, ds)
	d.Columns = cols
	kind := vizkind.ForDescriptor(vizkind.Descriptor{
		Label:   d.Visualization,
		Pair:    d.Type == recommend.TypePair,
		Triple:  d.Type == recommend.TypeTriple,
		Columns: len(cols),
	})
	c := f.Build(ds, chart.Request{Kind: kind, Columns: cols, Pair: d.Type == recommend.TypePair})
	return Result{Descriptor: d, Kind: kind, Chart: c}
}

// Analyze scores ds, computes metric cards and runs descs. When descs is nil
// the baseline candidates are used, balanced into a recommendation board.
// Column names are cleaned once here; descriptors must use cleaned names.
func Analyze(ctx context.Context, ds *dataset.Dataset, domainName string, domain metrics.Domain, descs []recommend.Descriptor, opt Options) (*Report, error) {
	if ds == nil {
		return nil, fmt.Errorf("analyze: no dataset")
	}
	norm := ds.Normalized()
	ranking := metrics.Rank(norm, domain)
	if descs == nil {
		board := recommend.NewBoard(recommend.Baseline(norm, domain), norm, recommend.NewResolver(opt.logger()))
		descs = board.Items
	}
	results, err := Run(ctx, norm, descs, opt)
	if err != nil {
		return nil, err
	}
	opt.logger().Info("analysis complete", "dataset", ds.Name, "metrics", len(ranking.Full), "charts", len(results))
	return &Report{
		Dataset: ds.Name,
		Rows:    norm.Rows(),
		Domain:  domainName,
		Ranking: ranking,
		Cards:   metrics.Cards(norm, ranking.Top),
		Results: results,
	}, nil
}
