// Package runner wires the dataset, benefit generator, cache, solver and
// metrics into one solve run driven by a config.Config.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/katalvlaran/knapgrid/benefit"
	"github.com/katalvlaran/knapgrid/checkpoint"
	"github.com/katalvlaran/knapgrid/dataset"
	"github.com/katalvlaran/knapgrid/internal/cache"
	"github.com/katalvlaran/knapgrid/internal/config"
	"github.com/katalvlaran/knapgrid/internal/logger"
	"github.com/katalvlaran/knapgrid/internal/metrics"
	"github.com/katalvlaran/knapgrid/knapsack"
)

// ErrNoDataset is returned when no dataset path is configured.
var ErrNoDataset = errors.New("runner: dataset path is not set")

// Request is one solve invocation.
type Request struct {
	Items           []knapsack.Item
	Budget          float64
	Granularity     float64
	AutoGranularity bool
	Options         knapsack.Options
}

// Result is the outcome of a solve.
type Result struct {
	Table       knapsack.Table `json:"table"`
	Budget      float64        `json:"budget"`
	Granularity float64        `json:"granularity"`
	Items       int            `json:"items"`
	Cached      bool           `json:"cached"`
	Took        time.Duration  `json:"took"`
}

// Runner executes solve requests. cache and metrics are optional.
type Runner struct {
	cfg     *config.Config
	cache   *cache.TableCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns a Runner. tc and m may be nil.
func New(cfg *config.Config, tc *cache.TableCache, m *metrics.Metrics) *Runner {
	return &Runner{
		cfg:     cfg,
		cache:   tc,
		metrics: m,
		logger:  logger.WithComponent("runner"),
	}
}

// LoadItems reads the configured dataset. GeoJSON datasets only carry costs:
// their benefits come from the configured regions file when one is set, and
// from the seeded generator otherwise.
func (r *Runner) LoadItems() ([]knapsack.Item, error) {
	ds := r.cfg.Dataset
	if ds.Path == "" {
		return nil, ErrNoDataset
	}

	switch detectFormat(ds) {
	case "items":
		return dataset.LoadItemsFile(ds.Path)
	default:
		if ds.RegionsPath != "" {
			return r.loadRoutes()
		}
		costs, err := dataset.LoadGeoJSONFile(ds.Path, dataset.GeoJSONOptions{
			CostProperty: ds.CostProperty,
			CostDivisor:  ds.CostDivisor,
		})
		if err != nil {
			return nil, err
		}
		gen := benefit.New(benefit.Options{Seed: r.cfg.Benefits.Seed, Scale: r.cfg.Benefits.Scale})
		benefits, err := gen.Uniform(len(costs))
		if err != nil {
			return nil, err
		}
		r.logger.Debug("benefits generated", "items", len(costs), "seed", r.cfg.Benefits.Seed)
		return benefit.Attach(costs, benefits)
	}
}

// loadRoutes reads route geometries and regions and derives each route's
// benefit from the region targets it reaches.
func (r *Runner) loadRoutes() ([]knapsack.Item, error) {
	var (
		ds = r.cfg.Dataset
		bc = r.cfg.Benefits
	)
	ropts := dataset.DefaultRouteOptions()
	ropts.CostDivisor = ds.CostDivisor
	if ds.CostProperty != "" {
		ropts.CostProperty = ds.CostProperty
	}
	routes, err := dataset.LoadRoutesFile(ds.Path, ropts)
	if err != nil {
		return nil, err
	}

	gopts := dataset.DefaultRegionOptions()
	gopts.TargetAges = bc.TargetAges
	copy(gopts.ActiveFactors[:], bc.ActiveFactors)
	regions, err := dataset.LoadRegionsFile(ds.RegionsPath, gopts)
	if err != nil {
		return nil, err
	}

	benefits, err := benefit.FromRegions(routes, regions, benefit.RegionOptions{Buses: bc.Buses})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("benefits derived from regions", "routes", len(routes), "regions", len(regions))

	return benefit.Attach(benefit.Costs(routes), benefits)
}

// detectFormat honours an explicit format and otherwise goes by extension.
func detectFormat(ds config.DatasetConfig) string {
	if ds.Format != "" {
		return ds.Format
	}
	switch strings.ToLower(filepath.Ext(ds.Path)) {
	case ".yaml", ".yml", ".json":
		return "items"
	default:
		return "geojson"
	}
}

// RequestFromConfig builds a Request for items using the solver section.
func (r *Runner) RequestFromConfig(items []knapsack.Item) (Request, error) {
	opts, err := r.cfg.SolverOptions()
	if err != nil {
		return Request{}, err
	}

	return Request{
		Items:           items,
		Budget:          r.cfg.Solver.Budget,
		Granularity:     r.cfg.Solver.Granularity,
		AutoGranularity: r.cfg.Solver.AutoGranularity,
		Options:         opts,
	}, nil
}

// Solve resolves the granularity, consults the cache and runs the solver.
func (r *Runner) Solve(ctx context.Context, req Request) (Result, error) {
	g := req.Granularity
	if req.AutoGranularity {
		costs := make([]float64, len(req.Items))
		for i := range req.Items {
			costs[i] = req.Items[i].Cost
		}
		var err error
		if g, err = checkpoint.GCD(costs, req.Options.Scale); err != nil {
			r.observeError()
			return Result{}, fmt.Errorf("deriving granularity: %w", err)
		}
		r.logger.Info("granularity derived from costs", "granularity", g)
	}

	var (
		start  = time.Now()
		table  knapsack.Table
		cached bool
		err    error
	)
	compute := func() (knapsack.Table, error) {
		return knapsack.Solve(req.Items, req.Budget, g, req.Options)
	}
	if r.cache != nil {
		var key string
		if key, err = r.cache.Key(req.Items, req.Budget, g, req.Options); err == nil {
			table, cached, err = r.cache.GetOrCompute(ctx, key, compute)
		}
	} else {
		table, err = compute()
	}
	took := time.Since(start)
	if err != nil {
		r.observeError()
		r.logger.Error("solve failed", "items", len(req.Items), "budget", req.Budget, "granularity", g, "error", err)
		return Result{}, err
	}

	if r.metrics != nil {
		r.metrics.ObserveTable(table, took, cached)
	}
	r.logger.Info("solve finished",
		"items", len(req.Items),
		"checkpoints", table.Len(),
		"carried", table.Stats.Carried,
		"snapped", table.Stats.Snapped,
		"cached", cached,
		"took", took,
	)

	return Result{
		Table:       table,
		Budget:      req.Budget,
		Granularity: g,
		Items:       len(req.Items),
		Cached:      cached,
		Took:        took,
	}, nil
}

// Run loads the configured dataset and solves it.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	items, err := r.LoadItems()
	if err != nil {
		r.observeError()
		return Result{}, err
	}
	req, err := r.RequestFromConfig(items)
	if err != nil {
		return Result{}, err
	}

	return r.Solve(ctx, req)
}

// Flush writes the metrics textfile when metrics are enabled.
func (r *Runner) Flush() error {
	if r.metrics == nil || !r.cfg.Metrics.Enabled {
		return nil
	}

	return r.metrics.WriteTextfile(r.cfg.Metrics.TextfilePath)
}

func (r *Runner) observeError() {
	if r.metrics != nil {
		r.metrics.ObserveError()
	}
}
