package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapgrid/internal/cache"
	"github.com/katalvlaran/knapgrid/internal/metrics"
	"github.com/katalvlaran/knapgrid/internal/runner"
)

func newSolveCmd(root *rootFlags) *cobra.Command {
	var (
		workers    int
		lookup     string
		policy     string
		asJSON     bool
		metricsOut string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Build the checkpoint table and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				cfg.Solver.Workers = workers
			}
			if flags.Changed("lookup") {
				cfg.Solver.Lookup = lookup
			}
			if flags.Changed("benefit-policy") {
				cfg.Solver.BenefitPolicy = policy
			}
			if flags.Changed("metrics-out") {
				cfg.Metrics.Enabled = true
				cfg.Metrics.TextfilePath = metricsOut
			}
			if noCache {
				cfg.Redis.Enabled = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			var m *metrics.Metrics
			if cfg.Metrics.Enabled {
				m = metrics.New()
			}

			var tc *cache.TableCache
			if cfg.Redis.Enabled {
				store, err := cache.NewRedisStore(ctx, cfg.Redis)
				if err != nil {
					slog.Warn("redis unavailable, solving without cache", "addr", cfg.Redis.Addr, "error", err)
				} else {
					defer store.Close()
					var obs cache.Observer
					if m != nil {
						obs = m
					}
					tc = cache.New(store, cfg.Redis.CacheTTL, cfg.Redis.KeyPrefix, obs)
				}
			}

			r := runner.New(cfg, tc, m)
			res, err := r.Run(ctx)
			if flushErr := r.Flush(); flushErr != nil {
				slog.Error("writing metrics textfile failed", "path", cfg.Metrics.TextfilePath, "error", flushErr)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return runner.WriteJSON(out, res)
			}

			return runner.WriteText(out, res)
		},
	}

	f := cmd.Flags()
	f.IntVar(&workers, "workers", 1, "goroutines for the per-checkpoint item scan")
	f.StringVar(&lookup, "lookup", "floor", "sub-solution lookup mode: floor or exact")
	f.StringVar(&policy, "benefit-policy", "double", "benefit accounting: double or single")
	f.BoolVar(&asJSON, "json", false, "print the table as JSON")
	f.StringVar(&metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	f.BoolVar(&noCache, "no-cache", false, "skip the Redis table cache")

	return cmd
}
