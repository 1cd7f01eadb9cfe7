// Command knapgrid solves budget-checkpoint selection tables from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapgrid/internal/config"
	"github.com/katalvlaran/knapgrid/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath  string
	data        string
	regions     string
	budget      float64
	granularity float64
	auto        bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "knapgrid",
		Short:         "Best-value item selections at granularity-spaced budget checkpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to YAML config file")
	pf.StringVar(&f.data, "data", "", "dataset path (GeoJSON or YAML/JSON item list)")
	pf.StringVar(&f.regions, "regions", "", "region GeoJSON; derives route benefits from geometry")
	pf.Float64Var(&f.budget, "budget", 0, "global budget")
	pf.Float64Var(&f.granularity, "granularity", 0, "checkpoint spacing")
	pf.BoolVar(&f.auto, "auto-granularity", false, "derive granularity from the GCD of item costs")

	cmd.AddCommand(newSolveCmd(f), newCheckpointsCmd(f), newGCDCmd(f))

	return cmd
}

// loadConfig reads the config file, applies flags that were set explicitly
// and sets up logging.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Dataset.Path = f.data
	}
	if flags.Changed("regions") {
		cfg.Dataset.RegionsPath = f.regions
	}
	if flags.Changed("budget") {
		cfg.Solver.Budget = f.budget
	}
	if flags.Changed("granularity") {
		cfg.Solver.Granularity = f.granularity
	}
	if flags.Changed("auto-granularity") {
		cfg.Solver.AutoGranularity = f.auto
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	return cfg, nil
}
