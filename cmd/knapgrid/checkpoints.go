package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/knapgrid/checkpoint"
	"github.com/katalvlaran/knapgrid/internal/runner"
	"github.com/katalvlaran/knapgrid/knapsack"
)

func newCheckpointsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoints",
		Short: "Print the budget checkpoints the solver would visit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			items, err := runner.New(cfg, nil, nil).LoadItems()
			if err != nil {
				return err
			}

			costs := itemCosts(items)
			opts := checkpoint.Options{Scale: cfg.Solver.Scale, MaxCheckpoints: cfg.Solver.MaxCheckpoints}
			g := cfg.Solver.Granularity
			if cfg.Solver.AutoGranularity {
				if g, err = checkpoint.GCD(costs, opts.Scale); err != nil {
					return err
				}
			}
			set, err := checkpoint.Generate(costs, cfg.Solver.Budget, g, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range set.Values() {
				fmt.Fprintf(out, "%g\n", v)
			}

			return nil
		},
	}
}

func newGCDCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "gcd",
		Short: "Print the greatest common divisor of the item costs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			items, err := runner.New(cfg, nil, nil).LoadItems()
			if err != nil {
				return err
			}
			g, err := checkpoint.GCD(itemCosts(items), cfg.Solver.Scale)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", g)

			return nil
		},
	}
}

func itemCosts(items []knapsack.Item) []float64 {
	costs := make([]float64, len(items))
	for i := range items {
		costs[i] = items[i].Cost
	}

	return costs
}
