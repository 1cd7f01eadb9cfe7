// Package checkpoint builds the discrete "virtual budget" grid on which the
// knapgrid dynamic program is evaluated.
//
// 🚀 What is a checkpoint?
//
//	A checkpoint is a budget value at which the solver records the best
//	achievable selection. The set of checkpoints is:
//	  • every item cost that does not exceed the global budget, and
//	  • every min_cost + k·granularity (k = 1, 2, …) that does not exceed it.
//
// ✨ Key properties:
//   - strictly ascending, duplicate-free output
//   - fixed-point arithmetic: all values are quantized to int64 ticks
//     (Options.Scale ticks per unit) so that c − cost lookups are exact
//   - strict validation: a non-positive granularity is rejected up front
//     instead of looping forever
//
// ⚙️ Usage:
//
//	set, err := checkpoint.Generate(costs, 100, 2, checkpoint.DefaultOptions())
//	if err != nil {
//	  // ErrInvalidGranularity, ErrInvalidBudget, ErrInvalidCost, …
//	}
//	for i := 0; i < set.Len(); i++ {
//	  fmt.Println(set.Value(i))
//	}
//
// GCD derives a granularity from the costs themselves (the greatest common
// divisor of the quantized costs), which keeps every c − cost on the grid.
//
// Performance:
//
//   - Time:   O(n log n + (budget−min)/granularity)
//   - Memory: O(n + (budget−min)/granularity)
package checkpoint
