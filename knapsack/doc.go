// Package knapsack evaluates the budget-checkpoint dynamic program: for every
// checkpoint produced by package checkpoint it records the best achievable
// total benefit and the item sequence realizing it.
//
// 🚀 The recurrence
//
//	For each checkpoint c, ascending:
//	  1. affordable = { i : cost[i] ≤ c }
//	  2. candidate(i) = benefit[i]
//	     if c − cost[i] ≥ min_cost:
//	         candidate(i) += benefit[i] + value(c − cost[i])
//	     best = first i (by index) with the strictly greatest candidate > 0
//	  3. prior = entry at c − granularity (when ≥ min_cost)
//	     best_value > prior.value ⇒ ([best] + prior.items, best_value)
//	     otherwise               ⇒ prior, carried forward verbatim
//	     no prior                ⇒ ([best], best_value)
//
//	The benefit of the chosen item is counted twice whenever a sub-solution is
//	combined (DoubleCount). This is the reference behavior and the default;
//	SingleCount counts it once.
//
// ✨ Key features:
//   - exact fixed-point checkpoint keys (see package checkpoint)
//   - LookupFloor (default) snaps a reduced budget to the nearest checkpoint
//     below it; LookupExact requires alignment and fails with
//     ErrMisalignedCheckpoint otherwise
//   - deterministic first-seen tie-break, also under the optional parallel
//     per-checkpoint item scan (Options.Workers > 1)
//   - monotone table: a larger checkpoint never has a smaller value
//
// ⚙️ Usage:
//
//	items := []knapsack.Item{{Cost: 1, Benefit: 5}, {Cost: 2, Benefit: 9}}
//	table, err := knapsack.Solve(items, 3, 1, knapsack.DefaultOptions())
//	if err != nil {
//	  // ErrInvalidItem, ErrInvalidGranularity, ErrInvalidBudget, …
//	}
//	best, _ := table.Best()
//	fmt.Println(best.Items, best.Value)
//
// Performance:
//
//   - Time:   O(K·n·log K) for K checkpoints and n items
//   - Memory: O(K·L) where L is the longest itemset
package knapsack
