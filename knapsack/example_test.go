package knapsack_test

import (
	"fmt"

	"github.com/katalvlaran/knapgrid/knapsack"
)

// ExampleSolve solves two items on the unit grid up to budget 3.
//
//	item 0: cost 1, benefit 5
//	item 1: cost 2, benefit 9
//
// Every combination with a smaller checkpoint counts the chosen item twice,
// so item 0 dominates.
func ExampleSolve() {
	items := []knapsack.Item{{Cost: 1, Benefit: 5}, {Cost: 2, Benefit: 9}}

	table, err := knapsack.Solve(items, 3, 1, knapsack.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, e := range table.Entries {
		fmt.Printf("%.0f %v %.0f\n", e.Budget, e.Items, e.Value)
	}
	// Output:
	// 1 [0] 5
	// 2 [0 0] 15
	// 3 [0 0 0] 25
}

// ExampleSolve_exact shows LookupExact rejecting an off-grid reduced budget.
func ExampleSolve_exact() {
	items := []knapsack.Item{{Cost: 1, Benefit: 5}, {Cost: 1.7, Benefit: 4}}
	opts := knapsack.DefaultOptions()
	opts.Lookup = knapsack.LookupExact

	_, err := knapsack.Solve(items, 3, 1, opts)
	fmt.Println(err)
	// Output:
	// knapsack: reduced budget is not a checkpoint: checkpoint 3, item 1, reduced budget 1.3
}
