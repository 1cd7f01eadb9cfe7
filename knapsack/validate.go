package knapsack

import (
	"fmt"
	"math"
)

// ValidateOptions checks mode enums and the worker count. Scale and
// MaxCheckpoints are checked by checkpoint.Generate.
//
// Complexity: O(1).
func ValidateOptions(opts Options) error {
	switch opts.Lookup {
	case LookupFloor, LookupExact:
	default:
		return fmt.Errorf("%w: lookup mode %d", ErrInvalidOption, int(opts.Lookup))
	}
	switch opts.Benefit {
	case DoubleCount, SingleCount:
	default:
		return fmt.Errorf("%w: benefit policy %d", ErrInvalidOption, int(opts.Benefit))
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidOption, opts.Workers)
	}

	return nil
}

// ValidateItems rejects items whose cost is not a positive finite number or
// whose benefit is negative or not finite. The error names the first bad index.
//
// Complexity: O(n).
func ValidateItems(items []Item) error {
	var (
		i  int
		it Item
	)
	for i, it = range items {
		if math.IsNaN(it.Cost) || math.IsInf(it.Cost, 0) || it.Cost <= 0 {
			return fmt.Errorf("%w: item %d has cost %v", ErrInvalidItem, i, it.Cost)
		}
		if math.IsNaN(it.Benefit) || math.IsInf(it.Benefit, 0) || it.Benefit < 0 {
			return fmt.Errorf("%w: item %d has benefit %v", ErrInvalidItem, i, it.Benefit)
		}
	}

	return nil
}
