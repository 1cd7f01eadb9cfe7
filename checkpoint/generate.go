package checkpoint

import (
	"errors"
	"math"
	"slices"
)

// Generate builds the checkpoint set for the given item costs, budget and
// granularity.
//
// Algorithm:
//  1. Validate options, granularity and budget (before touching costs).
//  2. Quantize every cost; track min_cost.
//  3. Collect each cost ≤ budget.
//  4. Append min_cost + k·step for k = 1, 2, … while ≤ budget.
//  5. Sort and deduplicate.
//
// Contracts:
//   - granularity > 0 and finite, otherwise ErrInvalidGranularity. It is
//     rounded to whole ticks (1/Scale units), so 1.4e-9 becomes 1e-9 at the
//     default scale; Set.Step holds the value actually used.
//   - budget ≥ 0 and finite, otherwise ErrInvalidBudget. A budget past the
//     tick range is clamped to it.
//   - every cost > 0 and finite, otherwise ErrInvalidCost.
//   - costs above the budget are not checkpoints; callers keep them as items.
//     Costs past the tick range are Unaffordable.
//   - more than MaxCheckpoints points (1e8 when 0) fail with
//     ErrTooManyCheckpoints before the grid is allocated.
//   - empty costs yield an empty Set (min_cost is undefined, nothing to solve).
//
// Complexity: O(n log n + g) time and O(n + g) space, g = (budget−min)/granularity.
func Generate(costs []float64, budget, granularity float64, opts Options) (Set, error) {
	if opts.Scale <= 0 {
		return Set{}, ErrInvalidScale
	}
	if opts.MaxCheckpoints < 0 {
		return Set{}, ErrTooManyCheckpoints
	}

	// Stage 1: scalar validation.
	if math.IsNaN(granularity) || math.IsInf(granularity, 0) || granularity <= 0 {
		return Set{}, ErrInvalidGranularity
	}
	step, err := Quantize(granularity, opts.Scale)
	if err != nil || step <= 0 {
		return Set{}, ErrInvalidGranularity
	}
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget < 0 {
		return Set{}, ErrInvalidBudget
	}
	limit, err := Quantize(budget, opts.Scale)
	if errors.Is(err, ErrOverflow) {
		// finite but past the tick range: every representable cost fits
		limit = maxTicks
	} else if err != nil {
		return Set{}, ErrInvalidBudget
	}

	maxPoints := opts.MaxCheckpoints
	if maxPoints == 0 {
		maxPoints = hardMaxCheckpoints
	}

	set := Set{Step: step, Budget: limit, Scale: opts.Scale}

	// Stage 2: costs.
	ticks, minCost, err := quantizeCosts(costs, opts.Scale)
	if err != nil {
		return Set{}, err
	}
	if len(ticks) == 0 {
		return set, nil
	}
	set.MinCost = minCost

	// Stage 3: affordable costs + grid.
	var (
		points = make([]int64, 0, len(ticks))
		t      int64
		n      int
	)
	for _, t = range ticks {
		if t <= limit {
			points = append(points, t)
		}
	}
	if minCost <= limit {
		// grid points are distinct, so their count alone is a lower bound on the set size
		g := (limit - minCost) / step
		if g > int64(maxPoints) {
			return Set{}, ErrTooManyCheckpoints
		}
		n = int(g)
		points = slices.Grow(points, n)
		for t = minCost + step; t <= limit; t += step {
			points = append(points, t)
		}
	}

	// Stage 4: ascending, distinct.
	slices.Sort(points)
	points = slices.Compact(points)
	if len(points) > maxPoints {
		return Set{}, ErrTooManyCheckpoints
	}
	set.Points = points

	return set, nil
}
