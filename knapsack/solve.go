package knapsack

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/knapgrid/checkpoint"
)

// Solve generates the checkpoints for items, budget and granularity and
// evaluates the recurrence on them.
//
// Contracts:
//   - every item has cost > 0 and benefit ≥ 0 (ErrInvalidItem otherwise);
//   - granularity > 0 (ErrInvalidGranularity), budget ≥ 0 (ErrInvalidBudget);
//   - validation happens before any evaluation, so a failed call never
//     returns a partial table;
//   - empty items or a budget below every cost yield an empty table and nil error.
//
// Complexity: O(K·n·log K) time for K checkpoints and n items.
func Solve(items []Item, budget, granularity float64, opts Options) (Table, error) {
	if err := ValidateOptions(opts); err != nil {
		return Table{}, err
	}
	if err := ValidateItems(items); err != nil {
		return Table{}, err
	}

	costs := make([]float64, len(items))
	for i := range items {
		costs[i] = items[i].Cost
	}
	set, err := checkpoint.Generate(costs, budget, granularity, opts.checkpointOptions())
	if err != nil {
		if errors.Is(err, checkpoint.ErrInvalidCost) {
			return Table{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
		}
		return Table{}, err
	}

	return solveSet(items, set, opts)
}

// SolveGrid evaluates the recurrence over a checkpoint set generated earlier
// from the same items. The set's Scale overrides opts.Scale.
func SolveGrid(items []Item, set checkpoint.Set, opts Options) (Table, error) {
	if err := ValidateOptions(opts); err != nil {
		return Table{}, err
	}
	if err := ValidateItems(items); err != nil {
		return Table{}, err
	}
	if set.Len() == 0 {
		return Table{Entries: []Entry{}}, nil
	}
	if set.Scale <= 0 {
		return Table{}, checkpoint.ErrInvalidScale
	}
	if set.Step <= 0 {
		return Table{}, ErrInvalidGranularity
	}

	return solveSet(items, set, opts)
}

// evaluator holds the state of one sweep. entries[k] is written exactly once,
// after every entry below k is final.
type evaluator struct {
	items   []Item
	costs   []int64
	set     checkpoint.Set
	opts    Options
	entries []Entry
	stats   Stats
}

func solveSet(items []Item, set checkpoint.Set, opts Options) (Table, error) {
	e := &evaluator{
		items:   items,
		costs:   make([]int64, len(items)),
		set:     set,
		opts:    opts,
		entries: make([]Entry, set.Len()),
	}

	var (
		i   int
		err error
	)
	for i = range items {
		// costs past the tick range come back Unaffordable and are never scanned
		e.costs[i], err = checkpoint.QuantizeCost(items[i].Cost, set.Scale)
		if err != nil {
			return Table{}, fmt.Errorf("%w: item %d cost %v below resolution", ErrInvalidItem, i, items[i].Cost)
		}
	}

	if err = e.run(); err != nil {
		return Table{}, err
	}

	return Table{Entries: e.entries, Stats: e.stats}, nil
}

// run sweeps the checkpoints in ascending order.
func (e *evaluator) run() error {
	var (
		k    int
		c    int64
		best candidate
		err  error
	)
	for k, c = range e.set.Points {
		if best, err = e.scan(c); err != nil {
			return err
		}
		e.stats.Snapped += best.snapped
		e.entries[k] = e.combine(c, best)
	}
	e.stats.Checkpoints = len(e.entries)

	return nil
}

// lookup resolves a reduced budget to the value of an already solved checkpoint.
// snapped reports that the floor differs from the reduced budget itself.
func (e *evaluator) lookup(reduced int64) (value float64, snapped bool, ok bool) {
	var idx int
	if e.opts.Lookup == LookupExact {
		idx, ok = e.set.Index(reduced)
	} else {
		idx, ok = e.set.Floor(reduced)
	}
	if !ok {
		return 0, false, false
	}

	return e.entries[idx].Value, e.set.Points[idx] != reduced, true
}

// prior returns the entry of the grid point one step below c, if any.
func (e *evaluator) prior(c int64) (Entry, bool) {
	lower := c - e.set.Step
	if lower < e.set.MinCost {
		return Entry{}, false
	}

	var (
		idx int
		ok  bool
	)
	if e.opts.Lookup == LookupExact {
		idx, ok = e.set.Index(lower)
	} else {
		idx, ok = e.set.Floor(lower)
	}
	if !ok {
		return Entry{}, false
	}

	return e.entries[idx], true
}

// combine applies the carry-forward rule to the best candidate at c.
func (e *evaluator) combine(c int64, best candidate) Entry {
	if best.item < 0 {
		e.stats.Empty++
	}

	below, ok := e.prior(c)
	switch {
	case !ok:
		items := []int{}
		if best.item >= 0 {
			items = append(items, best.item)
		}
		return Entry{Budget: e.set.Float(c), Items: items, Value: best.value}

	case best.value > below.Value:
		items := make([]int, 0, len(below.Items)+1)
		if best.item >= 0 {
			items = append(items, best.item)
		}
		items = append(items, below.Items...)
		return Entry{Budget: e.set.Float(c), Items: items, Value: best.value}

	default:
		e.stats.Carried++
		return Entry{Budget: e.set.Float(c), Items: slices.Clone(below.Items), Value: below.Value}
	}
}
