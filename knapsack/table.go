package knapsack

import "sort"

// Entry is the solution recorded at one checkpoint.
//
// Items lists item indices, most recently added first. It may repeat an index
// (the recurrence allows reuse) and is empty when no item could improve on 0.
type Entry struct {
	Budget float64 `json:"budget"`
	Items  []int   `json:"items"`
	Value  float64 `json:"value"`
}

// Stats summarizes how a table was built.
type Stats struct {
	// Checkpoints is the number of solved checkpoints.
	Checkpoints int `json:"checkpoints"`
	// Carried counts checkpoints whose entry was copied from the prior grid point.
	Carried int `json:"carried"`
	// Snapped counts sub-solution lookups resolved by floor rather than exact match.
	Snapped int `json:"snapped"`
	// Empty counts checkpoints where no item was chosen.
	Empty int `json:"empty"`
}

// Table maps each checkpoint to its Entry. Entries are sorted by ascending Budget.
// A Table returned by Solve is never modified afterward.
type Table struct {
	Entries []Entry `json:"entries"`
	Stats   Stats   `json:"stats"`
}

// Len returns the number of checkpoints.
func (t Table) Len() int { return len(t.Entries) }

// Budgets returns the checkpoint values in ascending order.
func (t Table) Budgets() []float64 {
	out := make([]float64, len(t.Entries))
	for i := range t.Entries {
		out[i] = t.Entries[i].Budget
	}

	return out
}

// At returns the entry whose checkpoint equals budget exactly.
//
// Complexity: O(log n).
func (t Table) At(budget float64) (Entry, bool) {
	i := sort.Search(len(t.Entries), func(k int) bool { return t.Entries[k].Budget >= budget })
	if i < len(t.Entries) && t.Entries[i].Budget == budget {
		return t.Entries[i], true
	}

	return Entry{}, false
}

// Floor returns the entry of the greatest checkpoint ≤ budget.
//
// Complexity: O(log n).
func (t Table) Floor(budget float64) (Entry, bool) {
	i := sort.Search(len(t.Entries), func(k int) bool { return t.Entries[k].Budget > budget })
	if i == 0 {
		return Entry{}, false
	}

	return t.Entries[i-1], true
}

// Best returns the entry at the largest checkpoint, which carries the highest value.
func (t Table) Best() (Entry, bool) {
	if len(t.Entries) == 0 {
		return Entry{}, false
	}

	return t.Entries[len(t.Entries)-1], true
}
