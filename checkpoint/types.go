package checkpoint

import (
	"errors"
	"math"
	"slices"
)

// Sentinel errors returned by Generate and GCD.
var (
	// ErrInvalidGranularity indicates a granularity that is ≤ 0, NaN, ±Inf,
	// or that rounds to zero ticks at the configured scale.
	ErrInvalidGranularity = errors.New("checkpoint: granularity must be a positive finite number")

	// ErrInvalidBudget indicates a negative, NaN or infinite budget.
	ErrInvalidBudget = errors.New("checkpoint: budget must be a non-negative finite number")

	// ErrInvalidCost indicates a cost that is ≤ 0, NaN or ±Inf.
	ErrInvalidCost = errors.New("checkpoint: cost must be a positive finite number")

	// ErrInvalidScale indicates Options.Scale ≤ 0.
	ErrInvalidScale = errors.New("checkpoint: scale must be positive")

	// ErrOverflow indicates a value too large to be represented in ticks.
	ErrOverflow = errors.New("checkpoint: value overflows fixed-point range")

	// ErrTooManyCheckpoints indicates the grid exceeds Options.MaxCheckpoints
	// (or the hard limit when it is 0).
	ErrTooManyCheckpoints = errors.New("checkpoint: too many checkpoints")

	// ErrNoCosts indicates GCD was called without any cost.
	ErrNoCosts = errors.New("checkpoint: no costs given")
)

// DefaultScale is the default number of ticks per budget unit (1e-9 resolution).
const DefaultScale int64 = 1_000_000_000

// Unaffordable is the tick value of a cost beyond the fixed-point range.
// It compares greater than every budget.
const Unaffordable int64 = math.MaxInt64

// DefaultMaxCheckpoints is the default cap on the generated set size.
const DefaultMaxCheckpoints = 10_000_000

// hardMaxCheckpoints bounds the set size when Options.MaxCheckpoints is 0.
const hardMaxCheckpoints = 100_000_000

// maxTicks bounds |ticks| so that the sum of two in-range values cannot overflow.
const maxTicks = math.MaxInt64 / 4

// Options configures checkpoint generation.
//
// Fields:
//   - Scale          — ticks per budget unit; 1/Scale is the smallest distinguishable budget.
//   - MaxCheckpoints — upper bound on the generated set size; 0 falls back to
//     a hard limit of 1e8 points.
type Options struct {
	Scale          int64
	MaxCheckpoints int
}

// DefaultOptions returns Options with Scale = DefaultScale and
// MaxCheckpoints = DefaultMaxCheckpoints.
func DefaultOptions() Options {
	return Options{
		Scale:          DefaultScale,
		MaxCheckpoints: DefaultMaxCheckpoints,
	}
}

// Set is the ascending, duplicate-free sequence of checkpoints produced by Generate.
//
// Points holds the checkpoints in ticks. MinCost and Step are the quantized
// minimum item cost and granularity; Scale converts ticks back to budget units.
// A Set is read-only once built.
type Set struct {
	Points  []int64
	MinCost int64
	Step    int64
	Budget  int64
	Scale   int64
}

// Len returns the number of checkpoints.
func (s Set) Len() int { return len(s.Points) }

// Value returns the i-th checkpoint in budget units.
func (s Set) Value(i int) float64 { return s.Float(s.Points[i]) }

// Values returns every checkpoint in budget units, ascending.
func (s Set) Values() []float64 {
	out := make([]float64, len(s.Points))

	var i int
	for i = range s.Points {
		out[i] = s.Float(s.Points[i])
	}

	return out
}

// Float converts ticks to budget units.
func (s Set) Float(t int64) float64 { return float64(t) / float64(s.Scale) }

// Index returns the position of the checkpoint equal to t.
//
// Complexity: O(log n).
func (s Set) Index(t int64) (int, bool) {
	return slices.BinarySearch(s.Points, t)
}

// Floor returns the position of the greatest checkpoint ≤ t.
// ok is false when every checkpoint is greater than t.
//
// Complexity: O(log n).
func (s Set) Floor(t int64) (int, bool) {
	i, found := slices.BinarySearch(s.Points, t)
	if found {
		return i, true
	}
	if i == 0 {
		return 0, false
	}

	return i - 1, true
}
