package knapsack

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/knapgrid/checkpoint"
)

// Sentinel errors for the solver. Granularity and budget errors are shared
// with package checkpoint so errors.Is matches either name.
var (
	// ErrInvalidItem indicates an item with a non-positive or non-finite cost,
	// or a negative or non-finite benefit.
	ErrInvalidItem = errors.New("knapsack: invalid item")

	// ErrInvalidOption indicates an unknown mode or a negative worker count.
	ErrInvalidOption = errors.New("knapsack: invalid option")

	// ErrMisalignedCheckpoint is returned in LookupExact mode when a reduced
	// budget c − cost does not land on a checkpoint.
	ErrMisalignedCheckpoint = errors.New("knapsack: reduced budget is not a checkpoint")

	// ErrInvalidGranularity aliases checkpoint.ErrInvalidGranularity.
	ErrInvalidGranularity = checkpoint.ErrInvalidGranularity

	// ErrInvalidBudget aliases checkpoint.ErrInvalidBudget.
	ErrInvalidBudget = checkpoint.ErrInvalidBudget
)

// Item is one selectable unit. Its identity is its index in the input slice.
type Item struct {
	Cost    float64 `json:"cost" yaml:"cost"`
	Benefit float64 `json:"benefit" yaml:"benefit"`
}

// LookupMode selects how a reduced budget is resolved to a solved checkpoint.
type LookupMode int

const (
	// LookupFloor snaps to the greatest checkpoint ≤ the reduced budget.
	LookupFloor LookupMode = iota

	// LookupExact requires the reduced budget to be a checkpoint itself.
	LookupExact
)

// String implements fmt.Stringer.
func (m LookupMode) String() string {
	switch m {
	case LookupFloor:
		return "floor"
	case LookupExact:
		return "exact"
	default:
		return "unknown"
	}
}

// BenefitPolicy selects how an item's benefit combines with a sub-solution.
type BenefitPolicy int

const (
	// DoubleCount adds benefit[i] + (benefit[i] + sub) — the reference recurrence.
	DoubleCount BenefitPolicy = iota

	// SingleCount adds benefit[i] + sub.
	SingleCount
)

// String implements fmt.Stringer.
func (p BenefitPolicy) String() string {
	switch p {
	case DoubleCount:
		return "double"
	case SingleCount:
		return "single"
	default:
		return "unknown"
	}
}

// Options configures Solve.
//
// Fields:
//   - Scale          — ticks per budget unit (see checkpoint.Options).
//   - MaxCheckpoints — cap on the checkpoint count (see checkpoint.Options).
//   - Lookup         — LookupFloor (default) or LookupExact.
//   - Benefit        — DoubleCount (default) or SingleCount.
//   - Workers        — per-checkpoint scan parallelism; 0 or 1 is sequential.
type Options struct {
	Scale          int64
	MaxCheckpoints int
	Lookup         LookupMode
	Benefit        BenefitPolicy
	Workers        int
}

// DefaultOptions returns sequential, floor-lookup, double-count options at
// checkpoint.DefaultScale, capped at checkpoint.DefaultMaxCheckpoints.
func DefaultOptions() Options {
	return Options{
		Scale:          checkpoint.DefaultScale,
		MaxCheckpoints: checkpoint.DefaultMaxCheckpoints,
		Lookup:         LookupFloor,
		Benefit:        DoubleCount,
		Workers:        1,
	}
}

// checkpointOptions projects the generator-relevant fields.
func (o Options) checkpointOptions() checkpoint.Options {
	return checkpoint.Options{Scale: o.Scale, MaxCheckpoints: o.MaxCheckpoints}
}

// ParseLookupMode maps "floor" or "exact" to a LookupMode.
func ParseLookupMode(s string) (LookupMode, error) {
	switch s {
	case "floor", "":
		return LookupFloor, nil
	case "exact":
		return LookupExact, nil
	default:
		return 0, fmt.Errorf("%w: lookup mode %q", ErrInvalidOption, s)
	}
}

// ParseBenefitPolicy maps "double" or "single" to a BenefitPolicy.
func ParseBenefitPolicy(s string) (BenefitPolicy, error) {
	switch s {
	case "double", "":
		return DoubleCount, nil
	case "single":
		return SingleCount, nil
	default:
		return 0, fmt.Errorf("%w: benefit policy %q", ErrInvalidOption, s)
	}
}
