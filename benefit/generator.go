package benefit

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/knapgrid/knapsack"
)

var (
	// ErrInvalidScale indicates a negative or non-finite Options.Scale.
	ErrInvalidScale = errors.New("benefit: scale must be a non-negative finite number")

	// ErrNegativeCount indicates a negative item count.
	ErrNegativeCount = errors.New("benefit: count must be non-negative")

	// ErrLengthMismatch indicates costs and benefits of different lengths.
	ErrLengthMismatch = errors.New("benefit: costs and benefits differ in length")
)

// Options configures a Generator.
//
// Fields:
//   - Seed  — RNG seed; 0 selects the package default (3).
//   - Scale — benefits are drawn uniformly from [0, Scale).
type Options struct {
	Seed  int64
	Scale float64
}

// DefaultOptions returns Seed 3 and Scale 10.
func DefaultOptions() Options {
	return Options{Seed: defaultSeed, Scale: 10}
}

// Generator draws benefits from a seeded stream.
type Generator struct {
	rng   *rand.Rand
	scale float64
}

// New returns a Generator for opts. An invalid scale is reported by Uniform.
func New(opts Options) *Generator {
	return &Generator{
		rng:   rngFromSeed(opts.Seed),
		scale: opts.Scale,
	}
}

// Uniform returns n benefits drawn from [0, Scale), consuming n values of the stream.
//
// Complexity: O(n).
func (g *Generator) Uniform(n int) ([]float64, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if math.IsNaN(g.scale) || math.IsInf(g.scale, 0) || g.scale < 0 {
		return nil, ErrInvalidScale
	}
	out := make([]float64, n)

	var i int
	for i = 0; i < n; i++ {
		out[i] = g.rng.Float64() * g.scale
	}

	return out, nil
}

// Attach pairs costs with benefits into solver items, preserving order.
//
// Complexity: O(n).
func Attach(costs, benefits []float64) ([]knapsack.Item, error) {
	if len(costs) != len(benefits) {
		return nil, fmt.Errorf("%w: %d costs, %d benefits", ErrLengthMismatch, len(costs), len(benefits))
	}
	items := make([]knapsack.Item, len(costs))
	for i := range costs {
		items[i] = knapsack.Item{Cost: costs[i], Benefit: benefits[i]}
	}

	return items, nil
}
