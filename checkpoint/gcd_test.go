package checkpoint_test

import (
	"testing"

	"github.com/katalvlaran/knapgrid/checkpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	g, err := checkpoint.GCD([]float64{0.5, 1.5, 2.0}, checkpoint.DefaultScale)
	require.NoError(t, err)
	assert.Equal(t, 0.5, g)

	g, err = checkpoint.GCD([]float64{3, 6, 9}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, g)

	g, err = checkpoint.GCD([]float64{7}, 1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, g, "single cost is its own gcd")
}

func TestGCD_Errors(t *testing.T) {
	_, err := checkpoint.GCD(nil, checkpoint.DefaultScale)
	assert.ErrorIs(t, err, checkpoint.ErrNoCosts)

	_, err = checkpoint.GCD([]float64{1, -1}, checkpoint.DefaultScale)
	assert.ErrorIs(t, err, checkpoint.ErrInvalidCost)

	_, err = checkpoint.GCD([]float64{1}, -1)
	assert.ErrorIs(t, err, checkpoint.ErrInvalidScale)

	_, err = checkpoint.GCD([]float64{1, 1e10}, checkpoint.DefaultScale)
	assert.ErrorIs(t, err, checkpoint.ErrOverflow)
}

// TestGCD_KeepsReducedBudgetsOnGrid checks that a gcd granularity puts every
// c − cost of a checkpoint back on the grid.
func TestGCD_KeepsReducedBudgetsOnGrid(t *testing.T) {
	costs := []float64{1.5, 2.5, 4}
	g, err := checkpoint.GCD(costs, checkpoint.DefaultScale)
	require.NoError(t, err)

	set, err := checkpoint.Generate(costs, 10, g, checkpoint.DefaultOptions())
	require.NoError(t, err)

	for _, c := range set.Points {
		for _, cost := range costs {
			ct, _ := checkpoint.Quantize(cost, checkpoint.DefaultScale)
			r := c - ct
			if r < set.MinCost {
				continue
			}
			_, ok := set.Index(r)
			assert.True(t, ok, "reduced budget %d must be a checkpoint", r)
		}
	}
}
