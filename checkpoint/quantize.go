package checkpoint

import (
	"errors"
	"math"
)

// Quantize converts x budget units to ticks at the given scale, rounding
// half away from zero. NaN and ±Inf are rejected with ErrOverflow, as is any
// value whose tick count leaves the safe range.
//
// Complexity: O(1).
func Quantize(x float64, scale int64) (int64, error) {
	if scale <= 0 {
		return 0, ErrInvalidScale
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, ErrOverflow
	}
	v := math.Round(x * float64(scale))
	if v > maxTicks || v < -maxTicks {
		return 0, ErrOverflow
	}

	return int64(v), nil
}

// QuantizeCost converts a positive finite cost to ticks. A cost too large for
// the fixed-point range is returned as Unaffordable: it exceeds every
// representable budget, so it can never be a checkpoint or be picked.
//
// Errors: ErrInvalidCost for costs ≤ 0, NaN, ±Inf, or below one tick.
//
// Complexity: O(1).
func QuantizeCost(c float64, scale int64) (int64, error) {
	if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
		return 0, ErrInvalidCost
	}
	t, err := Quantize(c, scale)
	if errors.Is(err, ErrOverflow) {
		return Unaffordable, nil
	}
	if err != nil {
		return 0, err
	}
	if t <= 0 {
		// positive cost below the tick resolution
		return 0, ErrInvalidCost
	}

	return t, nil
}

// quantizeCosts quantizes every cost with QuantizeCost. The returned minimum
// is meaningful only when len(costs) > 0.
//
// Complexity: O(n).
func quantizeCosts(costs []float64, scale int64) (ticks []int64, minTicks int64, err error) {
	ticks = make([]int64, len(costs))

	var (
		i int
		c float64
		t int64
	)
	for i, c = range costs {
		if t, err = QuantizeCost(c, scale); err != nil {
			return nil, 0, err
		}
		ticks[i] = t
		if i == 0 || t < minTicks {
			minTicks = t
		}
	}

	return ticks, minTicks, nil
}
