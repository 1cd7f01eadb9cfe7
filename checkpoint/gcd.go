package checkpoint

// GCD returns the greatest common divisor of the quantized costs, in budget
// units. Using it as the granularity keeps every reduced budget c − cost on
// the checkpoint grid.
//
// Errors: ErrNoCosts for an empty slice, ErrInvalidCost / ErrInvalidScale on
// bad input, ErrOverflow for a cost beyond the fixed-point range.
//
// Complexity: O(n log max(cost)).
func GCD(costs []float64, scale int64) (float64, error) {
	if scale <= 0 {
		return 0, ErrInvalidScale
	}
	if len(costs) == 0 {
		return 0, ErrNoCosts
	}
	ticks, _, err := quantizeCosts(costs, scale)
	if err != nil {
		return 0, err
	}

	var (
		g int64
		t int64
	)
	for _, t = range ticks {
		if t == Unaffordable {
			return 0, ErrOverflow
		}
		g = gcd(g, t)
		if g == 1 {
			break
		}
	}

	return float64(g) / float64(scale), nil
}

// gcd is Euclid's algorithm on non-negative integers; gcd(0, y) == y.
func gcd(x, y int64) int64 {
	for y > 0 {
		x, y = y, x%y
	}

	return x
}
