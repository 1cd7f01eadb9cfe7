// Package benefit - RNG utilities.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. A Generator must not be shared
//     across goroutines; create one per goroutine with New.
package benefit

import "math/rand"

// defaultSeed is the seed used when callers pass seed==0.
const defaultSeed int64 = 3

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultSeed
	}

	return rand.New(rand.NewSource(s))
}
