// Package knapsack_test provides helpers shared across the *_test.go files of
// this package: deterministic instances and small repetition utilities.
package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/knapgrid/knapsack"
)

const (
	// seedDet is the fixed seed for generated instances.
	seedDet = int64(3)

	// halfStep is the cost resolution of generated instances (aligned with grid 0.5).
	halfStep = 0.5
)

// Repeat runs fn n times, used to lock determinism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// randomItems builds n items with costs in {0.5, 1.0, …, 5.0}, every third
// one shifted off the 0.5 grid, and benefits in [0, 10).
func randomItems(n int, seed int64) []knapsack.Item {
	var (
		rng   = rand.New(rand.NewSource(seed))
		items = make([]knapsack.Item, n)
		i     int
	)
	for i = 0; i < n; i++ {
		items[i].Cost = halfStep * float64(1+rng.Intn(10))
		if i%3 == 2 {
			items[i].Cost += 0.25
		}
		items[i].Benefit = rng.Float64() * 10
	}

	return items
}

// alignedItems is randomItems without the off-grid shift, so every reduced
// budget lands on the 0.5 grid.
func alignedItems(n int, seed int64) []knapsack.Item {
	var (
		rng   = rand.New(rand.NewSource(seed))
		items = make([]knapsack.Item, n)
		i     int
	)
	for i = 0; i < n; i++ {
		items[i].Cost = halfStep * float64(1+rng.Intn(10))
		items[i].Benefit = rng.Float64() * 10
	}

	return items
}
