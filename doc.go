// Package knapgrid computes best-value item selections at a discretized set
// of budget levels ("checkpoints") with a bottom-up dynamic program over a
// granularity-spaced grid.
//
// 🚀 What is knapgrid?
//
//	Given items (cost, benefit), a global budget and a granularity, knapgrid
//	builds a table with one entry per checkpoint:
//		• checkpoint/ — checkpoint generation on an exact fixed-point grid, GCD helper
//		• knapsack/   — the recurrence evaluator and the immutable solution Table
//		• benefit/    — seeded synthetic benefits for cost-only datasets
//		• dataset/    — GeoJSON and YAML/JSON item loaders
//
// ✨ Properties:
//
//   - Monotone: a larger checkpoint never has a smaller value
//   - Deterministic: first-seen tie-break, also with a parallel item scan
//   - Exact keys: budgets are int64 ticks, never compared as floats
//
// Quick example (items (1,5) and (2,9), budget 3, granularity 1):
//
//	checkpoint │ items    │ value
//	───────────┼──────────┼──────
//	    1      │ [0]      │   5
//	    2      │ [0 0]    │  15
//	    3      │ [0 0 0]  │  25
//
// The command in cmd/knapgrid wraps the library with YAML config, a Redis
// table cache and Prometheus metrics:
//
//	go run ./cmd/knapgrid solve --data routes.geojson --budget 100 --granularity 2
package knapgrid
