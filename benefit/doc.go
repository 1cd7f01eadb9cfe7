// Package benefit produces item benefits for cost-only datasets.
//
// Two sources are available:
//   - Uniform: pseudo-random benefits from a fixed seed, for exploring a
//     cost dataset before real benefit data exists;
//   - FromRegions: each route earns the targets of every region its path
//     reaches, per time slot it runs in and weighted by the buses counted.
//
// Both are deterministic: the same inputs always yield the same benefits.
//
// ⚙️ Usage:
//
//	gen := benefit.New(benefit.DefaultOptions())
//	bs, err := gen.Uniform(len(costs))
//	items, err := benefit.Attach(costs, bs)
//
//	bs, err = benefit.FromRegions(routes, regions, benefit.DefaultRegionOptions())
//	items, err = benefit.Attach(benefit.Costs(routes), bs)
package benefit
