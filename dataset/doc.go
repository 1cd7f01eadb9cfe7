// Package dataset reads solver inputs from files.
//
// Two formats are supported:
//
//   - GeoJSON FeatureCollection: every feature carries a numeric cost
//     property (default "Cost"). Costs are divided by CostDivisor (default
//     1e5) to bring them into budget units. Benefits are not part of the
//     file and are usually generated with package benefit.
//
//   - Route and region FeatureCollections (LoadRoutes, LoadRegions), decoded
//     with orb: routes keep their (multi)line geometry and per-slot bus
//     counts, regions their polygons and G<age>_TZ<slot> target counts.
//     Together they feed benefit.FromRegions.
//
//   - Item list (YAML, or JSON since JSON is valid YAML):
//
//     items:
//     - {cost: 1, benefit: 5}
//     - {cost: 2, benefit: 9}
package dataset
