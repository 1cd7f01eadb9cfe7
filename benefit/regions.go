package benefit

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Timeslots is the number of daily time slots in which targets are counted.
const Timeslots = 3

// epsilon is the orientation tolerance of the crossing test.
const epsilon = 1e-12

// ErrInvalidBuses indicates RegionOptions.Buses < 1.
var ErrInvalidBuses = errors.New("benefit: bus count must be at least 1")

// Region is an area with the number of targets reachable in each time slot.
type Region struct {
	MeshID  int
	Targets [Timeslots]float64
	Area    orb.MultiPolygon
}

// Route is a candidate item with a geometry. Buses holds how many buses can
// run the route in each time slot; a slot with 0 buses earns nothing.
type Route struct {
	ID    int
	Cost  float64
	Buses [Timeslots]int
	Path  orb.MultiLineString
}

// RegionOptions configures FromRegions.
//
// Fields:
//   - Buses — buses bought per route; a slot counts min(Buses, Route.Buses[s]).
type RegionOptions struct {
	Buses int
}

// DefaultRegionOptions counts one bus per route.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{Buses: 1}
}

// FromRegions derives one benefit per route: for every region the route
// touches, the targets of each slot the route runs in, weighted by the
// number of buses counted in that slot.
//
// A route touches a region when its path crosses the region boundary or
// has a vertex inside it.
//
// Complexity: O(R·A·s) for R routes, A regions and s segments per pair.
func FromRegions(routes []Route, regions []Region, opts RegionOptions) ([]float64, error) {
	if opts.Buses < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBuses, opts.Buses)
	}

	var (
		out    = make([]float64, len(routes))
		bounds = make([]orb.Bound, len(regions))
		i, j   int
		s      int
	)
	for j = range regions {
		bounds[j] = regions[j].Area.Bound()
	}
	for i = range routes {
		r := &routes[i]
		if len(r.Path) == 0 {
			continue
		}
		rb := r.Path.Bound()
		for j = range regions {
			if !rb.Intersects(bounds[j]) || !Touches(r.Path, regions[j].Area) {
				continue
			}
			for s = 0; s < Timeslots; s++ {
				if r.Buses[s] <= 0 {
					continue
				}
				out[i] += float64(min(opts.Buses, r.Buses[s])) * regions[j].Targets[s]
			}
		}
	}

	return out, nil
}

// Costs returns the route costs in order, ready for Attach.
func Costs(routes []Route) []float64 {
	costs := make([]float64, len(routes))
	for i := range routes {
		costs[i] = routes[i].Cost
	}

	return costs
}

// Touches reports whether path crosses the boundary of area or lies
// (partly) inside it.
func Touches(path orb.MultiLineString, area orb.MultiPolygon) bool {
	for _, line := range path {
		for _, p := range line {
			if planar.MultiPolygonContains(area, p) {
				return true
			}
		}
		for k := 0; k+1 < len(line); k++ {
			if crossesBoundary(line[k], line[k+1], area) {
				return true
			}
		}
	}

	return false
}

func crossesBoundary(a, b orb.Point, area orb.MultiPolygon) bool {
	for _, poly := range area {
		for _, ring := range poly {
			for k := 0; k+1 < len(ring); k++ {
				if segmentsCross(a, b, ring[k], ring[k+1]) {
					return true
				}
			}
		}
	}

	return false
}

// segmentsCross reports whether segments ab and cd share a point; touching
// and collinear overlap count.
func segmentsCross(a, b, c, d orb.Point) bool {
	return orientation(a, b, c)*orientation(a, b, d) <= 0 &&
		orientation(c, d, a)*orientation(c, d, b) <= 0 &&
		overlaps(a, b, c, d)
}

// orientation is the sign of the turn a → b → p.
func orientation(a, b, p orb.Point) int {
	v := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	default:
		return 0
	}
}

// overlaps rejects collinear segments that lie on the same line but apart.
func overlaps(a, b, c, d orb.Point) bool {
	return orb.MultiPoint{a, b}.Bound().Intersects(orb.MultiPoint{c, d}.Bound())
}
