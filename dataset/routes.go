package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/knapgrid/benefit"
)

// ErrBadGeometry indicates a feature whose geometry does not fit its role:
// routes need (multi)line strings, regions need (multi)polygons.
var ErrBadGeometry = errors.New("dataset: unexpected geometry type")

// slotLength is the length in hours of each time slot.
var slotLength = [benefit.Timeslots]float64{2, 8, 4}

// RouteOptions names the route feature properties.
type RouteOptions struct {
	GeoJSONOptions
	IDProperty    string
	BusProperties [benefit.Timeslots]string
}

// DefaultRouteOptions reads "RouteID", "Cost" and "TZ2_Max" … "TZ4_Max".
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{
		GeoJSONOptions: DefaultGeoJSONOptions(),
		IDProperty:     "RouteID",
		BusProperties:  [benefit.Timeslots]string{"TZ2_Max", "TZ3_Max", "TZ4_Max"},
	}
}

// RegionOptions selects which target counts of a region feature are summed.
//
// Region features carry counts in properties named G<age>_TZ<slot>, slot
// 2, 3 or 4. A count is kept when its age group is in TargetAges (all groups
// when empty) and is weighted by ActiveFactors[slot] and the slot length.
type RegionOptions struct {
	MeshProperty  string
	TargetAges    []string
	ActiveFactors [benefit.Timeslots]float64
}

// DefaultRegionOptions reads "MESH_ID", keeps every age group and weights
// every slot with activity 1.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{
		MeshProperty:  "MESH_ID",
		ActiveFactors: [benefit.Timeslots]float64{1, 1, 1},
	}
}

// LoadRoutes decodes a route FeatureCollection. Costs are normalized by
// CostDivisor; missing bus properties count as 0 buses.
func LoadRoutes(r io.Reader, opts RouteOptions) ([]benefit.Route, error) {
	if math.IsNaN(opts.CostDivisor) || math.IsInf(opts.CostDivisor, 0) || opts.CostDivisor <= 0 {
		return nil, ErrInvalidDivisor
	}
	fc, err := decodeCollection(r)
	if err != nil {
		return nil, err
	}

	routes := make([]benefit.Route, len(fc.Features))
	for i, f := range fc.Features {
		cost, err := featureCost(f, opts.GeoJSONOptions, i)
		if err != nil {
			return nil, err
		}
		route := benefit.Route{ID: i, Cost: cost}
		if v, ok := number(f.Properties[opts.IDProperty]); ok {
			route.ID = int(v)
		}
		for s, name := range opts.BusProperties {
			if v, ok := number(f.Properties[name]); ok {
				route.Buses[s] = int(v)
			}
		}

		switch g := f.Geometry.(type) {
		case nil:
		case orb.LineString:
			route.Path = orb.MultiLineString{g}
		case orb.MultiLineString:
			route.Path = g
		default:
			return nil, fmt.Errorf("%w: route %d is a %s", ErrBadGeometry, i, g.GeoJSONType())
		}
		routes[i] = route
	}

	return routes, nil
}

// LoadRegions decodes a region FeatureCollection and folds each feature's
// target counts into per-slot totals.
func LoadRegions(r io.Reader, opts RegionOptions) ([]benefit.Region, error) {
	fc, err := decodeCollection(r)
	if err != nil {
		return nil, err
	}

	regions := make([]benefit.Region, len(fc.Features))
	for i, f := range fc.Features {
		region := benefit.Region{MeshID: i}
		if v, ok := number(f.Properties[opts.MeshProperty]); ok {
			region.MeshID = int(v)
		}
		// sorted so the float sums do not depend on map order
		names := make([]string, 0, len(f.Properties))
		for name := range f.Properties {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			age, slot, ok := targetKey(name)
			if !ok || (len(opts.TargetAges) > 0 && !slices.Contains(opts.TargetAges, age)) {
				continue
			}
			v, ok := number(f.Properties[name])
			if !ok {
				continue
			}
			region.Targets[slot] += v * opts.ActiveFactors[slot] * slotLength[slot]
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			region.Area = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			region.Area = g
		case nil:
			return nil, fmt.Errorf("%w: region %d has no geometry", ErrBadGeometry, i)
		default:
			return nil, fmt.Errorf("%w: region %d is a %s", ErrBadGeometry, i, g.GeoJSONType())
		}
		regions[i] = region
	}

	return regions, nil
}

// LoadRoutesFile opens path and calls LoadRoutes.
func LoadRoutesFile(path string, opts RouteOptions) ([]benefit.Route, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	routes, err := LoadRoutes(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return routes, nil
}

// LoadRegionsFile opens path and calls LoadRegions.
func LoadRegionsFile(path string, opts RegionOptions) ([]benefit.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	regions, err := LoadRegions(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return regions, nil
}

func decodeCollection(r io.Reader) (*geojson.FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFeatureCollection, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type)
	}

	return fc, nil
}

// targetKey splits a G<age>_TZ<slot> property name into the age group and
// the slot index.
func targetKey(name string) (age string, slot int, ok bool) {
	if len(name) != 6 || name[0] != 'G' || name[2:5] != "_TZ" {
		return "", 0, false
	}
	slot = int(name[5] - '2')
	if slot < 0 || slot >= benefit.Timeslots {
		return "", 0, false
	}

	return name[1:2], slot, true
}

// number accepts a finite JSON number or a numeric string.
func number(v interface{}) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		var err error
		if f, err = strconv.ParseFloat(x, 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
