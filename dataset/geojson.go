package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/paulmach/orb/geojson"
)

var (
	// ErrNotFeatureCollection indicates a GeoJSON document of another type.
	ErrNotFeatureCollection = errors.New("dataset: not a GeoJSON FeatureCollection")

	// ErrMissingCost indicates a feature without the configured cost property.
	ErrMissingCost = errors.New("dataset: feature has no cost property")

	// ErrBadCost indicates a cost property that is not a finite number.
	ErrBadCost = errors.New("dataset: cost property is not a finite number")

	// ErrInvalidDivisor indicates a CostDivisor that is ≤ 0 or not finite.
	ErrInvalidDivisor = errors.New("dataset: cost divisor must be a positive finite number")
)

// GeoJSONOptions selects the cost property and its normalization.
type GeoJSONOptions struct {
	CostProperty string
	CostDivisor  float64
}

// DefaultGeoJSONOptions reads "Cost" and divides by 1e5.
func DefaultGeoJSONOptions() GeoJSONOptions {
	return GeoJSONOptions{CostProperty: "Cost", CostDivisor: 1e5}
}

// LoadGeoJSON decodes a FeatureCollection and returns one normalized cost per
// feature, in document order. Geometry is ignored. An empty collection yields
// an empty slice.
func LoadGeoJSON(r io.Reader, opts GeoJSONOptions) ([]float64, error) {
	if math.IsNaN(opts.CostDivisor) || math.IsInf(opts.CostDivisor, 0) || opts.CostDivisor <= 0 {
		return nil, ErrInvalidDivisor
	}
	fc, err := decodeCollection(r)
	if err != nil {
		return nil, err
	}

	costs := make([]float64, len(fc.Features))
	for i, f := range fc.Features {
		if costs[i], err = featureCost(f, opts, i); err != nil {
			return nil, err
		}
	}

	return costs, nil
}

// LoadGeoJSONFile opens path and calls LoadGeoJSON.
func LoadGeoJSONFile(path string, opts GeoJSONOptions) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	costs, err := LoadGeoJSON(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return costs, nil
}

// featureCost reads and normalizes the cost property of feature i.
func featureCost(f *geojson.Feature, opts GeoJSONOptions, i int) (float64, error) {
	prop := opts.CostProperty
	if prop == "" {
		prop = DefaultGeoJSONOptions().CostProperty
	}
	raw, ok := f.Properties[prop]
	if !ok {
		return 0, fmt.Errorf("%w: feature %d, property %q", ErrMissingCost, i, prop)
	}
	v, ok := number(raw)
	if !ok {
		return 0, fmt.Errorf("%w: feature %d, property %q", ErrBadCost, i, prop)
	}

	return v / opts.CostDivisor, nil
}
