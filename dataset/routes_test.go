package dataset_test

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapgrid/benefit"
	"github.com/katalvlaran/knapgrid/dataset"
)

func TestLoadRoutesFile(t *testing.T) {
	routes, err := dataset.LoadRoutesFile("testdata/routes_geo.geojson", dataset.DefaultRouteOptions())
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, 1, routes[0].ID)
	assert.Equal(t, 1.0, routes[0].Cost)
	assert.Equal(t, [benefit.Timeslots]int{2, 0, 1}, routes[0].Buses)
	assert.Equal(t, orb.MultiLineString{{{-1, 1}, {3, 1}}}, routes[0].Path, "line string promoted")

	assert.Equal(t, [benefit.Timeslots]int{1, 1, 1}, routes[1].Buses, "numeric strings accepted")
	assert.Len(t, routes[1].Path, 2)
	assert.Equal(t, []float64{1, 2, 3}, benefit.Costs(routes))
}

func TestLoadRegionsFile(t *testing.T) {
	opts := dataset.DefaultRegionOptions()
	opts.TargetAges = []string{"3", "4"}
	opts.ActiveFactors = [benefit.Timeslots]float64{0.5, 1, 0.25}

	regions, err := dataset.LoadRegionsFile("testdata/regions.geojson", opts)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	assert.Equal(t, 10, regions[0].MeshID)
	assert.Equal(t, [benefit.Timeslots]float64{5, 8, 2}, regions[0].Targets, "G5 excluded, weighted by activity and slot length")
	assert.Equal(t, [benefit.Timeslots]float64{7, 0, 0}, regions[1].Targets)
	assert.Len(t, regions[0].Area, 1)
}

// TestLoadRegions_AllAges keeps every age group when none is selected.
func TestLoadRegions_AllAges(t *testing.T) {
	regions, err := dataset.LoadRegionsFile("testdata/regions.geojson", dataset.DefaultRegionOptions())
	require.NoError(t, err)
	assert.Equal(t, [benefit.Timeslots]float64{210, 8, 8}, regions[0].Targets)
}

func TestLoadRoutes_Errors(t *testing.T) {
	opts := dataset.DefaultRouteOptions()
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"not a collection", `{"type":"Feature","properties":{},"geometry":null}`, dataset.ErrNotFeatureCollection},
		{"missing cost", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":null}]}`, dataset.ErrMissingCost},
		{"bad cost", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"Cost":"x"},"geometry":null}]}`, dataset.ErrBadCost},
		{"polygon route", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"Cost":1},
			"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`, dataset.ErrBadGeometry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.LoadRoutes(strings.NewReader(tc.doc), opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	opts.CostDivisor = 0
	_, err := dataset.LoadRoutes(strings.NewReader(`{}`), opts)
	assert.ErrorIs(t, err, dataset.ErrInvalidDivisor)
}

func TestLoadRegions_BadGeometry(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},
		"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}]}`
	_, err := dataset.LoadRegions(strings.NewReader(doc), dataset.DefaultRegionOptions())
	assert.ErrorIs(t, err, dataset.ErrBadGeometry)

	doc = `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":null}]}`
	_, err = dataset.LoadRegions(strings.NewReader(doc), dataset.DefaultRegionOptions())
	assert.ErrorIs(t, err, dataset.ErrBadGeometry)
}
