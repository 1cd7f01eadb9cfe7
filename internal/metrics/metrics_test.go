package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapgrid/internal/metrics"
	"github.com/katalvlaran/knapgrid/knapsack"
)

func solvedTable(t *testing.T) knapsack.Table {
	t.Helper()
	table, err := knapsack.Solve([]knapsack.Item{{Cost: 2, Benefit: 3}}, 5, 1, knapsack.DefaultOptions())
	require.NoError(t, err)

	return table
}

func TestObserveTable(t *testing.T) {
	m := metrics.New()
	table := solvedTable(t)

	m.ObserveTable(table, 20*time.Millisecond, false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues(metrics.StatusOK)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CheckpointsSolved))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.BestValue))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CarriedCheckpoints))

	m.ObserveTable(table, 0, true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues(metrics.StatusCached)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CarriedCheckpoints), "cached tables are not re-counted")

	m.ObserveTable(knapsack.Table{}, 0, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BestValue))
}

func TestObserveErrorAndCache(t *testing.T) {
	m := metrics.New()
	m.ObserveError()
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SolvesTotal.WithLabelValues(metrics.StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
}

// TestNew_Independent ensures two instances do not collide on registration.
func TestNew_Independent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.ObserveError()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SolvesTotal.WithLabelValues(metrics.StatusError)))
}

func TestWriteTextfile(t *testing.T) {
	m := metrics.New()
	m.ObserveTable(solvedTable(t), time.Millisecond, false)

	path := filepath.Join(t.TempDir(), "knapgrid.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "knapgrid_best_value 9")
	assert.Contains(t, string(data), `knapgrid_solves_total{status="ok"} 1`)
}
