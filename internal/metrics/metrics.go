// Package metrics defines the Prometheus collectors recorded by a solve run
// and exports them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/knapgrid/knapsack"
)

// Solve outcome labels.
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusCached = "cached"
)

// Metrics holds all collectors for one process.
type Metrics struct {
	SolvesTotal        *prometheus.CounterVec
	SolveDuration      prometheus.Histogram
	CheckpointsSolved  prometheus.Gauge
	CarriedCheckpoints prometheus.Counter
	SnappedLookups     prometheus.Counter
	BestValue          prometheus.Gauge
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		SolvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "knapgrid_solves_total",
				Help: "Total solve runs by status (ok, error, cached).",
			},
			[]string{"status"},
		),
		SolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "knapgrid_solve_duration_seconds",
				Help:    "Wall time of the checkpoint sweep in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
		),
		CheckpointsSolved: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "knapgrid_checkpoints",
				Help: "Number of checkpoints in the last solved table.",
			},
		),
		CarriedCheckpoints: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "knapgrid_carried_checkpoints_total",
				Help: "Checkpoints whose entry was carried forward from the prior grid point.",
			},
		),
		SnappedLookups: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "knapgrid_snapped_lookups_total",
				Help: "Sub-solution lookups resolved by snapping to a lower checkpoint.",
			},
		),
		BestValue: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "knapgrid_best_value",
				Help: "Value at the largest checkpoint of the last solved table.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "knapgrid_cache_hits_total",
				Help: "Total number of solution cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "knapgrid_cache_misses_total",
				Help: "Total number of solution cache misses.",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SolvesTotal,
		m.SolveDuration,
		m.CheckpointsSolved,
		m.CarriedCheckpoints,
		m.SnappedLookups,
		m.BestValue,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// ObserveTable records a table produced by the solver (status ok) or read
// from the cache (status cached). took is ignored for cached tables.
func (m *Metrics) ObserveTable(t knapsack.Table, took time.Duration, cached bool) {
	if cached {
		m.SolvesTotal.WithLabelValues(StatusCached).Inc()
	} else {
		m.SolvesTotal.WithLabelValues(StatusOK).Inc()
		m.SolveDuration.Observe(took.Seconds())
		m.CarriedCheckpoints.Add(float64(t.Stats.Carried))
		m.SnappedLookups.Add(float64(t.Stats.Snapped))
	}
	m.CheckpointsSolved.Set(float64(t.Len()))
	if best, ok := t.Best(); ok {
		m.BestValue.Set(best.Value)
	} else {
		m.BestValue.Set(0)
	}
}

// ObserveError counts a failed solve.
func (m *Metrics) ObserveError() {
	m.SolvesTotal.WithLabelValues(StatusError).Inc()
}

// CacheHit implements cache.Observer.
func (m *Metrics) CacheHit() { m.CacheHitsTotal.Inc() }

// CacheMiss implements cache.Observer.
func (m *Metrics) CacheMiss() { m.CacheMissesTotal.Inc() }

// Gatherer exposes the registry, e.g. for promhttp or tests.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.gatherer }

// WriteTextfile writes every metric to path atomically in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.gatherer)
}
