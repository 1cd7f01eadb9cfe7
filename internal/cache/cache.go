package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/knapgrid/internal/logger"
	"github.com/katalvlaran/knapgrid/knapsack"
)

// Observer is notified of cache hits and misses.
type Observer interface {
	CacheHit()
	CacheMiss()
}

type nopObserver struct{}

func (nopObserver) CacheHit()  {}
func (nopObserver) CacheMiss() {}

// TableCache caches knapsack tables as JSON in a Store.
type TableCache struct {
	store    Store
	ttl      time.Duration
	prefix   string
	group    singleflight.Group
	observer Observer
	logger   *slog.Logger
}

// New returns a TableCache. obs may be nil.
func New(store Store, ttl time.Duration, prefix string, obs Observer) *TableCache {
	if obs == nil {
		obs = nopObserver{}
	}

	return &TableCache{
		store:    store,
		ttl:      ttl,
		prefix:   prefix,
		observer: obs,
		logger:   logger.WithComponent("table-cache"),
	}
}

// keyInput lists everything that decides the outcome of a solve: the table
// itself and whether the checkpoint cap rejects it. Workers does not.
type keyInput struct {
	Items          []knapsack.Item `json:"items"`
	Budget         float64         `json:"budget"`
	Granularity    float64         `json:"granularity"`
	Scale          int64           `json:"scale"`
	MaxCheckpoints int             `json:"maxCheckpoints"`
	Lookup         string          `json:"lookup"`
	Benefit        string          `json:"benefit"`
}

// Key derives the cache key of a solve request. Requests the solver would
// reject for their items, options or non-finite scalars get no key.
func (c *TableCache) Key(items []knapsack.Item, budget, granularity float64, opts knapsack.Options) (string, error) {
	if err := knapsack.ValidateOptions(opts); err != nil {
		return "", err
	}
	if err := knapsack.ValidateItems(items); err != nil {
		return "", err
	}
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return "", fmt.Errorf("%w: %v", knapsack.ErrInvalidBudget, budget)
	}
	if math.IsNaN(granularity) || math.IsInf(granularity, 0) {
		return "", fmt.Errorf("%w: %v", knapsack.ErrInvalidGranularity, granularity)
	}

	data, err := json.Marshal(keyInput{
		Items:          items,
		Budget:         budget,
		Granularity:    granularity,
		Scale:          opts.Scale,
		MaxCheckpoints: opts.MaxCheckpoints,
		Lookup:         opts.Lookup.String(),
		Benefit:        opts.Benefit.String(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(data)

	return c.prefix + "table:" + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached table for key. Backend and decoding failures are
// logged and reported as a miss.
func (c *TableCache) Get(ctx context.Context, key string) (knapsack.Table, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return knapsack.Table{}, false
	}

	var table knapsack.Table
	if err := json.Unmarshal(data, &table); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return knapsack.Table{}, false
	}
	c.logger.Debug("cache hit", "key", key)

	return table, true
}

// Set stores table under key. Failures are logged, not returned.
func (c *TableCache) Set(ctx context.Context, key string, table knapsack.Table) {
	data, err := json.Marshal(table)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached table for key or runs compute once for all
// concurrent callers of the same key and stores its result. cached reports
// whether the table came from the store.
func (c *TableCache) GetOrCompute(
	ctx context.Context,
	key string,
	compute func() (knapsack.Table, error),
) (table knapsack.Table, cached bool, err error) {
	if t, ok := c.Get(ctx, key); ok {
		c.observer.CacheHit()
		return t, true, nil
	}

	type result struct {
		table  knapsack.Table
		cached bool
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// a caller that finished just before us may have stored it already
		if t, ok := c.Get(ctx, key); ok {
			return result{table: t, cached: true}, nil
		}
		t, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, t)
		return result{table: t}, nil
	})
	if err != nil {
		c.observer.CacheMiss()
		return knapsack.Table{}, false, err
	}

	r := v.(result)
	if r.cached {
		c.observer.CacheHit()
	} else {
		c.observer.CacheMiss()
	}

	return r.table, r.cached, nil
}
