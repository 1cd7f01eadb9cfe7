package cache_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapgrid/checkpoint"
	"github.com/katalvlaran/knapgrid/internal/cache"
	"github.com/katalvlaran/knapgrid/knapsack"
)

// memStore is an in-memory Store.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}

	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data[key] = value
	s.ttls[key] = ttl

	return nil
}

type countingObserver struct {
	hits, misses atomic.Int64
}

func (o *countingObserver) CacheHit()  { o.hits.Add(1) }
func (o *countingObserver) CacheMiss() { o.misses.Add(1) }

var workedItems = []knapsack.Item{{Cost: 1, Benefit: 5}, {Cost: 2, Benefit: 9}}

func solveWorked() (knapsack.Table, error) {
	return knapsack.Solve(workedItems, 3, 1, knapsack.DefaultOptions())
}

func mustKey(t *testing.T, c *cache.TableCache, items []knapsack.Item, budget, g float64, opts knapsack.Options) string {
	t.Helper()
	key, err := c.Key(items, budget, g, opts)
	require.NoError(t, err)

	return key
}

func TestKey(t *testing.T) {
	c := cache.New(newMemStore(), time.Minute, "kg:", nil)
	opts := knapsack.DefaultOptions()

	k1 := mustKey(t, c, workedItems, 3, 1, opts)
	assert.Equal(t, k1, mustKey(t, c, workedItems, 3, 1, opts), "stable")
	assert.Contains(t, k1, "kg:table:")

	opts.Workers = 8
	assert.Equal(t, k1, mustKey(t, c, workedItems, 3, 1, opts), "workers do not change the table")

	opts.Lookup = knapsack.LookupExact
	assert.NotEqual(t, k1, mustKey(t, c, workedItems, 3, 1, opts))
	assert.NotEqual(t, k1, mustKey(t, c, workedItems, 4, 1, knapsack.DefaultOptions()))

	capped := knapsack.DefaultOptions()
	capped.MaxCheckpoints = 10
	assert.NotEqual(t, k1, mustKey(t, c, workedItems, 3, 1, capped), "the cap decides whether a solve fails")
}

// TestKey_RejectsInvalid refuses to hash requests the solver rejects.
func TestKey_RejectsInvalid(t *testing.T) {
	c := cache.New(newMemStore(), time.Minute, "kg:", nil)
	opts := knapsack.DefaultOptions()

	_, err := c.Key([]knapsack.Item{{Cost: math.NaN(), Benefit: 1}}, 3, 1, opts)
	assert.ErrorIs(t, err, knapsack.ErrInvalidItem)

	_, err = c.Key(workedItems, math.Inf(1), 1, opts)
	assert.ErrorIs(t, err, knapsack.ErrInvalidBudget)

	_, err = c.Key(workedItems, 3, math.NaN(), opts)
	assert.ErrorIs(t, err, knapsack.ErrInvalidGranularity)

	opts.Workers = -1
	_, err = c.Key(workedItems, 3, 1, opts)
	assert.ErrorIs(t, err, knapsack.ErrInvalidOption)
}

// TestGetOrCompute_CapNotBypassed stores an uncapped table and then asks for the
// same inputs under a cap the grid exceeds: the capped request must fail.
func TestGetOrCompute_CapNotBypassed(t *testing.T) {
	c := cache.New(newMemStore(), time.Minute, "kg:", nil)
	items := []knapsack.Item{{Cost: 1, Benefit: 1}}
	solve := func(opts knapsack.Options) func() (knapsack.Table, error) {
		return func() (knapsack.Table, error) { return knapsack.Solve(items, 100, 1, opts) }
	}

	open := knapsack.DefaultOptions()
	table, _, err := c.GetOrCompute(context.Background(), mustKey(t, c, items, 100, 1, open), solve(open))
	require.NoError(t, err)
	require.Equal(t, 100, table.Len())

	capped := knapsack.DefaultOptions()
	capped.MaxCheckpoints = 10
	_, cached, err := c.GetOrCompute(context.Background(), mustKey(t, c, items, 100, 1, capped), solve(capped))
	assert.ErrorIs(t, err, checkpoint.ErrTooManyCheckpoints)
	assert.False(t, cached)
}

// TestGetOrCompute_MissThenHit checks the round trip through the store.
func TestGetOrCompute_MissThenHit(t *testing.T) {
	store := newMemStore()
	obs := &countingObserver{}
	c := cache.New(store, time.Minute, "kg:", obs)
	key := mustKey(t, c, workedItems, 3, 1, knapsack.DefaultOptions())

	first, cached, err := c.GetOrCompute(context.Background(), key, solveWorked)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, time.Minute, store.ttls[key])

	second, cached, err := c.GetOrCompute(context.Background(), key, func() (knapsack.Table, error) {
		t.Fatal("compute must not run on a hit")
		return knapsack.Table{}, nil
	})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second, "JSON round trip preserves the table")
	assert.Equal(t, int64(1), obs.hits.Load())
	assert.Equal(t, int64(1), obs.misses.Load())
}

// TestGetOrCompute_Coalesces runs many callers and expects one computation.
func TestGetOrCompute_Coalesces(t *testing.T) {
	c := cache.New(newMemStore(), time.Minute, "kg:", nil)
	key := mustKey(t, c, workedItems, 3, 1, knapsack.DefaultOptions())

	var (
		calls atomic.Int64
		wg    sync.WaitGroup
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, _, err := c.GetOrCompute(context.Background(), key, func() (knapsack.Table, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return solveWorked()
			})
			assert.NoError(t, err)
			assert.Equal(t, 3, table.Len())
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), calls.Load())
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	store := newMemStore()
	c := cache.New(store, time.Minute, "kg:", nil)
	boom := errors.New("boom")

	_, _, err := c.GetOrCompute(context.Background(), "k", func() (knapsack.Table, error) {
		return knapsack.Table{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.data)
}

// TestGetOrCompute_BackendDown falls back to computing when the store fails.
func TestGetOrCompute_BackendDown(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection refused")
	c := cache.New(store, time.Minute, "kg:", nil)

	table, cached, err := c.GetOrCompute(context.Background(), "k", solveWorked)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 3, table.Len())
}

func TestGet_CorruptEntry(t *testing.T) {
	store := newMemStore()
	store.data["k"] = []byte("{not json")
	c := cache.New(store, time.Minute, "kg:", nil)

	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}
