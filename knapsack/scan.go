package knapsack

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// candidate is the best item found by a scan; item is −1 when none beat 0.
type candidate struct {
	item    int
	value   float64
	snapped int
}

// scan finds the best affordable item at checkpoint c.
//
// With Options.Workers > 1 the items are split into index-ordered chunks that
// are scanned concurrently. Each chunk keeps its first strict maximum and the
// chunks are merged in index order with a strict comparison, so the winner is
// the same item the sequential scan picks. Only entries below c are read.
func (e *evaluator) scan(c int64) (candidate, error) {
	var (
		n = len(e.items)
		w = e.opts.Workers
	)
	if w <= 1 || n < 2*w {
		return e.scanRange(c, 0, n)
	}

	var (
		size  = (n + w - 1) / w
		parts = make([]candidate, w)
		g     errgroup.Group
	)
	g.SetLimit(w)
	for p := 0; p < w; p++ {
		lo, hi := p*size, min((p+1)*size, n)
		parts[p] = candidate{item: -1}
		if lo >= hi {
			continue
		}
		p := p
		g.Go(func() error {
			r, err := e.scanRange(c, lo, hi)
			if err != nil {
				return err
			}
			parts[p] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidate{item: -1}, err
	}

	best := candidate{item: -1}
	for _, r := range parts {
		best.snapped += r.snapped
		if best.value < r.value {
			best.item, best.value = r.item, r.value
		}
	}

	return best, nil
}

// scanRange evaluates items [lo, hi) at checkpoint c.
func (e *evaluator) scanRange(c int64, lo, hi int) (candidate, error) {
	var (
		best    = candidate{item: -1}
		i       int
		v       float64
		reduced int64
		sub     float64
		snapped bool
		ok      bool
	)
	for i = lo; i < hi; i++ {
		if e.costs[i] > c {
			continue
		}
		v = e.items[i].Benefit
		reduced = c - e.costs[i]
		if reduced >= e.set.MinCost {
			sub, snapped, ok = e.lookup(reduced)
			if !ok {
				return candidate{item: -1}, fmt.Errorf("%w: checkpoint %v, item %d, reduced budget %v",
					ErrMisalignedCheckpoint, e.set.Float(c), i, e.set.Float(reduced))
			}
			if snapped {
				best.snapped++
			}
			if e.opts.Benefit == DoubleCount {
				v += e.items[i].Benefit + sub
			} else {
				v += sub
			}
		}
		// strict: the first item reaching the maximum keeps it
		if best.value < v {
			best.item, best.value = i, v
		}
	}

	return best, nil
}
