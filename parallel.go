package kdindex

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// KNNBatch runs KNN for every query using up to workers goroutines and
// returns the results in query order. workers <= 0 means GOMAXPROCS; 1 runs
// on the calling goroutine.
//
// Each worker handles a contiguous range of queries and writes only its own
// result slots. ctx is checked between queries; a single query is never
// interrupted.
func (x *Index[P, T]) KNNBatch(ctx context.Context, queries []P, k, workers int) ([][]Neighbor[T], error) {
	if !x.built {
		return nil, ErrNotBuilt
	}
	out := make([][]Neighbor[T], len(queries))
	err := forEachRange(ctx, len(queries), workers, func(i int) error {
		res, err := x.KNN(queries[i], k)
		out[i] = res
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEachRange calls fn(i) for i in [0, n), splitting the range across
// workers contiguous chunks.
func forEachRange(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	perWorker := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * perWorker
		if start >= n {
			break
		}
		end := min(start+perWorker, n)

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
