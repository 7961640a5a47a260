package kdindex

import (
	"context"
	"time"
)

// NeighborDistances returns, for every indexed point, the distance to its
// k-th nearest other point. It queries k+1 neighbors per point (the point
// itself is normally among them at distance 0) and skips the self match.
//
// k is clamped to Len()-1; with k <= 0 every distance is zero. The work is
// spread over workers goroutines as in KNNBatch.
func (x *Index[P, T]) NeighborDistances(ctx context.Context, k, workers int) ([]T, error) {
	if !x.built {
		return nil, ErrNotBuilt
	}
	n := len(x.idxArray)
	if n == 0 {
		return nil, nil
	}

	k = max(min(k, n-1), 0)
	out := make([]T, n)
	if k == 0 {
		return out, nil
	}

	start := time.Now()
	err := forEachRange(ctx, n, workers, func(i int) error {
		rs := NewKNNResultSet[T](k + 1)
		x.search(0, x.adaptor.at(i), rs)
		neighbors := rs.Neighbors()

		found := 0
		for _, nb := range neighbors {
			if nb.Index == i {
				continue
			}
			found++
			if found == k {
				out[i] = nb.Dist
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	x.observe(SearchNeighbors, n, time.Since(start))
	return out, nil
}
