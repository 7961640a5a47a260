package kdindex

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// pt is an N-dimensional point with a squared Euclidean metric.
type pt[T Coord] []T

func (p pt[T]) Component(dim int) T               { return p[dim] }
func (p pt[T]) SignedDistance(dim int, value T) T { return p[dim] - value }
func (p pt[T]) DistanceTo(o pt[T]) T              { return SquaredEuclidean(p, o) }
func (p pt[T]) Dims() int                         { return len(p) }

// l1pt uses the Manhattan metric and pairs with AbsAxis.
type l1pt []float64

func (p l1pt) Component(dim int) float64                     { return p[dim] }
func (p l1pt) SignedDistance(dim int, value float64) float64 { return p[dim] - value }
func (p l1pt) DistanceTo(o l1pt) float64                     { return Manhattan(p, o) }

type cloud[P any] struct {
	pts []P
}

func (c *cloud[P]) Len() int   { return len(c.pts) }
func (c *cloud[P]) At(i int) P { return c.pts[i] }

func newRNG(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }

func randomPoints(rng *rand.Rand, n, dims int) *cloud[pt[float64]] {
	c := &cloud[pt[float64]]{pts: make([]pt[float64], n)}
	for i := range c.pts {
		p := make(pt[float64], dims)
		for d := range p {
			p[d] = rng.Float64()
		}
		c.pts[i] = p
	}
	return c
}

func randomQuery(rng *rand.Rand, dims int) pt[float64] {
	q := make(pt[float64], dims)
	for d := range q {
		// Queries range slightly outside the unit cube to exercise the
		// far-side bounds.
		q[d] = rng.Float64()*1.2 - 0.1
	}
	return q
}

func buildIndex(t *testing.T, c *cloud[pt[float64]], dims, leafSize int) *Index[pt[float64], float64] {
	t.Helper()
	cfg := DefaultConfig[float64]()
	cfg.MaxLeafSize = leafSize
	idx, err := New(dims, NewAdaptor[pt[float64], float64](c), cfg)
	require.NoError(t, err)
	return idx
}

func indexSet[T Coord](ns []Neighbor[T]) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Index
	}
	slices.Sort(out)
	return out
}

func dists[T Coord](ns []Neighbor[T]) []T {
	out := make([]T, len(ns))
	for i, n := range ns {
		out[i] = n.Dist
	}
	return out
}
