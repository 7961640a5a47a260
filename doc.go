// Package kdindex implements a KD-tree nearest-neighbor index over
// caller-owned point collections, without copying the points.
//
// A collection satisfies [Source] and its point type satisfies [Point]. An
// [Adaptor] wraps the collection and the [Index] reads points through it,
// storing only a permutation of point positions and its nodes.
//
// Basic usage:
//
//	cloud := pointcloud.Generate[float64](1_000_000, 1.0, rng)
//	a := kdindex.NewAdaptor[*pointcloud.Point[float64], float64](cloud)
//	idx, err := kdindex.New(3, a, kdindex.DefaultConfig[float64]())
//	// handle err
//	neighbors, err := idx.KNN(&pointcloud.Point[float64]{0.5, 0.5, 0.5}, 1)
//	// neighbors[0].Index is the closest point, neighbors[0].Dist its distance
//
// Distances are whatever the point type's DistanceTo returns. The index
// prunes with Config.Metric, which must lower-bound DistanceTo along a single
// axis: [SquaredAxis] for squared Euclidean points (the default), [AbsAxis]
// for Euclidean, Manhattan or Chebyshev points.
//
// # Tree construction
//
// Each node splits on the dimension of widest spread at the midpoint of
// that spread. The partition slides the cut towards the middle of the range
// when the midpoint is lopsided, so both children are always non-empty.
// Nodes stop splitting at Config.MaxLeafSize points (default 10).
//
// # Ties
//
// Among candidates at equal distance the one met first during traversal is
// kept. This is stable for a given tree but is not an ordering guarantee;
// compare results as sets when ties are possible.
package kdindex
