package kdindex

import (
	"cmp"
	"container/heap"
	"math"
	"slices"
)

// Neighbor is one query result: the position of the point in the collection
// and its distance to the query, in the units of the point type's DistanceTo.
type Neighbor[T Coord] struct {
	Index int
	Dist  T
}

// ResultSet accumulates candidates during a search.
//
// The index only offers a candidate whose distance is not above WorstDist,
// and prunes any subtree whose lower bound is above it. AddPoint decides
// whether a candidate equal to WorstDist is kept, and returns false to stop
// the search early.
type ResultSet[T Coord] interface {
	AddPoint(dist T, index int) bool
	WorstDist() T
}

// KNNResultSet keeps the k closest candidates seen so far.
//
// Until the set is full every candidate is admitted. Once full, a candidate
// tied with the current worst is not admitted, so among equal
// distances the one encountered first during traversal wins. This tie policy
// is stable for a given tree but not part of any ordering guarantee.
type KNNResultSet[T Coord] struct {
	k   int
	h   knnHeap[T]
	seq int
}

// NewKNNResultSet returns an empty set bounded to k entries. A set with
// k <= 0 admits nothing.
func NewKNNResultSet[T Coord](k int) *KNNResultSet[T] {
	return &KNNResultSet[T]{k: k, h: make(knnHeap[T], 0, max(k, 0))}
}

// AddPoint implements ResultSet. It never stops the search.
func (r *KNNResultSet[T]) AddPoint(dist T, index int) bool {
	if r.k <= 0 {
		return true
	}
	item := knnItem[T]{Neighbor: Neighbor[T]{Index: index, Dist: dist}, seq: r.seq}
	r.seq++
	if len(r.h) < r.k {
		heap.Push(&r.h, item)
	} else if dist < r.h[0].Dist {
		r.h[0] = item
		heap.Fix(&r.h, 0)
	}
	return true
}

// WorstDist implements ResultSet: +Inf until the set is full, then the k-th
// best distance.
func (r *KNNResultSet[T]) WorstDist() T {
	if r.k <= 0 {
		return T(math.Inf(-1))
	}
	if len(r.h) < r.k {
		return inf[T]()
	}
	return r.h[0].Dist
}

// Full reports whether k candidates have been collected.
func (r *KNNResultSet[T]) Full() bool { return r.k > 0 && len(r.h) >= r.k }

// Len returns the number of candidates held.
func (r *KNNResultSet[T]) Len() int { return len(r.h) }

// Reset empties the set, keeping its capacity.
func (r *KNNResultSet[T]) Reset() {
	r.h = r.h[:0]
	r.seq = 0
}

// Neighbors returns the held candidates by ascending distance, ties in
// admission order. The set itself is left untouched.
func (r *KNNResultSet[T]) Neighbors() []Neighbor[T] {
	items := slices.Clone(r.h)
	slices.SortFunc(items, func(a, b knnItem[T]) int {
		if c := cmp.Compare(a.Dist, b.Dist); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]Neighbor[T], len(items))
	for i, it := range items {
		out[i] = it.Neighbor
	}
	return out
}

// RadiusResultSet collects every candidate closer than Radius.
type RadiusResultSet[T Coord] struct {
	Radius T
	found  []Neighbor[T]
}

// NewRadiusResultSet returns an empty set for the given radius, in the units
// of the point type's DistanceTo (squared for squared Euclidean points).
func NewRadiusResultSet[T Coord](radius T) *RadiusResultSet[T] {
	return &RadiusResultSet[T]{Radius: radius}
}

// AddPoint implements ResultSet.
func (r *RadiusResultSet[T]) AddPoint(dist T, index int) bool {
	if dist < r.Radius {
		r.found = append(r.found, Neighbor[T]{Index: index, Dist: dist})
	}
	return true
}

// WorstDist implements ResultSet.
func (r *RadiusResultSet[T]) WorstDist() T { return r.Radius }

// Len returns the number of candidates held.
func (r *RadiusResultSet[T]) Len() int { return len(r.found) }

// Neighbors returns the candidates by ascending distance, ties in admission
// order.
func (r *RadiusResultSet[T]) Neighbors() []Neighbor[T] {
	out := slices.Clone(r.found)
	slices.SortStableFunc(out, func(a, b Neighbor[T]) int { return cmp.Compare(a.Dist, b.Dist) })
	return out
}

// --- max-heap for KNN queries ---

type knnItem[T Coord] struct {
	Neighbor[T]
	seq int
}

// knnHeap is a max-heap of knnItem (largest distance on top, later admission
// on top among equals) used as a bounded priority queue.
type knnHeap[T Coord] []knnItem[T]

func (h knnHeap[T]) Len() int { return len(h) }
func (h knnHeap[T]) Less(i, j int) bool {
	if h[i].Dist != h[j].Dist {
		return h[i].Dist > h[j].Dist
	}
	return h[i].seq > h[j].seq
}
func (h knnHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *knnHeap[T]) Push(x any)   { *h = append(*h, x.(knnItem[T])) }
func (h *knnHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
