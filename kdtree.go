package kdindex

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"
)

// Index is a KD-tree over the points of an Adaptor.
//
// The index stores only a permutation of point positions and the node
// array; points stay in the caller's collection, which must outlive the
// index and must not be mutated while queries run. A built index is safe
// for any number of concurrent queries. Build is not: no query may run
// concurrently with it.
type Index[P Point[P, T], T Coord] struct {
	dims    int
	adaptor *Adaptor[P, T]
	cfg     Config[T]

	idxArray []int         // permutation: tree-order position → point index
	nodes    []NodeData[T] // nodes[0] is the root when non-empty
	bbox     []Interval[T] // root bounding box, one interval per dimension
	built    bool
}

// New creates an index over a for points of dimensionality dims and, unless
// cfg.SkipInitialBuild is set, builds it.
//
// Invalid configuration fails with ErrInvalidConfig. If the first point
// disagrees with dims (see Dimensioned), New fails with a *DimensionError. An
// empty collection is not an error: every query on it returns no results.
func New[P Point[P, T], T Coord](dims int, a *Adaptor[P, T], cfg Config[T]) (*Index[P, T], error) {
	if a == nil {
		return nil, ErrNilAdaptor
	}
	applyDefaults(&cfg)
	if err := validateConfig(dims, &cfg); err != nil {
		return nil, err
	}

	x := &Index[P, T]{dims: dims, adaptor: a, cfg: cfg}
	if !cfg.SkipInitialBuild {
		if err := x.Build(); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Build (re)builds the tree from the adaptor's current contents. Building
// twice from an unchanged collection yields an identical tree.
func (x *Index[P, T]) Build() error {
	start := time.Now()
	n := x.adaptor.Len()
	if err := x.checkDims(n); err != nil {
		x.cfg.Logger.LogBuild(context.Background(), n, 0, x.cfg.MaxLeafSize, time.Since(start), err)
		return err
	}

	x.idxArray = make([]int, n)
	for i := range x.idxArray {
		x.idxArray[i] = i
	}
	x.nodes = make([]NodeData[T], 0, maxNodes(n, x.cfg.MaxLeafSize))
	x.bbox = nil

	if n > 0 {
		x.bbox = make([]Interval[T], x.dims)
		for d := range x.bbox {
			lo, hi := x.adaptor.Bounds(x.idxArray, d)
			x.bbox[d] = Interval[T]{Low: lo, High: hi}
		}
		x.divide(0, n)
	}
	x.built = true

	took := time.Since(start)
	x.cfg.Logger.LogBuild(context.Background(), n, len(x.nodes), x.cfg.MaxLeafSize, took, nil)
	x.cfg.Metrics.RecordBuild(n, len(x.nodes), took)
	return nil
}

// checkDims compares dims with the first point. A point implementing
// Dimensioned must report exactly dims; any other point must expose at least
// dims components.
func (x *Index[P, T]) checkDims(n int) error {
	if n == 0 {
		return nil
	}
	p := x.adaptor.at(0)
	if d, ok := any(p).(Dimensioned); ok {
		if d.Dims() != x.dims {
			return &DimensionError{Expected: x.dims, Actual: d.Dims(), Index: 0}
		}
		return nil
	}
	if got := readableDims(p, x.dims); got < x.dims {
		return &DimensionError{Expected: x.dims, Actual: got, Index: 0}
	}
	return nil
}

// readableDims returns how many of the first limit components of p can be
// read before Component panics with a runtime error. Other panics propagate.
func readableDims[P Point[P, T], T Coord](p P, limit int) (dims int) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
		}
	}()
	for dims = 0; dims < limit; dims++ {
		_ = p.Component(dims)
	}
	return dims
}

// maxNodes is a capacity hint: the node count when every leaf is full.
// Lopsided splits grow the slice past it.
func maxNodes(n, leafSize int) int {
	if n == 0 {
		return 0
	}
	leaves := (n + leafSize - 1) / leafSize
	return 2*leaves - 1
}

// divide builds the subtree for idxArray[start:end] and returns its node id.
func (x *Index[P, T]) divide(start, end int) int {
	id := len(x.nodes)
	x.nodes = append(x.nodes, NodeData[T]{IdxStart: start, IdxEnd: end, IsLeaf: true, Left: -1, Right: -1})

	count := end - start
	if count <= x.cfg.MaxLeafSize {
		return id
	}

	dim, lo, hi := x.widestDim(start, end)
	split := midpoint(lo, hi)
	mid := start + x.planeCut(start, end, dim, split)

	_, divLow := x.adaptor.Bounds(x.idxArray[start:mid], dim)
	divHigh, _ := x.adaptor.Bounds(x.idxArray[mid:end], dim)

	left := x.divide(start, mid)
	right := x.divide(mid, end)

	// x.nodes may have been reallocated by the recursive calls.
	x.nodes[id] = NodeData[T]{
		IdxStart: start,
		IdxEnd:   end,
		Left:     left,
		Right:    right,
		Dim:      dim,
		Split:    split,
		Low:      lo,
		High:     hi,
		DivLow:   divLow,
		DivHigh:  divHigh,
	}
	return id
}

// widestDim returns the dimension with the greatest spread over
// idxArray[start:end] and its bounds. Ties go to the lower dimension.
func (x *Index[P, T]) widestDim(start, end int) (dim int, lo, hi T) {
	sub := x.idxArray[start:end]
	lo, hi = x.adaptor.Bounds(sub, 0)
	for d := 1; d < x.dims; d++ {
		l, h := x.adaptor.Bounds(sub, d)
		if h-l > hi-lo {
			dim, lo, hi = d, l, h
		}
	}
	return dim, lo, hi
}

// planeCut partitions idxArray[start:end] in place into points below split,
// on it, and above it along dim, then picks a cut offset in [1, count-1]
// that keeps both children non-empty and the tree balanced: the plane itself
// when it falls past the middle, otherwise the middle of the on-plane run.
// count must be at least 2.
func (x *Index[P, T]) planeCut(start, end, dim int, split T) int {
	idx := x.idxArray
	sd := func(i int) T { return x.adaptor.at(idx[i]).SignedDistance(dim, split) }

	left, right := start, end-1
	for {
		for left <= right && sd(left) < 0 {
			left++
		}
		for left <= right && sd(right) >= 0 {
			right--
		}
		if left > right {
			break
		}
		idx[left], idx[right] = idx[right], idx[left]
		left++
		right--
	}
	lim1 := left - start

	right = end - 1
	for {
		for left <= right && sd(left) <= 0 {
			left++
		}
		for left <= right && sd(right) > 0 {
			right--
		}
		if left > right {
			break
		}
		idx[left], idx[right] = idx[right], idx[left]
		left++
		right--
	}
	lim2 := left - start

	count := end - start
	half := count / 2
	cut := half
	switch {
	case lim1 > half:
		cut = lim1
	case lim2 < half:
		cut = lim2
	}
	// A split outside the data (rounding at the extremes of T) leaves every
	// point on one side.
	return min(max(cut, 1), count-1)
}

// Built reports whether Build has completed.
func (x *Index[P, T]) Built() bool { return x.built }

// Dims returns the dimensionality the index was constructed with.
func (x *Index[P, T]) Dims() int { return x.dims }

// Len returns the number of points covered by the last build.
func (x *Index[P, T]) Len() int { return len(x.idxArray) }

// Adaptor returns the adaptor the index reads points through.
func (x *Index[P, T]) Adaptor() *Adaptor[P, T] { return x.adaptor }

// IdxArray returns a copy of the permutation mapping tree-order positions
// to point indices.
func (x *Index[P, T]) IdxArray() []int { return slices.Clone(x.idxArray) }

// Nodes returns a copy of the node array; element 0 is the root.
func (x *Index[P, T]) Nodes() []NodeData[T] { return slices.Clone(x.nodes) }

// Bounds returns the bounding box of all indexed points, or nil when the
// index is empty or unbuilt.
func (x *Index[P, T]) Bounds() []Interval[T] { return slices.Clone(x.bbox) }

// FindNeighbors runs a branch-and-bound search for q, feeding candidates to
// rs. It returns false if rs stopped the search early.
func (x *Index[P, T]) FindNeighbors(q P, rs ResultSet[T]) (bool, error) {
	if !x.built {
		return false, ErrNotBuilt
	}
	if len(x.nodes) == 0 {
		return true, nil
	}
	return x.search(0, q, rs), nil
}

// KNN returns the k points nearest to q by ascending distance. Fewer than k
// are returned when the index holds fewer points; none when k <= 0.
func (x *Index[P, T]) KNN(q P, k int) ([]Neighbor[T], error) {
	if !x.built {
		return nil, ErrNotBuilt
	}
	if k <= 0 || len(x.nodes) == 0 {
		return nil, nil
	}
	start := time.Now()
	rs := NewKNNResultSet[T](min(k, len(x.idxArray)))
	x.search(0, q, rs)
	out := rs.Neighbors()
	x.observe(SearchKNN, len(out), time.Since(start))
	return out, nil
}

// RadiusSearch returns every point whose distance to q is below radius, by
// ascending distance. radius is in DistanceTo units.
func (x *Index[P, T]) RadiusSearch(q P, radius T) ([]Neighbor[T], error) {
	if !x.built {
		return nil, ErrNotBuilt
	}
	if len(x.nodes) == 0 {
		return nil, nil
	}
	start := time.Now()
	rs := NewRadiusResultSet(radius)
	x.search(0, q, rs)
	out := rs.Neighbors()
	x.observe(SearchRadius, len(out), time.Since(start))
	return out, nil
}

// search visits node id, nearer child first, skipping the far child when
// its distance lower bound exceeds the current worst result. Candidates and
// bounds equal to the worst are still offered so that infinite distances
// can fill a set whose worst is +Inf; the result set rejects ties.
func (x *Index[P, T]) search(id int, q P, rs ResultSet[T]) bool {
	nd := &x.nodes[id]
	if nd.IsLeaf {
		for _, i := range x.idxArray[nd.IdxStart:nd.IdxEnd] {
			d := q.DistanceTo(x.adaptor.at(i))
			if d <= rs.WorstDist() && !rs.AddPoint(d, i) {
				return false
			}
		}
		return true
	}

	near, far := nd.Left, nd.Right
	gap := q.SignedDistance(nd.Dim, nd.DivHigh)
	if q.SignedDistance(nd.Dim, nd.Split) >= 0 {
		near, far = far, near
		gap = q.SignedDistance(nd.Dim, nd.DivLow)
	}

	if !x.search(near, q, rs) {
		return false
	}
	if x.cfg.Metric.AxisDistance(gap) <= rs.WorstDist() {
		return x.search(far, q, rs)
	}
	return true
}

func (x *Index[P, T]) observe(kind SearchKind, found int, took time.Duration) {
	x.cfg.Metrics.RecordSearch(kind, found, took)
	x.cfg.Logger.LogSearch(context.Background(), kind, found, took)
}

func (x *Index[P, T]) String() string {
	return fmt.Sprintf("kdindex.Index{dims: %d, points: %d, nodes: %d, leaf: %d}",
		x.dims, len(x.idxArray), len(x.nodes), x.cfg.MaxLeafSize)
}
