package kdindex

// Adaptor is a read-only, non-owning view over a Source. It never copies
// point data: every call goes through to the wrapped collection, so Len and
// Point always reflect the collection at the time of the call.
//
// The collection must not be mutated while an index built from the adaptor
// is being queried.
type Adaptor[P Point[P, T], T Coord] struct {
	src Source[P]
}

// NewAdaptor wraps src. It allocates nothing beyond the adaptor itself.
func NewAdaptor[P Point[P, T], T Coord](src Source[P]) *Adaptor[P, T] {
	return &Adaptor[P, T]{src: src}
}

// PointView is a lightweight handle to one point of the wrapped collection.
type PointView[P Point[P, T], T Coord] struct {
	pt P
}

// Component returns the coordinate along dim.
func (v PointView[P, T]) Component(dim int) T { return v.pt.Component(dim) }

// SignedDistance returns the offset of the point from value along dim.
func (v PointView[P, T]) SignedDistance(dim int, value T) T {
	return v.pt.SignedDistance(dim, value)
}

// DistanceTo returns the metric distance between the two viewed points.
func (v PointView[P, T]) DistanceTo(other PointView[P, T]) T { return v.pt.DistanceTo(other.pt) }

// Raw returns the underlying point value.
func (v PointView[P, T]) Raw() P { return v.pt }

// Len returns the number of points in the wrapped collection.
func (a *Adaptor[P, T]) Len() int { return a.src.Len() }

// Point returns a view of point i, or ErrIndexOutOfRange.
func (a *Adaptor[P, T]) Point(i int) (PointView[P, T], error) {
	if n := a.src.Len(); i < 0 || i >= n {
		return PointView[P, T]{}, outOfRange(i, n)
	}
	return PointView[P, T]{pt: a.src.At(i)}, nil
}

// View wraps a point that is not part of the collection, such as a query.
func (a *Adaptor[P, T]) View(p P) PointView[P, T] { return PointView[P, T]{pt: p} }

// Component returns the coordinate of v along dim.
func (a *Adaptor[P, T]) Component(v PointView[P, T], dim int) T { return v.pt.Component(dim) }

// SignedDistance returns the offset of v from value along dim.
func (a *Adaptor[P, T]) SignedDistance(v PointView[P, T], dim int, value T) T {
	return v.pt.SignedDistance(dim, value)
}

// DistanceTo returns the metric distance between x and y.
func (a *Adaptor[P, T]) DistanceTo(x, y PointView[P, T]) T { return x.pt.DistanceTo(y.pt) }

// Bounds returns the minimum and maximum coordinate along dim over the points
// named by indices. indices must be non-empty and every entry in range; it
// panics otherwise.
func (a *Adaptor[P, T]) Bounds(indices []int, dim int) (lo, hi T) {
	lo = a.src.At(indices[0]).Component(dim)
	hi = lo
	for _, i := range indices[1:] {
		v := a.src.At(i).Component(dim)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// at returns point i without a bounds check; callers own the invariant.
func (a *Adaptor[P, T]) at(i int) P { return a.src.At(i) }
