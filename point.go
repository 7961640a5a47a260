package kdindex

// Coord is the scalar type of point coordinates and distances.
type Coord interface {
	~float32 | ~float64
}

// Point is the contract a caller-defined point type satisfies to be indexed.
// P is the point type itself, so DistanceTo compares two points of the same
// type without boxing.
type Point[P any, T Coord] interface {
	// Component returns the coordinate along dim.
	Component(dim int) T

	// SignedDistance returns Component(dim) - value. The index uses the sign
	// to place the point relative to a splitting plane.
	SignedDistance(dim int, value T) T

	// DistanceTo returns the metric distance to other. The metric (for
	// example squared Euclidean) is defined by the point type.
	DistanceTo(other P) T
}

// Dimensioned is optionally implemented by point types that know their
// dimensionality. New rejects a dims argument that differs from Dims. Points
// without it are only required to expose at least dims components.
type Dimensioned interface {
	Dims() int
}

// Source is a caller-owned, integer-indexed point collection.
//
// At must return a view of the stored point (typically a pointer into the
// backing slice), not a copy that outlives the collection's storage.
type Source[P any] interface {
	Len() int
	At(i int) P
}
