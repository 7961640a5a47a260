package kdindex

// NodeData describes a single node of the tree.
//
// Leaves own the index range IdxArray()[IdxStart:IdxEnd]. Internal nodes
// cover the union of their children's ranges and record how they were split.
type NodeData[T Coord] struct {
	IdxStart, IdxEnd int
	IsLeaf           bool

	// Left and Right are positions in Nodes(); -1 for leaves.
	Left, Right int

	// Dim and Split are the splitting axis and value. Points left of the
	// split have SignedDistance(Dim, Split) <= 0, points right of it >= 0.
	Dim   int
	Split T

	// Low and High bound every point of the subtree along Dim.
	Low, High T

	// DivLow is the largest Dim coordinate in the left child, DivHigh the
	// smallest in the right child.
	DivLow, DivHigh T
}

// Interval is a closed coordinate range along one dimension.
type Interval[T Coord] struct {
	Low, High T
}

// Contains reports whether v lies in [Low, High].
func (iv Interval[T]) Contains(v T) bool { return v >= iv.Low && v <= iv.High }
