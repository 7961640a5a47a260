package pointcloud

import (
	"math/rand/v2"

	"github.com/TrevorS/kdindex"
)

// Point is a 3D point. Its metric is squared Euclidean distance, which pairs
// with kdindex.SquaredAxis.
type Point[T kdindex.Coord] [3]T

// Component returns the coordinate along dim (0, 1 or 2).
func (p *Point[T]) Component(dim int) T { return p[dim] }

// SignedDistance returns p[dim] - value.
func (p *Point[T]) SignedDistance(dim int, value T) T { return p[dim] - value }

// DistanceTo returns the squared Euclidean distance to o.
func (p *Point[T]) DistanceTo(o *Point[T]) T { return kdindex.SquaredEuclidean(p[:], o[:]) }

// Dims returns 3.
func (p *Point[T]) Dims() int { return 3 }

// Cloud is a growable slice of points. At returns pointers into Pts.
// Mutating Pts while an index over the cloud is queried is a data race;
// rebuild the index after changing the cloud.
type Cloud[T kdindex.Coord] struct {
	Pts []Point[T]
}

// Len returns the number of points.
func (c *Cloud[T]) Len() int { return len(c.Pts) }

// At returns a pointer to point i.
func (c *Cloud[T]) At(i int) *Point[T] { return &c.Pts[i] }

// Add appends a point.
func (c *Cloud[T]) Add(x, y, z T) { c.Pts = append(c.Pts, Point[T]{x, y, z}) }

// Generate returns n points drawn uniformly from [0, maxRange)^3.
func Generate[T kdindex.Coord](n int, maxRange T, rng *rand.Rand) *Cloud[T] {
	c := &Cloud[T]{Pts: make([]Point[T], n)}
	for i := range c.Pts {
		for d := range c.Pts[i] {
			c.Pts[i][d] = maxRange * T(rng.Float64())
		}
	}
	return c
}
