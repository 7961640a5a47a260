package pointcloud

import (
	"math/rand/v2"

	"github.com/x448/float16"

	"github.com/TrevorS/kdindex"
)

// HalfPoint stores a 3D point in half precision and computes in float32.
type HalfPoint [3]float16.Float16

// Component returns the coordinate along dim widened to float32.
func (p *HalfPoint) Component(dim int) float32 { return p[dim].Float32() }

// SignedDistance returns Component(dim) - value.
func (p *HalfPoint) SignedDistance(dim int, value float32) float32 {
	return p[dim].Float32() - value
}

// DistanceTo returns the squared Euclidean distance to o in float32.
func (p *HalfPoint) DistanceTo(o *HalfPoint) float32 {
	a := [3]float32{p[0].Float32(), p[1].Float32(), p[2].Float32()}
	b := [3]float32{o[0].Float32(), o[1].Float32(), o[2].Float32()}
	return kdindex.SquaredEuclidean(a[:], b[:])
}

// Dims returns 3.
func (p *HalfPoint) Dims() int { return 3 }

// NewHalfPoint rounds x, y and z to the nearest half-precision values.
func NewHalfPoint(x, y, z float32) HalfPoint {
	return HalfPoint{float16.Fromfloat32(x), float16.Fromfloat32(y), float16.Fromfloat32(z)}
}

// HalfCloud is a point cloud using 6 bytes per point.
type HalfCloud struct {
	Pts []HalfPoint
}

// Len returns the number of points.
func (c *HalfCloud) Len() int { return len(c.Pts) }

// At returns a pointer to point i.
func (c *HalfCloud) At(i int) *HalfPoint { return &c.Pts[i] }

// GenerateHalf returns n points drawn uniformly from [0, maxRange)^3 and
// rounded to half precision.
func GenerateHalf(n int, maxRange float32, rng *rand.Rand) *HalfCloud {
	c := &HalfCloud{Pts: make([]HalfPoint, n)}
	for i := range c.Pts {
		c.Pts[i] = NewHalfPoint(
			maxRange*rng.Float32(),
			maxRange*rng.Float32(),
			maxRange*rng.Float32(),
		)
	}
	return c
}
