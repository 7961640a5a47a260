package pointcloud

import "gonum.org/v1/gonum/spatial/r3"

// Vec is a gonum r3 vector satisfying the kdindex point contract with a
// squared Euclidean metric.
type Vec r3.Vec

// Component returns X, Y or Z for dim 0, 1 or 2.
func (v *Vec) Component(dim int) float64 {
	switch dim {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SignedDistance returns Component(dim) - value.
func (v *Vec) SignedDistance(dim int, value float64) float64 { return v.Component(dim) - value }

// DistanceTo returns the squared Euclidean distance to o.
func (v *Vec) DistanceTo(o *Vec) float64 { return r3.Norm2(r3.Sub(r3.Vec(*v), r3.Vec(*o))) }

// Dims returns 3.
func (v *Vec) Dims() int { return 3 }

// VecCloud indexes an existing []r3.Vec in place.
type VecCloud struct {
	Vecs []r3.Vec
}

// Len returns the number of vectors.
func (c *VecCloud) Len() int { return len(c.Vecs) }

// At returns vector i viewed as a *Vec. The pointer aliases c.Vecs[i].
func (c *VecCloud) At(i int) *Vec { return (*Vec)(&c.Vecs[i]) }
