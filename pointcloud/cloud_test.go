package pointcloud

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TrevorS/kdindex"
)

func TestGenerate_RangeAndDeterminism(t *testing.T) {
	a := Generate(1000, 10.0, rand.New(rand.NewPCG(1, 2)))
	b := Generate(1000, 10.0, rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, 1000, a.Len())
	assert.Equal(t, a.Pts, b.Pts)

	for i := range a.Len() {
		for d := 0; d < 3; d++ {
			v := a.At(i).Component(d)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 10.0)
		}
	}
}

func TestPoint_Contract(t *testing.T) {
	p := &Point[float32]{1, 2, 3}
	q := &Point[float32]{4, 6, 3}

	assert.Equal(t, float32(2), p.Component(1))
	assert.Equal(t, float32(-0.5), p.SignedDistance(0, 1.5))
	assert.Equal(t, float32(25), p.DistanceTo(q))
	assert.Equal(t, 3, p.Dims())
}

func TestCloud_AtAliasesStorage(t *testing.T) {
	c := &Cloud[float64]{}
	c.Add(1, 2, 3)
	c.At(0)[2] = 9
	assert.Equal(t, 9.0, c.Pts[0][2])
}

func TestHalfPoint_Rounding(t *testing.T) {
	p := NewHalfPoint(0.1, 1, 65504)
	assert.InDelta(t, 0.1, p.Component(0), 1e-4)
	assert.Equal(t, float32(1), p.Component(1))
	assert.Equal(t, float32(65504), p.Component(2))

	q := NewHalfPoint(0, 1, 65504)
	assert.InDelta(t, 0.01, p.DistanceTo(&q), 1e-4)
	assert.InDelta(t, 0.1, p.SignedDistance(0, 0), 1e-4)
}

func TestVec_Contract(t *testing.T) {
	c := &VecCloud{Vecs: []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 6, Z: 3}}}
	assert.Equal(t, 2, c.Len())

	v := c.At(0)
	assert.Equal(t, 1.0, v.Component(0))
	assert.Equal(t, 2.0, v.Component(1))
	assert.Equal(t, 3.0, v.Component(2))
	assert.Equal(t, -1.0, v.SignedDistance(1, 3))
	assert.Equal(t, 25.0, v.DistanceTo(c.At(1)))

	v.X = 7
	assert.Equal(t, 7.0, c.Vecs[0].X, "At aliases the backing slice")
}

// Every storage format must index and query like a brute-force scan.
func TestFormats_IndexMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	t.Run("float64", func(t *testing.T) {
		a := kdindex.NewAdaptor[*Point[float64], float64](Generate(5000, 1.0, rng))
		idx, err := kdindex.New(3, a, kdindex.DefaultConfig[float64]())
		require.NoError(t, err)
		q := &Point[float64]{0.5, 0.5, 0.5}
		got, err := idx.KNN(q, 5)
		require.NoError(t, err)
		assert.Equal(t, kdindex.BruteForceKNN(a, q, 5), got)
	})

	t.Run("float32", func(t *testing.T) {
		a := kdindex.NewAdaptor[*Point[float32], float32](Generate(5000, float32(1), rng))
		idx, err := kdindex.New(3, a, kdindex.DefaultConfig[float32]())
		require.NoError(t, err)
		q := &Point[float32]{0.5, 0.5, 0.5}
		got, err := idx.KNN(q, 5)
		require.NoError(t, err)
		assert.Equal(t, kdindex.BruteForceKNN(a, q, 5), got)
	})

	t.Run("float16", func(t *testing.T) {
		a := kdindex.NewAdaptor[*HalfPoint, float32](GenerateHalf(5000, 1, rng))
		idx, err := kdindex.New(3, a, kdindex.DefaultConfig[float32]())
		require.NoError(t, err)
		q := NewHalfPoint(0.5, 0.5, 0.5)
		got, err := idx.KNN(&q, 5)
		require.NoError(t, err)
		// Half precision produces exact duplicates, so compare distances only.
		want := kdindex.BruteForceKNN(a, &q, 5)
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Dist, got[i].Dist)
		}
	})

	t.Run("r3", func(t *testing.T) {
		c := &VecCloud{Vecs: make([]r3.Vec, 5000)}
		for i := range c.Vecs {
			c.Vecs[i] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		}
		a := kdindex.NewAdaptor[*Vec, float64](c)
		idx, err := kdindex.New(3, a, kdindex.DefaultConfig[float64]())
		require.NoError(t, err)
		q := &Vec{X: 0.5, Y: 0.5, Z: 0.5}
		got, err := idx.KNN(q, 5)
		require.NoError(t, err)
		assert.Equal(t, kdindex.BruteForceKNN(a, q, 5), got)
	})
}
