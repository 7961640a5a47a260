package kdindex

import "math"

// AxisMetric converts a one-dimensional offset into the units of the point
// type's DistanceTo. The index uses it to lower-bound the distance from a
// query to every point on the far side of a splitting plane, so
// AxisDistance(d) must never exceed the full distance between two points
// whose coordinates differ by d along some axis.
type AxisMetric[T Coord] interface {
	AxisDistance(delta T) T
}

// AxisFunc adapts a plain function into an AxisMetric.
type AxisFunc[T Coord] func(delta T) T

func (f AxisFunc[T]) AxisDistance(delta T) T { return f(delta) }

// SquaredAxis pairs with squared Euclidean point metrics: d -> d*d.
type SquaredAxis[T Coord] struct{}

func (SquaredAxis[T]) AxisDistance(delta T) T { return delta * delta }

// AbsAxis pairs with Euclidean, Manhattan and Chebyshev point metrics: d -> |d|.
type AbsAxis[T Coord] struct{}

func (AbsAxis[T]) AxisDistance(delta T) T { return abs(delta) }

// The helpers below are for point types implementing DistanceTo over a
// coordinate slice or array. They pair with the axis metrics above.

// SquaredEuclidean returns sum((a[i]-b[i])^2). Pair with SquaredAxis.
func SquaredEuclidean[T Coord](a, b []T) T {
	var sum T
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean returns the L2 distance. Pair with AbsAxis.
func Euclidean[T Coord](a, b []T) T {
	return T(math.Sqrt(float64(SquaredEuclidean(a, b))))
}

// Manhattan returns the L1 (city-block) distance. Pair with AbsAxis.
func Manhattan[T Coord](a, b []T) T {
	var sum T
	for i := range a {
		sum += abs(a[i] - b[i])
	}
	return sum
}

// Chebyshev returns the L-infinity distance. Pair with AbsAxis.
func Chebyshev[T Coord](a, b []T) T {
	var maxVal T
	for i := range a {
		if v := abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

func abs[T Coord](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func inf[T Coord]() T { return T(math.Inf(1)) }

// midpoint returns the value halfway between lo and hi, also when hi-lo
// overflows T.
func midpoint[T Coord](lo, hi T) T {
	if d := hi - lo; !math.IsInf(float64(d), 0) {
		return lo + d/2
	}
	return lo/2 + hi/2
}
