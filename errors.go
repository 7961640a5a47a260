package kdindex

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a point index is outside [0, Len()).
	ErrIndexOutOfRange = errors.New("kdindex: point index out of range")

	// ErrInvalidConfig is returned when a Config field fails validation.
	ErrInvalidConfig = errors.New("kdindex: invalid config")

	// ErrDimensionMismatch is returned when the points report a dimensionality
	// different from the one the index was constructed with.
	ErrDimensionMismatch = errors.New("kdindex: dimension mismatch")

	// ErrNilAdaptor is returned by New when no adaptor is supplied.
	ErrNilAdaptor = errors.New("kdindex: nil adaptor")

	// ErrNotBuilt is returned by queries issued before Build has completed.
	ErrNotBuilt = errors.New("kdindex: index not built")
)

// DimensionError describes a dimensionality mismatch between the index and
// the point at Index. It unwraps to ErrDimensionMismatch.
type DimensionError struct {
	Expected int
	Actual   int
	Index    int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("kdindex: dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

func outOfRange(i, n int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
}
