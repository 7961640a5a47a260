package kdindex

import "fmt"

// DefaultMaxLeafSize is the leaf threshold used when Config.MaxLeafSize is 0.
const DefaultMaxLeafSize = 10

// Config controls index construction.
// Start with [DefaultConfig] and override the fields you need.
type Config[T Coord] struct {
	// MaxLeafSize is the largest number of points stored directly in a leaf.
	// Smaller values give deeper trees and shorter leaf scans; results do not
	// depend on it. Must be >= 1. Default: 10.
	MaxLeafSize int

	// Metric lower-bounds the point metric along one axis and drives
	// branch-and-bound pruning. It must agree with the point type's
	// DistanceTo: SquaredAxis for squared Euclidean points, AbsAxis for
	// Euclidean, Manhattan or Chebyshev points. Default: SquaredAxis.
	Metric AxisMetric[T]

	// SkipInitialBuild leaves the index unbuilt after New. Call Build before
	// querying. Default: false.
	SkipInitialBuild bool

	// Logger receives build and (at Debug level) search events.
	// Default: NoopLogger.
	Logger *Logger

	// Metrics receives build and search events. Default: NoopMetricsCollector.
	Metrics MetricsCollector
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig[T Coord]() Config[T] {
	return Config[T]{
		MaxLeafSize: DefaultMaxLeafSize,
		Metric:      SquaredAxis[T]{},
	}
}

// validateConfig checks cfg after defaults have been applied.
func validateConfig[T Coord](dims int, cfg *Config[T]) error {
	if dims < 1 {
		return fmt.Errorf("%w: dims must be >= 1, got %d", ErrInvalidConfig, dims)
	}
	if cfg.MaxLeafSize < 1 {
		return fmt.Errorf("%w: MaxLeafSize must be >= 1, got %d", ErrInvalidConfig, cfg.MaxLeafSize)
	}
	return nil
}

// applyDefaults fills in zero-valued fields. A negative MaxLeafSize is left
// alone so validation rejects it.
func applyDefaults[T Coord](cfg *Config[T]) {
	if cfg.MaxLeafSize == 0 {
		cfg.MaxLeafSize = DefaultMaxLeafSize
	}
	if cfg.Metric == nil {
		cfg.Metric = SquaredAxis[T]{}
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetricsCollector{}
	}
}
