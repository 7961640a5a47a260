package kdindex

import (
	"sync/atomic"
	"time"
)

// SearchKind labels a query for logging and metrics.
type SearchKind string

const (
	SearchKNN       SearchKind = "knn"
	SearchRadius    SearchKind = "radius"
	SearchNeighbors SearchKind = "neighbors"
)

// MetricsCollector receives build and search events. Implementations must be
// safe for concurrent use because a built index may be queried from many
// goroutines.
type MetricsCollector interface {
	// RecordBuild is called after every Build.
	RecordBuild(points, nodes int, duration time.Duration)

	// RecordSearch is called after every query with the number of results.
	RecordSearch(kind SearchKind, found int, duration time.Duration)
}

// NoopMetricsCollector discards all events.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration)         {}
func (NoopMetricsCollector) RecordSearch(SearchKind, int, time.Duration) {}

// BasicMetricsCollector keeps in-memory counters. Useful in tests and for
// debugging without a monitoring stack.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildTotalNanos  atomic.Int64
	LastBuildPoints  atomic.Int64
	LastBuildNodes   atomic.Int64
	SearchCount      atomic.Int64
	SearchResults    atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points, nodes int, duration time.Duration) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	b.LastBuildPoints.Store(int64(points))
	b.LastBuildNodes.Store(int64(nodes))
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ SearchKind, found int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchResults.Add(int64(found))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// AverageSearchLatency returns the mean search duration, or 0 before any search.
func (b *BasicMetricsCollector) AverageSearchLatency() time.Duration {
	n := b.SearchCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.SearchTotalNanos.Load() / n)
}
