package kdindex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exports build and search events as Prometheus metrics.
type PrometheusCollector struct {
	builds         prometheus.Counter
	buildDuration  prometheus.Histogram
	indexedPoints  prometheus.Gauge
	treeNodes      prometheus.Gauge
	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchResults  *prometheus.HistogramVec
}

// NewPrometheusCollector registers the index metrics on reg under namespace.
// It panics if the metrics are already registered on reg.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	f := promauto.With(reg)
	return &PrometheusCollector{
		builds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kdtree_builds_total",
			Help:      "Total number of kd-tree builds",
		}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kdtree_build_duration_seconds",
			Help:      "Duration of kd-tree builds in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
		indexedPoints: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kdtree_points",
			Help:      "Number of points covered by the last build",
		}),
		treeNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kdtree_nodes",
			Help:      "Number of tree nodes produced by the last build",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kdtree_searches_total",
			Help:      "Total number of kd-tree queries",
		}, []string{"kind"}),
		searchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kdtree_search_duration_seconds",
			Help:      "Duration of kd-tree queries in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		}, []string{"kind"}),
		searchResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kdtree_search_results",
			Help:      "Number of neighbors returned per query",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"kind"}),
	}
}

// RecordBuild implements MetricsCollector.
func (p *PrometheusCollector) RecordBuild(points, nodes int, duration time.Duration) {
	p.builds.Inc()
	p.buildDuration.Observe(duration.Seconds())
	p.indexedPoints.Set(float64(points))
	p.treeNodes.Set(float64(nodes))
}

// RecordSearch implements MetricsCollector.
func (p *PrometheusCollector) RecordSearch(kind SearchKind, found int, duration time.Duration) {
	p.searches.WithLabelValues(string(kind)).Inc()
	p.searchDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
	p.searchResults.WithLabelValues(string(kind)).Observe(float64(found))
}
