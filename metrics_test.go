package kdindex

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObservedIndex(t *testing.T, m MetricsCollector, l *Logger) *Index[pt[float64], float64] {
	t.Helper()
	cfg := DefaultConfig[float64]()
	cfg.Metrics = m
	cfg.Logger = l
	idx, err := New(3, NewAdaptor[pt[float64], float64](randomPoints(newRNG(40), 250, 3)), cfg)
	require.NoError(t, err)
	return idx
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	assert.Zero(t, m.AverageSearchLatency())

	idx := newObservedIndex(t, m, nil)
	assert.Equal(t, int64(1), m.BuildCount.Load())
	assert.Equal(t, int64(250), m.LastBuildPoints.Load())
	assert.Equal(t, int64(len(idx.Nodes())), m.LastBuildNodes.Load())

	_, err := idx.KNN(pt[float64]{0.5, 0.5, 0.5}, 3)
	require.NoError(t, err)
	_, err = idx.RadiusSearch(pt[float64]{0.5, 0.5, 0.5}, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), m.SearchCount.Load())
	assert.Equal(t, int64(3), m.SearchResults.Load())

	require.NoError(t, idx.Build())
	assert.Equal(t, int64(2), m.BuildCount.Load())
}

func TestBasicMetricsCollector_AverageSearchLatency(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordSearch(SearchKNN, 1, 10*time.Millisecond)
	m.RecordSearch(SearchKNN, 1, 30*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, m.AverageSearchLatency())
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusCollector(reg, "test")

	idx := newObservedIndex(t, p, nil)
	_, err := idx.KNN(pt[float64]{0.5, 0.5, 0.5}, 2)
	require.NoError(t, err)
	_, err = idx.KNN(pt[float64]{0.1, 0.5, 0.5}, 2)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.builds))
	assert.Equal(t, 250.0, testutil.ToFloat64(p.indexedPoints))
	assert.Equal(t, float64(len(idx.Nodes())), testutil.ToFloat64(p.treeNodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.searches.WithLabelValues(string(SearchKNN))))

	expected := `
# HELP test_kdtree_searches_total Total number of kd-tree queries
# TYPE test_kdtree_searches_total counter
test_kdtree_searches_total{kind="knn"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_kdtree_searches_total"))
}

func TestPrometheusCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusCollector(reg, "dup")
	assert.Panics(t, func() { NewPrometheusCollector(reg, "dup") })
}

func TestLogger_LogsBuild(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	newObservedIndex(t, nil, l)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kd-tree built", rec["msg"])
	assert.Equal(t, 250.0, rec["points"])
	assert.Equal(t, float64(DefaultMaxLeafSize), rec["leaf_size"])
}

func TestLogger_SearchOnlyAtDebug(t *testing.T) {
	var info, debug bytes.Buffer
	infoIdx := newObservedIndex(t, nil, NewLogger(slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo})))
	debugIdx := newObservedIndex(t, nil, NewLogger(slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug})))

	for _, idx := range []*Index[pt[float64], float64]{infoIdx, debugIdx} {
		_, err := idx.KNN(pt[float64]{0, 0, 0}, 1)
		require.NoError(t, err)
	}

	assert.NotContains(t, info.String(), "search completed")
	assert.Contains(t, debug.String(), "search completed")
	assert.Contains(t, debug.String(), "kind=knn")
}

func TestLogger_LogsBuildFailure(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig[float64]()
	cfg.Logger = NewLogger(slog.NewTextHandler(&buf, nil))
	_, err := New(2, NewAdaptor[pt[float64], float64](randomPoints(newRNG(41), 5, 3)), cfg)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, buf.String(), "kd-tree build failed")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
}
