package providers

import (
	"stationd/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCatalogRequests("search", 0)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.SetServerScore("de1.example.test", 93)
	m.IncServerReselections()
	m.SetStarredTotal(3)
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncRequestsTotal("/sources", 201)
	m.IncRequestsTotal("/sources", 400)
	m.ObserveRequestDuration("/sources", 5*time.Millisecond)
	m.IncCatalogRequests("search", 200)
	m.IncCatalogRequests("search", 0)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncServerReselections()
	m.SetStarredTotal(42)
	m.ObservePersistenceDuration(100 * time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("/sources", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.catalogRequests.WithLabelValues("search", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reselections))
	assert.Equal(t, float64(42), testutil.ToFloat64(m.starredTotal))
}

func TestMetricsProvider_ServerScoreKeepsOnlyCurrentHost(t *testing.T) {
	reg := useTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}).(*MetricsProvider)
	m.SetServerScore("a.example.test", 100)
	m.SetServerScore("b.example.test", 93)

	assert.Equal(t, 1, testutil.CollectAndCount(m.serverScore))
	assert.Equal(t, float64(93), testutil.ToFloat64(m.serverScore.WithLabelValues("b.example.test")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
