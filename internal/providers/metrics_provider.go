package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"stationd/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCatalogRequests(endpoint string, status int)
	IncCacheHits()
	IncCacheMisses()
	SetServerScore(host string, score int)
	IncServerReselections()
	SetStarredTotal(count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	catalogRequests     *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	serverScore         *prometheus.GaugeVec
	reselections        prometheus.Counter
	starredTotal        prometheus.Gauge
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncCatalogRequests takes status 0 for transport failures.
func (m *MetricsProvider) IncCatalogRequests(endpoint string, status int) {
	bucket := "error"
	if status > 0 {
		bucket = httpStatusBucket(status)
	}
	m.catalogRequests.WithLabelValues(endpoint, bucket).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) SetServerScore(host string, score int) {
	m.serverScore.Reset()
	m.serverScore.WithLabelValues(host).Set(float64(score))
}

func (m *MetricsProvider) IncServerReselections() {
	m.reselections.Inc()
}

func (m *MetricsProvider) SetStarredTotal(count int) {
	m.starredTotal.Set(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stationd_requests_total",
			Help: "Total number of local API requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stationd_request_duration_seconds",
			Help:    "Local API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		catalogRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stationd_catalog_requests_total",
			Help: "Total number of requests sent to catalog servers",
		}, []string{"endpoint", "status"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stationd_cache_hits_total",
			Help: "Total number of catalog cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stationd_cache_misses_total",
			Help: "Total number of catalog cache misses",
		}),

		serverScore: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stationd_server_score",
			Help: "Degradation score of the selected catalog server",
		}, []string{"host"}),

		reselections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stationd_server_reselections_total",
			Help: "Number of times a new catalog server was selected",
		}),

		starredTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stationd_starred_stations",
			Help: "Number of starred stations in the local store",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stationd_persistence_duration_seconds",
			Help:    "Duration of starred store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCatalogRequests(_ string, _ int)               {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) SetServerScore(_ string, _ int)                   {}
func (n *noopMetrics) IncServerReselections()                           {}
func (n *noopMetrics) SetStarredTotal(_ int)                            {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
