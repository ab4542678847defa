package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "tms"

// MetricsService owns the Prometheus registry and the collectors fed by the
// HTTP middleware and the cache layer. All recording methods are nil-safe so
// instrumentation can be absent in tests.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLookup   prometheus.Histogram
	cacheWrite    prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheHitRatio prometheus.Gauge

	hitCount  uint64
	missCount uint64
}

func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by route.",
	}, []string{"method", "path", "status"})

	m.cacheLookup = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_lookup_duration_seconds",
		Help:      "Cache lookup latency.",
		Buckets:   prometheus.DefBuckets,
	})

	m.cacheWrite = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "cache_write_duration_seconds",
		Help:      "Cache write latency.",
		Buckets:   prometheus.DefBuckets,
	})

	m.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hits_total",
		Help:      "Cache lookups that hit.",
	})

	m.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_misses_total",
		Help:      "Cache lookups that missed.",
	})

	m.cacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "cache_hit_ratio",
		Help:      "Hits over total cache lookups since start.",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "goroutines",
		Help:      "Current goroutine count.",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLookup, m.cacheWrite,
		m.cacheHits, m.cacheMisses, m.cacheHitRatio,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})

	return m
}

// Handler serves the scrape endpoint for this service's registry.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	s := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, s).Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(method, path, s).Inc()
}

// RecordCacheOperation records one cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cacheLookup.Observe(elapsed.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.hitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.missCount, 1)
	}

	hits := atomic.LoadUint64(&m.hitCount)
	total := hits + atomic.LoadUint64(&m.missCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite records the latency of one cache write.
func (m *MetricsService) ObserveCacheWrite(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(elapsed.Seconds())
}
