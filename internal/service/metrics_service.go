package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/educafacil/educafacil-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for API consumption. It observes HTTP traffic,
// repository persistence and tutor collaborator calls.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	persistFailures *prometheus.CounterVec
	tutorCalls      *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	persistCount         uint64
	persistDurationTotal uint64
	persistFailureCount  uint64
	tutorCallCount       uint64
	tutorFallbackCount   uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	persistDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_persist_duration_seconds",
		Help:    "Duration of collection persistence writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})

	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_persist_failures_total",
		Help: "Total failed collection persistence writes",
	}, []string{"key"})

	tutorCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_calls_total",
		Help: "Total tutor collaborator calls by operation and outcome",
	}, []string{"operation", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, persistDuration, persistFailures, tutorCalls, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
		tutorCalls:      tutorCalls,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObservePersist records one collection write. Satisfies repository.Observer.
func (m *MetricsService) ObservePersist(key string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.persistDuration.WithLabelValues(key).Observe(duration.Seconds())
	atomic.AddUint64(&m.persistCount, 1)
	atomic.AddUint64(&m.persistDurationTotal, uint64(duration.Nanoseconds()))
	if err != nil {
		m.persistFailures.WithLabelValues(key).Inc()
		atomic.AddUint64(&m.persistFailureCount, 1)
	}
}

// ObserveTutorCall records one collaborator call. Satisfies TutorObserver.
func (m *MetricsService) ObserveTutorCall(operation string, ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "fallback"
		atomic.AddUint64(&m.tutorFallbackCount, 1)
	}
	m.tutorCalls.WithLabelValues(operation, outcome).Inc()
	atomic.AddUint64(&m.tutorCallCount, 1)
}

// Snapshot returns aggregated metrics suitable for the admin dashboard.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	persists := atomic.LoadUint64(&m.persistCount)
	persistDuration := atomic.LoadUint64(&m.persistDurationTotal)
	tutorTotal := atomic.LoadUint64(&m.tutorCallCount)
	tutorFallbacks := atomic.LoadUint64(&m.tutorFallbackCount)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgPersistMs float64
	if persists > 0 {
		avgPersistMs = float64(persistDuration) / float64(persists) / float64(time.Millisecond)
	}

	tutorRatio := 1.0
	if tutorTotal > 0 {
		tutorRatio = float64(tutorTotal-tutorFallbacks) / float64(tutorTotal)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return models.SystemMetrics{
		RequestCount:        requests,
		AvgRequestMs:        avgRequestMs,
		PersistCount:        persists,
		PersistFailures:     atomic.LoadUint64(&m.persistFailureCount),
		AvgPersistMs:        avgPersistMs,
		TutorCalls:          tutorTotal,
		TutorFallbacks:      tutorFallbacks,
		TutorSuccessRatio:   tutorRatio,
		GoroutineCount:      runtime.NumGoroutine(),
		HeapAllocatedBytes:  mem.HeapAlloc,
		TotalAllocatedBytes: mem.TotalAlloc,
	}
}
