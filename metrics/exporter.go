package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusExporter implements Exporter using Prometheus metrics
type PrometheusExporter struct {
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	evictions   *prometheus.CounterVec
	expirations *prometheus.CounterVec
	size        *prometheus.GaugeVec

	// Internal counters for snapshot
	internalHits        atomic.Int64
	internalMisses      atomic.Int64
	internalEvictions   atomic.Int64
	internalExpirations atomic.Int64
	internalSize        atomic.Int64

	// Labels for metrics
	labels map[string]string
}

// NewPrometheusExporter creates a new Prometheus metrics exporter
func NewPrometheusExporter(cacheName string, labels map[string]string) *PrometheusExporter {
	if labels == nil {
		labels = make(map[string]string)
	}

	// Set default service name if not provided
	if _, exists := labels["service"]; !exists {
		labels["service"] = "snapcache"
	}

	// Always include cache name
	labels["cache"] = cacheName

	exporter := &PrometheusExporter{
		labels: labels,
	}

	exporter.hits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"service", "cache"},
	)

	exporter.misses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"service", "cache"},
	)

	exporter.evictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries removed by the LRU policy",
		},
		[]string{"service", "cache"},
	)

	exporter.expirations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_expirations_total",
			Help: "Total number of entries removed after their TTL elapsed",
		},
		[]string{"service", "cache"},
	)

	exporter.size = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current number of items in the cache",
		},
		[]string{"service", "cache"},
	)

	prometheus.MustRegister(
		exporter.hits,
		exporter.misses,
		exporter.evictions,
		exporter.expirations,
		exporter.size,
	)

	return exporter
}

// RecordHit implements Exporter
func (e *PrometheusExporter) RecordHit() {
	e.hits.With(e.labels).Inc()
	e.internalHits.Add(1)
}

// RecordMiss implements Exporter
func (e *PrometheusExporter) RecordMiss() {
	e.misses.With(e.labels).Inc()
	e.internalMisses.Add(1)
}

// RecordEviction implements Exporter
func (e *PrometheusExporter) RecordEviction() {
	e.evictions.With(e.labels).Inc()
	e.internalEvictions.Add(1)
}

// RecordExpiration implements Exporter
func (e *PrometheusExporter) RecordExpiration() {
	e.expirations.With(e.labels).Inc()
	e.internalExpirations.Add(1)
}

// UpdateSize implements Exporter
func (e *PrometheusExporter) UpdateSize(size int64) {
	e.size.With(e.labels).Set(float64(size))
	e.internalSize.Store(size)
}

// GetSnapshot implements Exporter
func (e *PrometheusExporter) GetSnapshot() Snapshot {
	return Snapshot{
		Size:        e.internalSize.Load(),
		Hits:        e.internalHits.Load(),
		Misses:      e.internalMisses.Load(),
		Evictions:   e.internalEvictions.Load(),
		Expirations: e.internalExpirations.Load(),
	}
}

// Reset implements Exporter
func (e *PrometheusExporter) Reset() {
	// Reset internal counters
	e.internalHits.Store(0)
	e.internalMisses.Store(0)
	e.internalEvictions.Store(0)
	e.internalExpirations.Store(0)
	e.internalSize.Store(0)

	// Note: Prometheus metrics are not reset as they are meant to be cumulative
}
