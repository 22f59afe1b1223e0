// Package metrics provides functionality for collecting and reporting cache performance metrics.
package metrics

import (
	"sync/atomic"
)

// ExporterType defines the type of metrics exporter
type ExporterType string

const (
	// StandardExporter uses the default in-process metrics implementation
	StandardExporter ExporterType = "standard"
	// PrometheusExporterType uses Prometheus metrics
	PrometheusExporterType ExporterType = "prometheus"
)

// Exporter defines the interface for metrics exporters
type Exporter interface {
	// RecordHit records a cache hit
	RecordHit()
	// RecordMiss records a cache miss
	RecordMiss()
	// RecordEviction records a capacity eviction
	RecordEviction()
	// RecordExpiration records a lazily removed expired entry
	RecordExpiration()
	// UpdateSize updates the current cache size
	UpdateSize(size int64)
	// GetSnapshot returns a thread-safe copy of current metrics
	GetSnapshot() Snapshot
	// Reset resets all metrics to zero
	Reset()
}

// Snapshot is a thread-safe copy of metrics
type Snapshot struct {
	Size        int64
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
}

// CacheMetrics is the standard in-process Exporter implementation
type CacheMetrics struct {
	size        atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
}

// NewCacheMetrics creates a new CacheMetrics instance
func NewCacheMetrics() *CacheMetrics {
	return &CacheMetrics{}
}

// RecordHit implements Exporter
func (m *CacheMetrics) RecordHit() {
	m.hits.Add(1)
}

// RecordMiss implements Exporter
func (m *CacheMetrics) RecordMiss() {
	m.misses.Add(1)
}

// RecordEviction implements Exporter
func (m *CacheMetrics) RecordEviction() {
	m.evictions.Add(1)
}

// RecordExpiration implements Exporter
func (m *CacheMetrics) RecordExpiration() {
	m.expirations.Add(1)
}

// UpdateSize implements Exporter
func (m *CacheMetrics) UpdateSize(size int64) {
	m.size.Store(size)
}

// GetSnapshot implements Exporter
func (m *CacheMetrics) GetSnapshot() Snapshot {
	return Snapshot{
		Size:        m.size.Load(),
		Hits:        m.hits.Load(),
		Misses:      m.misses.Load(),
		Evictions:   m.evictions.Load(),
		Expirations: m.expirations.Load(),
	}
}

// Reset implements Exporter
func (m *CacheMetrics) Reset() {
	m.size.Store(0)
	m.hits.Store(0)
	m.misses.Store(0)
	m.evictions.Store(0)
	m.expirations.Store(0)
}

// HitRatio returns the fraction of gets that were hits, 0 when no gets
// have been recorded.
func (s Snapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewExporter creates a new metrics exporter based on the specified type
func NewExporter(exporterType ExporterType, cacheName string, labels map[string]string) Exporter {
	switch exporterType {
	case PrometheusExporterType:
		return NewPrometheusExporter(cacheName, labels)
	default:
		return NewCacheMetrics()
	}
}
