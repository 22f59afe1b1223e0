package snapcache

import (
	"log/slog"
	"time"

	"github.com/gozephyr/snapcache/metrics"
	"github.com/gozephyr/snapcache/store"
	"github.com/gozephyr/snapcache/ttl"
)

// Options represents cache configuration options
type Options[V any] struct {
	// MaxSize is the maximum number of entries the cache can hold
	MaxSize int

	// TTLConfig is the configuration for TTL behavior
	TTLConfig ttl.Config

	// Store is the snapshot storage backend, nil disables persistence
	Store store.Store

	// Persistence controls whether snapshots are written. When not set
	// explicitly it defaults to true exactly when a store is configured.
	Persistence bool

	// AutoCleanup purges expired entries at the start of size-affecting
	// operations
	AutoCleanup bool

	// CacheName is used as a label for metrics
	CacheName string

	// Logger receives persistence warnings; defaults to slog.Default()
	Logger *slog.Logger

	// Metrics is the metrics exporter to drive alongside Stats
	Metrics metrics.Exporter

	persistenceSet bool
}

// Option is a function that configures cache options
type Option[V any] func(*Options[V])

// WithMaxSize sets the maximum size of the cache
func WithMaxSize[V any](size int) Option[V] {
	return func(o *Options[V]) {
		o.MaxSize = size
	}
}

// WithDefaultTTL sets the TTL applied when Set is called without one
func WithDefaultTTL[V any](d time.Duration) Option[V] {
	return func(o *Options[V]) {
		o.TTLConfig.DefaultTTL = d
	}
}

// WithTTLConfig sets the TTL configuration
func WithTTLConfig[V any](config ttl.Config) Option[V] {
	return func(o *Options[V]) {
		o.TTLConfig = config
	}
}

// WithStore sets the snapshot storage backend
func WithStore[V any](s store.Store) Option[V] {
	return func(o *Options[V]) {
		o.Store = s
	}
}

// WithPersistence explicitly enables or disables snapshot writes
func WithPersistence[V any](enable bool) Option[V] {
	return func(o *Options[V]) {
		o.Persistence = enable
		o.persistenceSet = true
	}
}

// WithAutoCleanup enables or disables the pre-operation expired purge
func WithAutoCleanup[V any](enable bool) Option[V] {
	return func(o *Options[V]) {
		o.AutoCleanup = enable
	}
}

// WithCacheName sets the cache name used as a metrics label
func WithCacheName[V any](name string) Option[V] {
	return func(o *Options[V]) {
		o.CacheName = name
	}
}

// WithLogger sets the logger for persistence warnings
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(o *Options[V]) {
		o.Logger = logger
	}
}

// WithMetricsExporter sets the metrics exporter
func WithMetricsExporter[V any](exporter metrics.Exporter) Option[V] {
	return func(o *Options[V]) {
		o.Metrics = exporter
	}
}

// DefaultOptions returns the default cache options
func DefaultOptions[V any]() *Options[V] {
	return &Options[V]{
		MaxSize:     100,
		TTLConfig:   ttl.DefaultConfig(),
		AutoCleanup: true,
		CacheName:   "snapcache",
	}
}
