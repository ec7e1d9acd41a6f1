package metrics

import (
	"fmt"
	"sync"
	"time"

	"kryon-labs/kryonc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in the
// compiler. It manages metric registration and provides a unified
// interface for recording metrics across the pipeline.
//
// The collector is designed for minimal overhead:
//   - Pre-allocated metric instances
//   - Cardinality limits on document labels
//   - Histogram buckets sized for compile workloads
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Compile pipeline metrics
	compileMetrics *CompileMetrics

	// Cache metrics
	cacheMetrics *CacheMetrics

	// Cardinality tracking
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "kryon",
//		Subsystem: "compiler",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "kryon"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "compiler"
	}
	if len(cfg.CompileDurationBuckets) == 0 {
		cfg.CompileDurationBuckets = append([]float64(nil), config.DefaultCompileDurationBuckets...)
	}
	if len(cfg.OutputSizeBuckets) == 0 {
		cfg.OutputSizeBuckets = append([]float64(nil), config.DefaultOutputSizeBuckets...)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000), // Max 1K unique label sets
	}

	c.compileMetrics = NewCompileMetrics(cfg, registry)
	c.cacheMetrics = NewCacheMetrics(cfg, registry)

	return c
}

// RecordCompile records metrics for a completed compile run.
//
// Parameters:
//   - document: Document name (e.g., "main", "settings")
//   - status: Compile status ("success", "error", "cached")
//   - duration: Total compile duration
//   - outputBytes: Size of the compiled output
//   - elements: Number of elements in the expanded tree
//   - variables: Number of variables written
func (c *Collector) RecordCompile(document, status string, duration time.Duration, outputBytes, elements, variables int) {
	if !c.config.Enabled {
		return
	}

	// Check cardinality limit
	labelSet := fmt.Sprintf("compile:%s:%s", document, status)
	if !c.cardinalityLimiter.Allow(labelSet) {
		// Aggregate into "other" to prevent cardinality explosion
		document = "other"
	}

	c.compileMetrics.RecordCompile(document, status, duration, outputBytes, elements, variables)
}

// RecordCompileError records a compile failure by error type.
//
// Parameters:
//   - errorType: Error category (e.g., "syntax", "unresolved", "encoding")
func (c *Collector) RecordCompileError(errorType string) {
	if !c.config.Enabled {
		return
	}

	c.compileMetrics.RecordError(errorType)
}

// RecordCacheHit records a cache hit.
//
// Parameters:
//   - cacheName: Name of the cache (e.g., "output")
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.config.Enabled {
		return
	}

	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.config.Enabled {
		return
	}

	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records a cache eviction.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.config.Enabled {
		return
	}

	c.cacheMetrics.RecordEviction(cacheName)
}

// UpdateCacheSize updates the current size of a cache.
//
// Parameters:
//   - cacheName: Name of the cache
//   - size: Current number of entries in the cache
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if !c.config.Enabled {
		return
	}

	c.cacheMetrics.UpdateSize(cacheName, size)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
