// Package metrics provides Prometheus metrics for the compiler.
//
// # Overview
//
// The metrics package tracks the compile pipeline and the output cache:
//   - Compile counts, durations, and error types
//   - Output sizes and element/variable counts
//   - Cache hits, misses, evictions, and sizes
//
// All metrics are registered against a private Prometheus registry owned
// by the Collector, so importing this package does not mutate the global
// default registry.
//
// # Usage
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
//
//	collector.RecordCompile("main", "success", 12*time.Millisecond, 4096, 42, 3)
//	collector.RecordCacheHit("output")
//
//	// Expose in watch mode
//	http.Handle("/metrics", collector.Handler())
//
// # Cardinality
//
// Document names appear as metric labels. A CardinalityLimiter caps the
// number of unique label sets; once the cap is reached, new documents are
// aggregated under the label value "other".
package metrics
