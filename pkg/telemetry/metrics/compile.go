package metrics

import (
	"time"

	"kryon-labs/kryonc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CompileMetrics tracks metrics for the compile pipeline.
//
// Metrics:
//   - kryon_compiler_compilations_total: Total compile count by document, status
//   - kryon_compiler_compile_duration_seconds: Compile duration histogram
//   - kryon_compiler_output_size_bytes: Compiled output size histogram
//   - kryon_compiler_elements_total: Total elements written
//   - kryon_compiler_variables_total: Total variables written
//   - kryon_compiler_errors_total: Compile errors by type
type CompileMetrics struct {
	// Total compile count
	compilationsTotal *prometheus.CounterVec

	// Compile duration histogram
	compileDuration *prometheus.HistogramVec

	// Output size histogram
	outputSize *prometheus.HistogramVec

	// Element and variable counts
	elementsTotal  *prometheus.CounterVec
	variablesTotal *prometheus.CounterVec

	// Errors by type
	errorsTotal *prometheus.CounterVec
}

// NewCompileMetrics creates and registers compile metrics with the provided registry.
func NewCompileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CompileMetrics {
	cm := &CompileMetrics{
		compilationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compilations_total",
				Help:      "Total number of compile runs",
			},
			[]string{"document", "status"},
		),

		compileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compile_duration_seconds",
				Help:      "Duration of compile runs in seconds",
				Buckets:   cfg.CompileDurationBuckets,
			},
			[]string{"document"},
		),

		outputSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "output_size_bytes",
				Help:      "Size of compiled output in bytes",
				Buckets:   cfg.OutputSizeBuckets,
			},
			[]string{"document"},
		),

		elementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "elements_total",
				Help:      "Total number of elements written to compiled output",
			},
			[]string{"document"},
		),

		variablesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "variables_total",
				Help:      "Total number of variables written to compiled output",
			},
			[]string{"document"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of compile errors by type",
			},
			[]string{"type"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		cm.compilationsTotal,
		cm.compileDuration,
		cm.outputSize,
		cm.elementsTotal,
		cm.variablesTotal,
		cm.errorsTotal,
	)

	return cm
}

// RecordCompile records metrics for a completed compile run.
//
// Parameters:
//   - document: Document name
//   - status: Compile status ("success", "error", "cached")
//   - duration: Compile duration
//   - outputBytes: Size of the compiled output
//   - elements: Number of elements written
//   - variables: Number of variables written
func (cm *CompileMetrics) RecordCompile(document, status string, duration time.Duration, outputBytes, elements, variables int) {
	cm.compilationsTotal.WithLabelValues(document, status).Inc()
	cm.compileDuration.WithLabelValues(document).Observe(duration.Seconds())

	if outputBytes > 0 {
		cm.outputSize.WithLabelValues(document).Observe(float64(outputBytes))
	}
	if elements > 0 {
		cm.elementsTotal.WithLabelValues(document).Add(float64(elements))
	}
	if variables > 0 {
		cm.variablesTotal.WithLabelValues(document).Add(float64(variables))
	}
}

// RecordError records a compile error by type.
//
// Parameters:
//   - errorType: Error category (e.g., "syntax", "unresolved", "out_of_bounds")
func (cm *CompileMetrics) RecordError(errorType string) {
	cm.errorsTotal.WithLabelValues(errorType).Inc()
}
