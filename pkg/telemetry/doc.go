// Package telemetry provides observability for the compiler.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics for compiles and the cache
//   - health: liveness and readiness probes for watch mode
//
// # Usage
//
//	logger, _ := logging.New(logging.Config{Level: "info", Format: "text"})
//	logger.Info("compiled", "document", "app", "elements", 12)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordCompile("app", "success", duration, size, elements, variables)
//
// Compilation logs carry the run ID and source file from the context; see
// the logging package for the context accessors.
package telemetry
