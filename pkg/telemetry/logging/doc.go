// Package logging provides structured logging for the compiler.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs and source metadata
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log structured data
//	logger.Info("compile finished",
//	    "source_file", "app.kry.yaml",
//	    "elements", 42,
//	    "duration_ms", 12,
//	)
//
//	// Create context-aware logger
//	ctx := logging.WithRunID(context.Background(), "run-123")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("expanding components")  // Includes run_id automatically
//
// # Performance
//
// Level filtering happens before any field formatting, so disabled
// levels cost well under a microsecond per call.
package logging
