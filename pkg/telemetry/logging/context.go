package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for compile run IDs.
	RunIDKey contextKey = "run_id"

	// SourceFileKey is the context key for the source file being compiled.
	SourceFileKey contextKey = "source_file"

	// DocumentKey is the context key for document names.
	DocumentKey contextKey = "document"

	// StageKey is the context key for pipeline stage names.
	StageKey contextKey = "stage"
)

// WithRunID adds a compile run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the compile run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithSourceFile adds a source file path to the context.
func WithSourceFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, SourceFileKey, path)
}

// GetSourceFile retrieves the source file path from the context.
func GetSourceFile(ctx context.Context) string {
	if path, ok := ctx.Value(SourceFileKey).(string); ok {
		return path
	}
	return ""
}

// WithDocument adds a document name to the context.
func WithDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, DocumentKey, name)
}

// GetDocument retrieves the document name from the context.
func GetDocument(ctx context.Context) string {
	if name, ok := ctx.Value(DocumentKey).(string); ok {
		return name
	}
	return ""
}

// WithStage adds a pipeline stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// GetStage retrieves the pipeline stage name from the context.
func GetStage(ctx context.Context) string {
	if stage, ok := ctx.Value(StageKey).(string); ok {
		return stage
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}

	if path := GetSourceFile(ctx); path != "" {
		fields = append(fields, "source_file", path)
	}

	if name := GetDocument(ctx); name != "" {
		fields = append(fields, "document", name)
	}

	if stage := GetStage(ctx); stage != "" {
		fields = append(fields, "stage", stage)
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger.WithContext(ctx),
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.DebugContext(cl.ctx, msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.InfoContext(cl.ctx, msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.WarnContext(cl.ctx, msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.ErrorContext(cl.ctx, msg, args...)
}

// With creates a new context logger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
