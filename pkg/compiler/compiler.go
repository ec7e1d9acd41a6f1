package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kryon-labs/kryonc/pkg/cache"
	"kryon-labs/kryonc/pkg/config"
	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/codegen"
	kryErrors "kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/parser"
	"kryon-labs/kryonc/pkg/kry/registry"
	"kryon-labs/kryonc/pkg/telemetry/logging"
	"kryon-labs/kryonc/pkg/telemetry/metrics"

	"github.com/google/uuid"
)

// Compiler drives the full pipeline: parse, expand, encode, assemble.
// A single Compiler is safe for sequential reuse across many documents;
// per-document state (string table, element registry, encoder) is created
// fresh for every run.
type Compiler struct {
	cfg     *config.Config
	parser  *parser.Parser
	store   cache.Store
	logger  *logging.Logger
	metrics *metrics.Collector
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCache sets the compiled-output cache store. Without a store the
// compiler recompiles every source regardless of the cache config.
func WithCache(store cache.Store) Option {
	return func(c *Compiler) { c.store = store }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// WithMetrics sets the metrics collector. Defaults to a collector on a
// private registry, so metrics are always safe to record.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Compiler) { c.metrics = collector }
}

// New creates a Compiler from configuration.
func New(cfg *config.Config, opts ...Option) *Compiler {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	c := &Compiler{
		cfg: cfg,
		parser: parser.NewParser().
			WithMaxFileSize(cfg.Compiler.MaxFileSize).
			WithMaxDepth(cfg.Compiler.MaxDepth).
			WithStrictMode(cfg.Compiler.Strict),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.metrics == nil {
		c.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	return c
}

// Result describes one completed compile run.
type Result struct {
	// RunID uniquely identifies this run in logs and diagnostics.
	RunID string

	// Document is the compiled document's name.
	Document string

	// SourcePath is the source file path, empty for in-memory sources.
	SourcePath string

	// Output is the assembled KRB binary.
	Output []byte

	// Elements is the number of element records in the output.
	Elements int

	// Variables is the number of variable records in the output.
	Variables int

	// Strings is the number of entries in the output's string table.
	Strings int

	// Duration is the wall time of the run, including cache lookups.
	Duration time.Duration

	// CacheHit reports whether the output came from the cache.
	CacheHit bool
}

// Compile compiles source bytes into a KRB binary. sourcePath is used
// for error locations and the cache; it does not need to exist on disk.
func (c *Compiler) Compile(ctx context.Context, source []byte, sourcePath string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx = logging.WithRunID(ctx, runID)
	if sourcePath != "" {
		ctx = logging.WithSourceFile(ctx, sourcePath)
	}

	sourceHash := cache.Hash(source)
	if entry := c.cacheLookup(ctx, sourceHash); entry != nil {
		result := &Result{
			RunID:      runID,
			Document:   entry.Document,
			SourcePath: sourcePath,
			Output:     entry.Output,
			Elements:   entry.Elements,
			Variables:  entry.Variables,
			Duration:   time.Since(start),
			CacheHit:   true,
		}
		c.metrics.RecordCompile(entry.Document, "cached", result.Duration, len(entry.Output), entry.Elements, entry.Variables)
		c.logger.InfoContext(ctx, "compile served from cache",
			"document", entry.Document,
			"output_bytes", len(entry.Output),
		)
		return result, nil
	}

	doc, err := c.parser.ParseBytes(source, sourcePath)
	if err != nil {
		return nil, c.fail(ctx, "parse", err, start)
	}
	ctx = logging.WithDocument(ctx, doc.Name)

	output, enc, err := c.encode(doc)
	if err != nil {
		return nil, c.fail(ctx, "encode", err, start)
	}

	result := &Result{
		RunID:      runID,
		Document:   doc.Name,
		SourcePath: sourcePath,
		Output:     output,
		Elements:   enc.ElementCount(),
		Variables:  enc.VariableCount(),
		Strings:    enc.StringCount(),
		Duration:   time.Since(start),
	}

	c.cacheStore(ctx, sourceHash, result)
	c.metrics.RecordCompile(doc.Name, "success", result.Duration, len(output), result.Elements, result.Variables)
	c.logger.InfoContext(ctx, "compile finished",
		"elements", result.Elements,
		"variables", result.Variables,
		"strings", result.Strings,
		"output_bytes", len(output),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// CompileFile compiles the source at path and writes the output next to
// it (or into the configured output directory). The written path is
// derivable via OutputPath.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read source file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	result, err := c.Compile(ctx, source, path)
	if err != nil {
		return nil, err
	}

	outPath := c.OutputPath(path)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &kryErrors.Error{
				Type:     kryErrors.ErrorTypeIO,
				Message:  fmt.Sprintf("Failed to create output directory: %v", err),
				Location: ast.Location{File: outPath},
			}
		}
	}
	if err := os.WriteFile(outPath, result.Output, 0o644); err != nil {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to write output file: %v", err),
			Location: ast.Location{File: outPath},
		}
	}

	return result, nil
}

// CompileDir compiles every source file in dir matching the configured
// watch patterns. Results are returned in path order; the first compile
// error aborts the walk.
func (c *Compiler) CompileDir(ctx context.Context, dir string) ([]*Result, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range c.cfg.Watch.Patterns {
			if ok, _ := filepath.Match(pattern, d.Name()); ok {
				paths = append(paths, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to scan directory: %v", err),
			Location: ast.Location{File: dir},
		}
	}
	sort.Strings(paths)

	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		result, err := c.CompileFile(ctx, path)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// OutputPath returns where CompileFile writes the compiled binary for a
// source path: the source name with a .krb extension, in the configured
// output directory or next to the source.
func (c *Compiler) OutputPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	for _, ext := range []string{".kry.yaml", ".kry.yml", ".yaml", ".yml", ".kry"} {
		if strings.HasSuffix(base, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	base += ".krb"

	if c.cfg.Compiler.OutputDir != "" {
		return filepath.Join(c.cfg.Compiler.OutputDir, base)
	}
	return filepath.Join(filepath.Dir(sourcePath), base)
}

// encode runs the back half of the pipeline on a parsed document.
func (c *Compiler) encode(doc *ast.Document) ([]byte, *codegen.Encoder, error) {
	constants := registry.NewConstants()
	for _, constant := range doc.Constants {
		constants.Define(constant.Name, constant.Value)
	}

	enc := codegen.NewEncoder(codegen.NewStringTable(), registry.NewElements(), constants, doc.Components)

	for _, v := range doc.Variables {
		if err := enc.EncodeVariable(v, ""); err != nil {
			return nil, nil, err
		}
	}
	if err := enc.EncodeElementTree(doc.Root); err != nil {
		return nil, nil, err
	}

	return codegen.Assemble(enc), enc, nil
}

// cacheLookup returns the cached entry for a source hash, or nil.
func (c *Compiler) cacheLookup(ctx context.Context, sourceHash string) *cache.Entry {
	if c.store == nil || !c.cfg.Cache.Enabled {
		return nil
	}

	entry, err := c.store.Get(ctx, sourceHash)
	if err != nil {
		c.logger.WarnContext(ctx, "cache lookup failed", "error", err)
		return nil
	}
	if entry == nil {
		c.metrics.RecordCacheMiss("output")
		return nil
	}
	c.metrics.RecordCacheHit("output")
	return entry
}

// cacheStore saves a successful compile into the cache.
func (c *Compiler) cacheStore(ctx context.Context, sourceHash string, result *Result) {
	if c.store == nil || !c.cfg.Cache.Enabled {
		return
	}

	entry := &cache.Entry{
		SourceHash: sourceHash,
		SourcePath: result.SourcePath,
		Document:   result.Document,
		Output:     result.Output,
		Elements:   result.Elements,
		Variables:  result.Variables,
	}
	if err := c.store.Put(ctx, entry); err != nil {
		c.logger.WarnContext(ctx, "cache store failed", "error", err)
		return
	}
	if size, err := c.store.Len(ctx); err == nil {
		c.metrics.UpdateCacheSize("output", size)
	}
}

// fail records metrics and logs for a failed run, then returns err.
func (c *Compiler) fail(ctx context.Context, stage string, err error, start time.Time) error {
	for _, errType := range errorTypes(err) {
		c.metrics.RecordCompileError(errType)
	}
	c.metrics.RecordCompile(logging.GetDocument(ctx), "error", time.Since(start), 0, 0, 0)
	c.logger.ErrorContext(ctx, "compile failed", "stage", stage, "error", err)
	return err
}

// errorTypes extracts error type labels for metrics.
func errorTypes(err error) []string {
	switch e := err.(type) {
	case *kryErrors.Error:
		return []string{string(e.Type)}
	case *kryErrors.ErrorList:
		seen := make(map[string]bool)
		var types []string
		for _, inner := range e.Errors {
			t := string(inner.Type)
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
		return types
	default:
		return []string{"internal"}
	}
}
