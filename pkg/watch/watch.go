package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"kryon-labs/kryonc/pkg/compiler"
	"kryon-labs/kryonc/pkg/telemetry/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors source files and recompiles them on change.
// It debounces per file to prevent compile storms on editor save bursts.
type Watcher struct {
	watcher  *fsnotify.Watcher
	compiler *compiler.Compiler
	logger   *logging.Logger
	config   *Config

	// debouncers holds one debouncer per source path.
	debouncers map[string]*Debouncer
	dmu        sync.Mutex

	// State
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config contains configuration for the watcher.
type Config struct {
	// Path is the file or directory to watch.
	Path string

	// Debounce is the time to wait after the last change before
	// recompiling (default: 200ms).
	Debounce time.Duration

	// Patterns is the list of file glob patterns to compile,
	// matched against the base name (e.g., "*.kry.yaml").
	Patterns []string

	// SkipHidden controls whether to skip hidden files.
	SkipHidden bool

	// OnResult, if set, is called after each successful recompile.
	OnResult func(*compiler.Result)

	// OnError, if set, is called when a recompile fails.
	OnError func(path string, err error)
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   200 * time.Millisecond,
		Patterns:   []string{"*.kry.yaml", "*.kry.yml"},
		SkipHidden: true,
	}
}

// NewWatcher creates a new watcher that compiles with comp.
func NewWatcher(cfg *Config, comp *compiler.Compiler, logger *logging.Logger) (*Watcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 200 * time.Millisecond
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"*.kry.yaml", "*.kry.yml"}
	}
	if comp == nil {
		return nil, fmt.Errorf("compiler cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsw,
		compiler:   comp,
		logger:     logger,
		config:     cfg,
		debouncers: make(map[string]*Debouncer),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Watch compiles all matching sources once, then blocks recompiling on
// change until the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	// Initial build so the output starts in sync with the sources.
	w.compileAll(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			path := event.Name
			w.debouncerFor(path).Trigger(func() {
				w.compileOne(ctx, path)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.dmu.Lock()
	for _, d := range w.debouncers {
		d.Stop()
	}
	w.dmu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// compileAll compiles every matching source under the watched path.
func (w *Watcher) compileAll(ctx context.Context) {
	isDir, err := isDirectory(w.config.Path)
	if err != nil {
		w.logger.Error("cannot stat watched path", "path", w.config.Path, "error", err)
		return
	}

	if !isDir {
		w.compileOne(ctx, w.config.Path)
		return
	}

	err = filepath.WalkDir(w.config.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") && path != w.config.Path {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && w.matchesPatterns(path) {
			w.compileOne(ctx, path)
		}
		return nil
	})
	if err != nil {
		w.logger.Error("initial build walk failed", "error", err)
	}
}

// compileOne compiles a single source and reports the outcome.
func (w *Watcher) compileOne(ctx context.Context, path string) {
	result, err := w.compiler.CompileFile(ctx, path)
	if err != nil {
		w.logger.Error("recompile failed", "path", path, "error", err)
		if w.config.OnError != nil {
			w.config.OnError(path, err)
		}
		return
	}

	w.logger.Info("recompiled",
		"path", path,
		"elements", result.Elements,
		"output_bytes", len(result.Output),
		"cache_hit", result.CacheHit,
	)
	if w.config.OnResult != nil {
		w.config.OnResult(result)
	}
}

// debouncerFor returns the debouncer for a source path, creating it on
// first use.
func (w *Watcher) debouncerFor(path string) *Debouncer {
	w.dmu.Lock()
	defer w.dmu.Unlock()

	d, ok := w.debouncers[path]
	if !ok {
		d = NewDebouncer(w.config.Debounce)
		w.debouncers[path] = d
	}
	return d
}

// addPath adds a file or directory to the watcher.
func (w *Watcher) addPath(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}

	if isDir {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only watch directories; events carry the file paths.
		if d.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", path, err)
			}
			w.logger.Debug("watching directory", "path", path)
		}

		return nil
	})
}

// shouldProcessEvent determines if an event should trigger a recompile.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if event.Op&fsnotify.Remove == fsnotify.Remove {
		return false
	}

	if !w.matchesPatterns(event.Name) {
		return false
	}

	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// matchesPatterns checks a path's base name against the configured globs.
func (w *Watcher) matchesPatterns(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.config.Patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// isDirectory reports whether path is a directory.
func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
