package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"kryon-labs/kryonc/pkg/compiler"
	"kryon-labs/kryonc/pkg/config"
)

const watchSource = "name: demo\nroot:\n  App: {windowTitle: Demo}\n"

func newWatchCompiler() *compiler.Compiler {
	cfg := config.NewDefault()
	cfg.Cache.Enabled = false
	return compiler.New(cfg)
}

func TestNewWatcher(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = t.TempDir()

	w, err := NewWatcher(cfg, newWatchCompiler(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if w.watcher == nil {
		t.Error("fsnotify watcher is nil")
	}

	_ = w.Stop()
}

func TestNewWatcherRequiresCompiler(t *testing.T) {
	if _, err := NewWatcher(DefaultConfig(), nil, nil); err == nil {
		t.Fatal("expected error for nil compiler")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", cfg.Debounce)
	}
	if len(cfg.Patterns) != 2 {
		t.Errorf("Patterns count = %d, want 2", len(cfg.Patterns))
	}
	if !cfg.SkipHidden {
		t.Error("SkipHidden = false, want true")
	}
}

func TestMatchesPatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = t.TempDir()
	w, err := NewWatcher(cfg, newWatchCompiler(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	tests := []struct {
		path string
		want bool
	}{
		{"ui/app.kry.yaml", true},
		{"ui/app.kry.yml", true},
		{"ui/app.yaml", false},
		{"ui/app.krb", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		if got := w.matchesPatterns(tt.path); got != tt.want {
			t.Errorf("matchesPatterns(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatchInitialBuild(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(watchSource), 0o644); err != nil {
		t.Fatal(err)
	}

	results := make(chan *compiler.Result, 4)
	cfg := DefaultConfig()
	cfg.Path = dir
	cfg.Debounce = 20 * time.Millisecond
	cfg.OnResult = func(r *compiler.Result) { results <- r }

	w, err := NewWatcher(cfg, newWatchCompiler(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() { watchDone <- w.Watch(ctx) }()

	select {
	case r := <-results:
		if r.Document != "demo" {
			t.Errorf("initial build document = %q, want demo", r.Document)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial build")
	}

	if _, err := os.Stat(filepath.Join(dir, "app.krb")); err != nil {
		t.Errorf("initial build output missing: %v", err)
	}

	cancel()
	select {
	case err := <-watchDone:
		if err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop on context cancel")
	}
}

func TestWatchRecompilesOnChange(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(watchSource), 0o644); err != nil {
		t.Fatal(err)
	}

	results := make(chan *compiler.Result, 16)
	errors := make(chan error, 16)
	cfg := DefaultConfig()
	cfg.Path = dir
	cfg.Debounce = 20 * time.Millisecond
	cfg.OnResult = func(r *compiler.Result) { results <- r }
	cfg.OnError = func(path string, err error) { errors <- err }

	w, err := NewWatcher(cfg, newWatchCompiler(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	// Drain the initial build.
	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial build")
	}

	changed := "name: changed\nroot:\n  App: {windowTitle: Changed}\n"
	if err := os.WriteFile(srcPath, []byte(changed), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-results:
		if r.Document != "changed" {
			t.Errorf("recompile document = %q, want changed", r.Document)
		}
	case err := <-errors:
		t.Fatalf("recompile failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recompile")
	}
}

func TestWatchReportsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "bad.kry.yaml")
	if err := os.WriteFile(srcPath, []byte("root: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 4)
	cfg := DefaultConfig()
	cfg.Path = dir
	cfg.Debounce = 20 * time.Millisecond
	cfg.OnError = func(path string, err error) { errs <- err }

	w, err := NewWatcher(cfg, newWatchCompiler(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	select {
	case <-errs:
		// Initial build surfaced the parse error.
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for compile error")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}
