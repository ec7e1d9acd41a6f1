//go:build integration

package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kryon-labs/kryonc/pkg/cache"
	"kryon-labs/kryonc/pkg/compiler"
	"kryon-labs/kryonc/pkg/config"
	"kryon-labs/kryonc/pkg/kry/codegen"
	"kryon-labs/kryonc/pkg/watch"
)

const appSource = `
name: app
constants:
  sections: ["Home", "Library", "Settings"]
variables:
  selected: { reactive: true, value: 0 }
root:
  App:
    windowTitle: Integration
    children:
      - Column:
          gap: 16
          children:
            - for:
                var: section
                in: sections
                body:
                  - Button: { label: "$section" }
            - Text: { text: "Selected: ${selected}" }
`

// TestPipelineEndToEnd compiles a source file through the full pipeline
// with a SQLite-backed cache and verifies the binary output round-trips.
func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()

	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(appSource), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := cache.NewSQLiteStore(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("opening cache store: %v", err)
	}
	defer store.Close()

	cfg := config.NewDefault()
	cfg.Compiler.OutputDir = dir
	comp := compiler.New(cfg, compiler.WithCache(store))

	ctx := context.Background()

	result, err := comp.CompileFile(ctx, srcPath)
	if err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	if result.CacheHit {
		t.Error("first compile reported a cache hit")
	}

	outPath := filepath.Join(dir, "app.krb")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(data, result.Output) {
		t.Error("written output differs from result output")
	}

	file, err := codegen.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	// App, Column, three expanded buttons, and a text element.
	if got := len(file.Elements); got != 6 {
		t.Errorf("len(Elements) = %d, want 6", got)
	}

	// Second compile of the unchanged source must come from the cache
	// and produce identical bytes.
	cached, err := comp.CompileFile(ctx, srcPath)
	if err != nil {
		t.Fatalf("cached CompileFile() error = %v", err)
	}
	if !cached.CacheHit {
		t.Error("second compile missed the cache")
	}
	if !bytes.Equal(cached.Output, result.Output) {
		t.Error("cached output differs from first compile")
	}
}

// TestPipelineCachePersists reopens the SQLite store and confirms the
// compiled entry survives the restart.
func TestPipelineCachePersists(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cache.db")

	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(appSource), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewDefault()
	cfg.Compiler.OutputDir = dir
	ctx := context.Background()

	store, err := cache.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	comp := compiler.New(cfg, compiler.WithCache(store))
	if _, err := comp.CompileFile(ctx, srcPath); err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("closing store: %v", err)
	}

	reopened, err := cache.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer reopened.Close()

	comp = compiler.New(cfg, compiler.WithCache(reopened))
	result, err := comp.CompileFile(ctx, srcPath)
	if err != nil {
		t.Fatalf("CompileFile() after reopen error = %v", err)
	}
	if !result.CacheHit {
		t.Error("compile after reopen missed the cache")
	}
}

// TestPipelineWatchRebuilds runs the watcher against a directory and
// verifies a changed source is recompiled.
func TestPipelineWatchRebuilds(t *testing.T) {
	dir := t.TempDir()

	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(appSource), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewDefault()
	cfg.Cache.Enabled = false
	cfg.Compiler.OutputDir = dir
	comp := compiler.New(cfg)

	results := make(chan *compiler.Result, 16)
	watchCfg := watch.DefaultConfig()
	watchCfg.Path = dir
	watchCfg.Debounce = 50 * time.Millisecond
	watchCfg.OnResult = func(r *compiler.Result) { results <- r }

	w, err := watch.NewWatcher(watchCfg, comp, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Watch(ctx)
	}()
	defer func() {
		cancel()
		<-done
		_ = w.Stop()
	}()

	// Initial build.
	select {
	case <-results:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for initial build")
	}

	changed := []byte(`
name: changed
root:
  App:
    children:
      - Text: { text: "rebuilt" }
`)
	if err := os.WriteFile(srcPath, changed, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case result := <-results:
		if result.Document != "changed" {
			t.Errorf("Document = %q, want changed", result.Document)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
	}
}
