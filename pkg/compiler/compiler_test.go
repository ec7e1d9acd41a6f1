package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"kryon-labs/kryonc/pkg/cache"
	"kryon-labs/kryonc/pkg/config"
	"kryon-labs/kryonc/pkg/kry/codegen"
	kryErrors "kryon-labs/kryonc/pkg/kry/errors"
)

const demoSource = `
name: demo
constants:
  labels: ["alpha", "beta", "gamma"]
variables:
  counter: { reactive: true, value: 0 }
root:
  App:
    windowTitle: Demo
    children:
      - Column:
          gap: 8
          children:
            - for:
                var: label
                in: labels
                body:
                  - Text: { text: "$label" }
`

func newTestCompiler(opts ...Option) *Compiler {
	cfg := config.NewDefault()
	cfg.Cache.Enabled = false
	return New(cfg, opts...)
}

func TestCompile(t *testing.T) {
	c := newTestCompiler()

	result, err := c.Compile(context.Background(), []byte(demoSource), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if result.Document != "demo" {
		t.Errorf("Document = %q, want demo", result.Document)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.CacheHit {
		t.Error("first compile reported a cache hit")
	}
	// App, Column, and three expanded Text elements.
	if result.Elements != 5 {
		t.Errorf("Elements = %d, want 5", result.Elements)
	}
	if result.Variables != 1 {
		t.Errorf("Variables = %d, want 1", result.Variables)
	}

	file, err := codegen.Decode(result.Output)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(file.Elements) != 5 {
		t.Fatalf("decoded %d elements, want 5", len(file.Elements))
	}
	if file.Elements[1].ChildCount != 3 {
		t.Errorf("Column child count = %d, want 3 after loop expansion", file.Elements[1].ChildCount)
	}
	if file.Variables[0].Name != "counter" || !file.Variables[0].Reactive {
		t.Errorf("variable = %+v, want reactive counter", file.Variables[0])
	}
}

func TestCompileDeterministic(t *testing.T) {
	first, err := newTestCompiler().Compile(context.Background(), []byte(demoSource), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	second, err := newTestCompiler().Compile(context.Background(), []byte(demoSource), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !bytes.Equal(first.Output, second.Output) {
		t.Error("identical sources produced different binaries")
	}
}

func TestCompileParseError(t *testing.T) {
	c := newTestCompiler()

	_, err := c.Compile(context.Background(), []byte("root: [broken"), "bad.kry.yaml")
	if err == nil {
		t.Fatal("expected parse error")
	}

	kerr, ok := err.(*kryErrors.Error)
	if !ok {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if kerr.Type != kryErrors.ErrorTypeSyntax {
		t.Errorf("error type = %s, want syntax", kerr.Type)
	}
}

func TestCompileCustomElement(t *testing.T) {
	c := newTestCompiler()

	src := `
root:
  App:
    children:
      - VideoPlayer: { dataSource: intro.mp4 }
`
	result, err := c.Compile(context.Background(), []byte(src), "custom.kry.yaml")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	file, err := codegen.Decode(result.Output)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	// Names outside the builtin table are allocated custom type ids.
	if got := file.Elements[1].TypeID; got < 0x2000 {
		t.Errorf("custom element type id = 0x%04X, want >= 0x2000", got)
	}
}

func TestCompileCache(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Cache.Enabled = true
	c := New(cfg, WithCache(cache.NewMemoryStore()))

	ctx := context.Background()
	first, err := c.Compile(ctx, []byte(demoSource), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("first Compile() error = %v", err)
	}
	if first.CacheHit {
		t.Error("first compile reported a cache hit")
	}

	second, err := c.Compile(ctx, []byte(demoSource), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("second Compile() error = %v", err)
	}
	if !second.CacheHit {
		t.Error("second compile missed the cache")
	}
	if !bytes.Equal(first.Output, second.Output) {
		t.Error("cached output differs from compiled output")
	}
	if second.Document != "demo" {
		t.Errorf("cached Document = %q, want demo", second.Document)
	}

	// A changed source must miss.
	changed, err := c.Compile(ctx, []byte(demoSource+"\n# comment\n"), "demo.kry.yaml")
	if err != nil {
		t.Fatalf("third Compile() error = %v", err)
	}
	if changed.CacheHit {
		t.Error("changed source served from cache")
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "app.kry.yaml")
	if err := os.WriteFile(srcPath, []byte(demoSource), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	c := newTestCompiler()
	result, err := c.CompileFile(context.Background(), srcPath)
	if err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}

	outPath := c.OutputPath(srcPath)
	if outPath != filepath.Join(dir, "app.krb") {
		t.Errorf("OutputPath = %q, want %q", outPath, filepath.Join(dir, "app.krb"))
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(written, result.Output) {
		t.Error("file on disk differs from result output")
	}
	if _, err := codegen.Decode(written); err != nil {
		t.Errorf("written output does not decode: %v", err)
	}
}

func TestCompileFileMissing(t *testing.T) {
	c := newTestCompiler()

	_, err := c.CompileFile(context.Background(), filepath.Join(t.TempDir(), "nope.kry.yaml"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	kerr, ok := err.(*kryErrors.Error)
	if !ok || kerr.Type != kryErrors.ErrorTypeIO {
		t.Errorf("error = %v, want io error", err)
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	sources := map[string]string{
		"a.kry.yaml": "name: a\nroot:\n  App: {windowTitle: A}\n",
		"b.kry.yaml": "name: b\nroot:\n  App: {windowTitle: B}\n",
		"notes.txt":  "not a source file",
	}
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	c := newTestCompiler()
	results, err := c.CompileDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("CompileDir() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("compiled %d documents, want 2", len(results))
	}
	if results[0].Document != "a" || results[1].Document != "b" {
		t.Errorf("documents = %q, %q; want a, b in path order", results[0].Document, results[1].Document)
	}

	for _, name := range []string{"a.krb", "b.krb"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("output %s not written: %v", name, err)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source    string
		outputDir string
		want      string
	}{
		{"ui/app.kry.yaml", "", filepath.Join("ui", "app.krb")},
		{"ui/app.kry.yml", "", filepath.Join("ui", "app.krb")},
		{"ui/app.yaml", "", filepath.Join("ui", "app.krb")},
		{"ui/app.kry", "", filepath.Join("ui", "app.krb")},
		{"app.kry.yaml", "build", filepath.Join("build", "app.krb")},
	}

	for _, tt := range tests {
		cfg := config.NewDefault()
		cfg.Cache.Enabled = false
		cfg.Compiler.OutputDir = tt.outputDir
		c := New(cfg)

		if got := c.OutputPath(tt.source); got != tt.want {
			t.Errorf("OutputPath(%q) with dir %q = %q, want %q", tt.source, tt.outputDir, got, tt.want)
		}
	}
}

func TestCompileComponentInstance(t *testing.T) {
	src := `
name: comp
components:
  - name: Badge
    params:
      - name: label
      - { name: tone, default: info }
    state:
      seen: { reactive: true, value: false }
    body:
      - Text: { text: $label }
root:
  App:
    children:
      - Badge: { label: New }
`
	c := newTestCompiler()
	result, err := c.Compile(context.Background(), []byte(src), "comp.kry.yaml")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	file, err := codegen.Decode(result.Output)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	// Component state lands in the variable section under the instance scope.
	found := false
	for _, v := range file.Variables {
		if v.Name == "comp_1.seen" {
			found = true
			if !v.Reactive {
				t.Error("instance state should be reactive")
			}
		}
	}
	if !found {
		t.Errorf("scoped state variable missing, have %+v", file.Variables)
	}
}
