package main

import (
	"testing"

	"kryon-labs/kryonc/pkg/kry/codegen"
	"kryon-labs/kryonc/pkg/kry/registry"
)

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"compile": false,
		"inspect": false,
		"watch":   false,
		"cache":   false,
		"version": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version is empty")
	}
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
}

func TestVariableTypeName(t *testing.T) {
	tests := []struct {
		typ  uint8
		want string
	}{
		{codegen.VarStaticString, "string"},
		{codegen.VarStaticInteger, "int"},
		{codegen.VarStaticFloat, "float"},
		{codegen.VarStaticBoolean, "bool"},
		{codegen.VarStaticInteger | codegen.VarReactiveBit, "int"},
		{0x0F, "0x0F"},
	}

	for _, tt := range tests {
		if got := variableTypeName(tt.typ); got != tt.want {
			t.Errorf("variableTypeName(0x%02X) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestElementTypeName(t *testing.T) {
	appID, ok := registry.BuiltinElementID("App")
	if !ok {
		t.Fatal("App is not a builtin element")
	}
	if got := elementTypeName(appID); got != "App" {
		t.Errorf("elementTypeName(App) = %q, want App", got)
	}

	if got := elementTypeName(registry.CustomElementStart); got != "Custom(0x2000)" {
		t.Errorf("elementTypeName(0x2000) = %q, want Custom(0x2000)", got)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = "does-not-exist.yaml"
	cfg, err := loadConfig(false)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Compiler.MaxDepth == 0 {
		t.Error("defaults not applied")
	}

	// An explicit --config pointing at a missing file is an error.
	if _, err := loadConfig(true); err == nil {
		t.Error("loadConfig() with explicit missing file did not fail")
	}
}
