// Package config provides configuration management for the kryonc compiler.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("kryonc.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("kryonc.yaml")
//
// A fully defaulted configuration is available without a file:
//
//	cfg := config.NewDefault()
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention KRYONC_SECTION_FIELD.
// For example:
//
//   - KRYONC_CACHE_BACKEND overrides cache.backend
//   - KRYONC_COMPILER_MAX_DEPTH overrides compiler.max_depth
//   - KRYONC_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Example Configuration File
//
//	compiler:
//	  max_depth: 64
//	  output_dir: build/
//	cache:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/kryonc-cache.db
//	watch:
//	  debounce: 200ms
//	  metrics_address: 127.0.0.1:9090
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
package config
