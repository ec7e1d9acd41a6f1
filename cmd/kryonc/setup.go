package main

import (
	"fmt"
	"os"
	"path/filepath"

	"kryon-labs/kryonc/pkg/cache"
	"kryon-labs/kryonc/pkg/compiler"
	"kryon-labs/kryonc/pkg/config"
	"kryon-labs/kryonc/pkg/telemetry/logging"
	"kryon-labs/kryonc/pkg/telemetry/metrics"
)

// loadConfig loads the configuration file, falling back to defaults when
// the default config path does not exist. An explicitly passed --config
// that cannot be read is an error.
func loadConfig(cmdLineSet bool) (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !cmdLineSet {
			return config.NewDefault(), nil
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", cfgFile, err)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newLogger builds the process logger from config, honoring --verbose.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg)
}

// newStore builds the configured cache store. Returns nil when caching
// is disabled.
func newStore(cfg *config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryStoreWithConfig(cache.MemoryStoreConfig{
			MaxEntries: cfg.Cache.MaxEntries,
		}), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.Cache.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("cannot create cache directory: %w", err)
			}
		}
		return cache.NewSQLiteStoreWithConfig(cache.SQLiteStoreConfig{
			DBPath:      cfg.Cache.SQLite.Path,
			BusyTimeout: cfg.Cache.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newCompiler wires up a compiler with cache, logger, and metrics.
// The returned store is nil when caching is disabled. The returned
// cleanup closes the cache store.
func newCompiler(cfg *config.Config) (*compiler.Compiler, *metrics.Collector, cache.Store, func(), error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	comp := compiler.New(cfg,
		compiler.WithCache(store),
		compiler.WithLogger(logger),
		compiler.WithMetrics(collector),
	)
	return comp, collector, store, cleanup, nil
}
