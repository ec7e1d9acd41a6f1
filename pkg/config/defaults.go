package config

import "time"

// Default values for configuration fields.
const (
	// Compiler defaults
	DefaultMaxFileSize = int64(10 * 1024 * 1024)
	DefaultMaxDepth    = 64

	// Cache defaults
	DefaultCacheEnabled       = true
	DefaultCacheBackend       = "sqlite"
	DefaultCacheMaxEntries    = 256
	DefaultSQLitePath         = "data/kryonc-cache.db"
	DefaultSQLiteMaxOpenConns = 10
	DefaultSQLiteMaxIdleConns = 5
	DefaultSQLiteWALMode      = true
	DefaultSQLiteBusyTimeout  = 5 * time.Second

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel    = "info"
	DefaultLoggingFormat   = "text"
	DefaultMetricsEnabled  = true
	DefaultPrometheusPath  = "/metrics"
	DefaultMetricsNS       = "kryon"
	DefaultMetricsSubsys   = "compiler"
)

// DefaultWatchPatterns is the default set of file glob patterns watched
// in watch mode.
var DefaultWatchPatterns = []string{"*.kry.yaml", "*.kry.yml"}

// DefaultCompileDurationBuckets is the default histogram bucket set for
// compile duration, in seconds. Compiles are fast, so the buckets sit
// well below typical request-latency buckets.
var DefaultCompileDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0}

// DefaultOutputSizeBuckets is the default histogram bucket set for
// compiled output size, in bytes (256B to 8MB, doubling).
var DefaultOutputSizeBuckets = []float64{
	256, 512, 1024, 2048, 4096, 8192, 16384, 32768,
	65536, 131072, 262144, 524288, 1048576, 2097152, 4194304, 8388608,
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Compiler defaults
	if cfg.Compiler.MaxFileSize == 0 {
		cfg.Compiler.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Compiler.MaxDepth == 0 {
		cfg.Compiler.MaxDepth = DefaultMaxDepth
	}

	// Cache defaults
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Cache.SQLite.Path == "" {
		cfg.Cache.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Cache.SQLite.MaxOpenConns == 0 {
		cfg.Cache.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Cache.SQLite.MaxIdleConns == 0 {
		cfg.Cache.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Cache.SQLite.BusyTimeout == 0 {
		cfg.Cache.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Patterns) == 0 {
		cfg.Watch.Patterns = append([]string(nil), DefaultWatchPatterns...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNS
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsys
	}
	if len(cfg.Telemetry.Metrics.CompileDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.CompileDurationBuckets = append([]float64(nil), DefaultCompileDurationBuckets...)
	}
	if len(cfg.Telemetry.Metrics.OutputSizeBuckets) == 0 {
		cfg.Telemetry.Metrics.OutputSizeBuckets = append([]float64(nil), DefaultOutputSizeBuckets...)
	}
}

// NewDefault returns a configuration populated entirely from defaults.
func NewDefault() *Config {
	cfg := &Config{}
	cfg.Cache.Enabled = DefaultCacheEnabled
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
