package config

import "time"

// Config is the root configuration structure for the kryonc compiler.
// It contains all configuration sections for compilation, the output
// cache, watch mode, and telemetry.
type Config struct {
	// Compiler contains compilation settings including parser limits
	// and output layout.
	Compiler CompilerConfig `yaml:"compiler"`

	// Cache contains configuration for the compiled-output cache.
	Cache CacheConfig `yaml:"cache"`

	// Watch contains configuration for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CompilerConfig contains compilation settings.
type CompilerConfig struct {
	// MaxFileSize is the largest source file the parser will accept,
	// in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the maximum element nesting depth.
	// Default: 64
	MaxDepth int `yaml:"max_depth"`

	// Strict enables strict parsing mode, where recoverable issues are
	// reported as errors.
	// Default: false
	Strict bool `yaml:"strict"`

	// OutputDir is the directory compiled output is written to. When
	// empty, output is written next to the source file.
	// Default: ""
	OutputDir string `yaml:"output_dir"`
}

// CacheConfig contains configuration for the compiled-output cache.
// The cache is keyed by a hash of the source content, so unchanged
// sources skip the compile pipeline entirely.
type CacheConfig struct {
	// Enabled controls whether the cache is used.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the cache implementation.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// MaxEntries is the maximum number of cached outputs kept by the
	// memory backend. Zero means unlimited.
	// Default: 256
	MaxEntries int `yaml:"max_entries"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains settings for the sqlite cache backend.
type SQLiteConfig struct {
	// Path is the filesystem path of the cache database.
	// Default: "data/kryonc-cache.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// WatchConfig contains configuration for watch mode, where the compiler
// monitors source files and recompiles on change.
type WatchConfig struct {
	// Debounce is how long to wait after the last filesystem event
	// before recompiling. Editors often emit several events per save.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`

	// Patterns is the list of file glob patterns to watch.
	// Default: ["*.kry.yaml", "*.kry.yml"]
	Patterns []string `yaml:"patterns"`

	// MetricsAddress is an optional "host:port" to serve Prometheus
	// metrics on while watching. Empty disables the metrics server.
	// Default: ""
	MetricsAddress string `yaml:"metrics_address"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "kryon"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "compiler"
	Subsystem string `yaml:"subsystem"`

	// CompileDurationBuckets defines histogram buckets for compile
	// duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0]
	CompileDurationBuckets []float64 `yaml:"compile_duration_buckets"`

	// OutputSizeBuckets defines histogram buckets for compiled output
	// size (bytes).
	// Default: 256B to 8MB, doubling
	OutputSizeBuckets []float64 `yaml:"output_size_buckets"`
}
