package config

import "time"

// Config is the root configuration for the benchmark runner.
type Config struct {
	// Tasks configures where task definitions are loaded from.
	Tasks TasksConfig `yaml:"tasks"`

	// Runner configures session execution.
	Runner RunnerConfig `yaml:"runner"`

	// Results configures persistence of scored results.
	Results ResultsConfig `yaml:"results"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// TasksConfig configures task definition loading.
type TasksConfig struct {
	// Dir is the directory scanned for task YAML files.
	// Default: "./tasks"
	Dir string `yaml:"dir"`

	// Watch reloads task files when they change on disk.
	// Default: false
	Watch bool `yaml:"watch"`
}

// RunnerConfig configures session execution.
type RunnerConfig struct {
	// Workers is the number of sessions run in parallel. Each session
	// stays single-threaded; workers only overlap distinct sessions.
	// Default: 4
	Workers int `yaml:"workers"`

	// SessionTimeout bounds a single session's wall-clock time.
	// Default: 2m
	SessionTimeout time.Duration `yaml:"session_timeout"`
}

// ResultsConfig configures persistence of scored results.
type ResultsConfig struct {
	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/results.db"
	SQLitePath string `yaml:"sqlite_path"`

	// BusyTimeout is how long sqlite writers wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// RetentionDays is how long results are kept. Zero disables pruning.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a standard cron expression for the pruning job.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII rewrites guest phone numbers and emails in log output.
	// Default: false
	RedactPII bool `yaml:"redact_pii"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns metric collection and the HTTP endpoint on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where /metrics is served when enabled.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "tau2", "bench"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}
