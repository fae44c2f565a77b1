package config

import "time"

// Default values for configuration fields.
const (
	DefaultTasksDir = "./tasks"

	DefaultRunnerWorkers  = 4
	DefaultSessionTimeout = 2 * time.Minute

	DefaultResultsBackend = "sqlite"
	DefaultSQLitePath     = "data/results.db"
	DefaultBusyTimeout    = 5 * time.Second
	DefaultRetentionDays  = 30
	DefaultPruneSchedule  = "0 3 * * *"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsNamespace     = "tau2"
	DefaultMetricsSubsystem     = "bench"
)

// ApplyDefaults fills in default values for fields left at their zero value.
func ApplyDefaults(cfg *Config) {
	if cfg.Tasks.Dir == "" {
		cfg.Tasks.Dir = DefaultTasksDir
	}

	if cfg.Runner.Workers == 0 {
		cfg.Runner.Workers = DefaultRunnerWorkers
	}
	if cfg.Runner.SessionTimeout == 0 {
		cfg.Runner.SessionTimeout = DefaultSessionTimeout
	}

	if cfg.Results.Backend == "" {
		cfg.Results.Backend = DefaultResultsBackend
	}
	if cfg.Results.SQLitePath == "" {
		cfg.Results.SQLitePath = DefaultSQLitePath
	}
	if cfg.Results.BusyTimeout == 0 {
		cfg.Results.BusyTimeout = DefaultBusyTimeout
	}
	if cfg.Results.RetentionDays == 0 {
		cfg.Results.RetentionDays = DefaultRetentionDays
	}
	if cfg.Results.PruneSchedule == "" {
		cfg.Results.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
