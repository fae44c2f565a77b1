package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and then
// applies environment variable overrides. Variables follow the naming
// convention TAU2_SECTION_FIELD (e.g. TAU2_RUNNER_WORKERS) and always take
// precedence over file values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("TAU2_TASKS_DIR"); val != "" {
		cfg.Tasks.Dir = val
	}
	if val := os.Getenv("TAU2_TASKS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tasks.Watch = b
		}
	}

	if val := os.Getenv("TAU2_RUNNER_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Runner.Workers = i
		}
	}
	if val := os.Getenv("TAU2_RUNNER_SESSION_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Runner.SessionTimeout = d
		}
	}

	if val := os.Getenv("TAU2_RESULTS_BACKEND"); val != "" {
		cfg.Results.Backend = val
	}
	if val := os.Getenv("TAU2_RESULTS_SQLITE_PATH"); val != "" {
		cfg.Results.SQLitePath = val
	}
	if val := os.Getenv("TAU2_RESULTS_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Results.RetentionDays = i
		}
	}
	if val := os.Getenv("TAU2_RESULTS_PRUNE_SCHEDULE"); val != "" {
		cfg.Results.PruneSchedule = val
	}

	if val := os.Getenv("TAU2_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("TAU2_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("TAU2_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TAU2_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
}
