package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "results.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects all field errors found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
var validFormats = map[string]bool{"json": true, "text": true}

// Validate checks the configuration and returns a ValidationError listing
// every problem found, or nil when the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Tasks.Dir == "" {
		errs = append(errs, FieldError{"tasks.dir", "must not be empty"})
	}

	if cfg.Runner.Workers < 1 {
		errs = append(errs, FieldError{"runner.workers", fmt.Sprintf("must be at least 1, got %d", cfg.Runner.Workers)})
	}
	if cfg.Runner.SessionTimeout < 0 {
		errs = append(errs, FieldError{"runner.session_timeout", "must not be negative"})
	}

	switch cfg.Results.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{"results.backend", fmt.Sprintf("must be \"memory\" or \"sqlite\", got %q", cfg.Results.Backend)})
	}
	if cfg.Results.Backend == "sqlite" && cfg.Results.SQLitePath == "" {
		errs = append(errs, FieldError{"results.sqlite_path", "must not be empty for the sqlite backend"})
	}
	if cfg.Results.RetentionDays < 0 {
		errs = append(errs, FieldError{"results.retention_days", "must not be negative"})
	}
	if cfg.Results.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Results.PruneSchedule); err != nil {
			errs = append(errs, FieldError{"results.prune_schedule", fmt.Sprintf("invalid cron expression: %v", err)})
		}
	}

	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, FieldError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, FieldError{"logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{"metrics.listen_address", "must not be empty when metrics are enabled"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
