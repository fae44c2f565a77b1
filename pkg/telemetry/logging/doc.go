// Package logging builds the process-wide slog logger from configuration
// and redacts customer contact details from log output.
package logging
