// Package config loads, defaults, and validates the benchmark runner's
// YAML configuration. Environment variables with the TAU2_ prefix override
// file values.
package config
