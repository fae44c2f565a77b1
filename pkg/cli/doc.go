// Package cli provides shared helpers for the command-line interface:
// output formatting, progress reporting, signal handling, and typed errors.
package cli
