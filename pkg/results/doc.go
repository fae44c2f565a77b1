// Package results persists scored session outcomes. The SQLite backend
// keeps full call traces and per-check detail for later querying; the memory
// backend serves tests and one-shot runs. A cron-driven pruner enforces the
// retention window on long-running deployments.
package results
