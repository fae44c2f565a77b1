// Package scoring evaluates a finished session against its task: required
// tool calls matched structurally against the ordered log, and named state
// assertions evaluated over the final snapshot. Scoring is deterministic and
// total; an unmet assertion fails its check and never aborts the report.
package scoring
