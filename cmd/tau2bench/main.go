// tau2bench runs deterministic restaurant policy benchmarks.
//
// It loads task definitions, replays each task's scripted tool calls
// against an isolated restaurant state, scores the outcome, and persists
// the results.
//
// Usage:
//
//	# Run every task in the configured directory
//	tau2bench run
//
//	# Run with a custom configuration file
//	tau2bench run --config /path/to/config.yaml
//
//	# Check task files without running them
//	tau2bench validate --dir ./tasks
//
//	# List loaded tasks
//	tau2bench tasks --dir ./tasks
//
//	# Inspect stored results
//	tau2bench results --format json
package main

func main() {
	Execute()
}
