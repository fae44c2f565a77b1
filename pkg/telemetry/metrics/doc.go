// Package metrics exposes Prometheus metrics for tool invocations and
// scored sessions. The Collector implements the tool registry's Observer
// interface, so wiring it in is a single option at registry construction.
package metrics
