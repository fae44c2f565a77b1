// Package session runs one simulated conversation against its own state
// store. Calls apply strictly in order; there is no intra-session
// concurrency. Independent sessions share nothing mutable and may run in
// parallel through the Runner.
package session
