// Package restaurant provides the canonical mutable state for one simulated
// restaurant session: tables, reservations, customers, orders, incidents,
// inventory, offers, and the staff/kitchen context the policy rules consult.
//
// The store is single-writer and sequential. All mutation happens through the
// tool operation layer (pkg/tools); the scoring engine reads a deep-copied
// Snapshot and never observes in-flight state. A fixed simulation clock keeps
// every calendar-dependent rule (holidays, lunch special, hold expiry)
// deterministic across runs.
//
// # Thread Safety
//
// A Store is confined to a single session goroutine and requires no locking.
// Independent sessions each own an independent Store built from the same seed
// dataset.
package restaurant
