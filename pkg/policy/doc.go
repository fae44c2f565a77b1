// Package policy implements the restaurant's policy manual as stateless rule
// functions. Each rule maps current state plus a proposed action to a typed
// Decision: allow, deny with a machine-readable code, or require-escalation.
//
// Rules never mutate state; only the tool operation layer commits effects,
// and only after every relevant rule allowed them. Denials are reported to
// the caller as-is and are never silently downgraded to a different action.
//
// The rule set covers:
//
//   - role-based authority ceilings (discount %, comp $, round-off $)
//   - offer stacking via a compatibility matrix over exclusivity classes
//   - escalation trigger derivation from incident category and remedy cost
//   - the incident remedy table keyed by (category, severity bucket)
//   - allergen safety resolution with Plain Water as the only guaranteed
//     soup base
//   - temporal and holiday gating for reservations and the lunch special
package policy
