// Package tools is the tool operation layer: the single sanctioned surface
// for reading or mutating the restaurant state. Each tool is a named
// operation with a declared effect (lookup or mutation), validated arguments,
// and an authority requirement enforced through the policy rules.
//
// Invocation is synchronous: a call does not return before its state effects
// are committed. Mutating calls are atomic; every rule is checked against the
// live state before the first write, so a denial leaves the store untouched.
//
// Denials are normal, observable responses, never panics or silent
// downgrades. The response status carries the error taxonomy:
//
//	success | denied | authority_exceeded | invalid_argument
//
// with a machine-readable code (POLICY_DENIED, NOT_FOUND,
// PRECONDITION_FAILED, ...) refining denied responses.
package tools
