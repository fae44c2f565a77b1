package policy

import "fmt"

// Effect is the outcome class of a rule evaluation.
type Effect string

const (
	// EffectAllow permits the proposed action.
	EffectAllow Effect = "allow"

	// EffectDeny rejects the proposed action with a code and reason.
	EffectDeny Effect = "deny"

	// EffectEscalate rejects the action as-is but indicates it may proceed
	// through an escalation to a higher-authority role.
	EffectEscalate Effect = "require_escalation"
)

// Code is a machine-readable denial code aligned with the tool layer's
// error taxonomy.
type Code string

const (
	CodeAuthorityExceeded  Code = "AUTHORITY_EXCEEDED"
	CodePolicyDenied       Code = "POLICY_DENIED"
	CodePreconditionFailed Code = "PRECONDITION_FAILED"
)

// Decision is the result of evaluating one rule against a proposed action.
type Decision struct {
	Effect Effect
	Code   Code
	Reason string
}

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool { return d.Effect == EffectAllow }

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Effect: EffectAllow}
}

// Deny returns a denying decision with a code and formatted reason.
func Deny(code Code, format string, args ...any) Decision {
	return Decision{Effect: EffectDeny, Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Escalate returns a require-escalation decision.
func Escalate(format string, args ...any) Decision {
	return Decision{
		Effect: EffectEscalate,
		Code:   CodeAuthorityExceeded,
		Reason: fmt.Sprintf(format, args...),
	}
}
