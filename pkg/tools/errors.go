package tools

import (
	"fmt"

	"github.com/binleiwang/tau2-bench/pkg/policy"
)

// Error is a typed tool failure carrying the response status and taxonomy
// code. All tool errors are recoverable at the call level; the session
// continues after any of them.
type Error struct {
	Status Status
	Code   string
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func invalidArgf(format string, args ...any) *Error {
	return &Error{Status: StatusInvalidArgument, Code: CodeInvalidArgument, Reason: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Status: StatusDenied, Code: CodeNotFound, Reason: fmt.Sprintf(format, args...)}
}

func deniedf(format string, args ...any) *Error {
	return &Error{Status: StatusDenied, Code: CodePolicyDenied, Reason: fmt.Sprintf(format, args...)}
}

func preconditionf(format string, args ...any) *Error {
	return &Error{Status: StatusDenied, Code: CodePreconditionFailed, Reason: fmt.Sprintf(format, args...)}
}

func authorityf(format string, args ...any) *Error {
	return &Error{Status: StatusAuthorityExceeded, Code: CodeAuthorityExceeded, Reason: fmt.Sprintf(format, args...)}
}

// fromDecision converts a policy denial into a tool error. Allowing
// decisions must not reach this.
func fromDecision(d policy.Decision) *Error {
	switch {
	case d.Effect == policy.EffectEscalate || d.Code == policy.CodeAuthorityExceeded:
		return &Error{Status: StatusAuthorityExceeded, Code: CodeAuthorityExceeded, Reason: d.Reason}
	case d.Code == policy.CodePreconditionFailed:
		return &Error{Status: StatusDenied, Code: CodePreconditionFailed, Reason: d.Reason}
	default:
		return &Error{Status: StatusDenied, Code: CodePolicyDenied, Reason: d.Reason}
	}
}
