package tools

import (
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// Kind declares a tool's effect on the store.
type Kind string

const (
	// KindRead marks pure lookups that never mutate state.
	KindRead Kind = "read"

	// KindWrite marks tools that mutate state after validation.
	KindWrite Kind = "write"
)

// Status is the outcome class of a tool invocation.
type Status string

const (
	StatusSuccess           Status = "success"
	StatusDenied            Status = "denied"
	StatusAuthorityExceeded Status = "authority_exceeded"
	StatusInvalidArgument   Status = "invalid_argument"
)

// Error taxonomy codes refining non-success responses.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeAuthorityExceeded  = "AUTHORITY_EXCEEDED"
	CodePolicyDenied       = "POLICY_DENIED"
	CodeNotFound           = "NOT_FOUND"
	CodePreconditionFailed = "PRECONDITION_FAILED"
)

// Request is one tool call issued by the driver on behalf of the agent.
type Request struct {
	Tool string `yaml:"tool" json:"tool"`
	Args Args   `yaml:"args" json:"args"`
}

// Response is the structured result of a tool invocation.
type Response struct {
	Status  Status         `json:"status"`
	Code    string         `json:"code,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// OK reports whether the invocation succeeded.
func (r Response) OK() bool { return r.Status == StatusSuccess }

// Record is one entry of a session's ordered call log: the request, its
// response, and the position it was applied at.
type Record struct {
	Seq      int            `json:"seq"`
	Tool     string         `json:"tool"`
	Args     Args           `json:"args"`
	Status   Status         `json:"status"`
	Code     string         `json:"code,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// Invocation carries the per-call context handed to a tool handler.
type Invocation struct {
	Store *restaurant.Store
	Args  Args
	Now   time.Time
}

// HandlerFunc implements one tool. Handlers validate every argument and rule
// against the live store before the first mutation.
type HandlerFunc func(inv *Invocation) (map[string]any, *Error)

// Tool is a named operation in the catalog.
type Tool struct {
	Name        string
	Kind        Kind
	Description string
	Handler     HandlerFunc
}
