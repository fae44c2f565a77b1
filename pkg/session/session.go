package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// ErrTimeout is returned once a session's wall-clock budget is exhausted.
// The log accumulated so far remains valid and is scored as-is.
var ErrTimeout = errors.New("session timeout exceeded")

// DefaultTimeout bounds a single session's wall-clock time.
const DefaultTimeout = 2 * time.Minute

// Session is one conversation: a private store, the shared tool registry,
// and the ordered log of every call applied so far. A Session must only be
// used from one goroutine.
type Session struct {
	id       string
	store    *restaurant.Store
	registry *tools.Registry
	log      []tools.Record
	logger   *slog.Logger

	started  time.Time
	timeout  time.Duration
	timedOut bool
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout overrides the session's wall-clock budget.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New starts a session over a freshly built store.
func New(store *restaurant.Store, registry *tools.Registry, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		store:    store,
		registry: registry,
		logger:   slog.Default().With("component", "session"),
		started:  time.Now(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.id)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Apply executes the next tool call. Rejected calls are logged like accepted
// ones; only a timeout stops the session.
func (s *Session) Apply(req tools.Request) (tools.Response, error) {
	if s.timedOut {
		return tools.Response{}, ErrTimeout
	}
	if time.Since(s.started) > s.timeout {
		s.timedOut = true
		s.logger.Warn("session timed out", "applied_calls", len(s.log))
		return tools.Response{}, ErrTimeout
	}

	start := time.Now()
	resp := s.registry.Invoke(s.store, req)
	s.log = append(s.log, tools.Record{
		Seq:      len(s.log),
		Tool:     req.Tool,
		Args:     req.Args.Clone(),
		Status:   resp.Status,
		Code:     resp.Code,
		Reason:   resp.Reason,
		Payload:  resp.Payload,
		Duration: time.Since(start),
	})
	return resp, nil
}

// Log returns the ordered call log.
func (s *Session) Log() []tools.Record { return s.log }

// TimedOut reports whether the session hit its wall-clock budget.
func (s *Session) TimedOut() bool { return s.timedOut }

// Result is the scorable outcome of a finished session.
type Result struct {
	SessionID string
	Records   []tools.Record
	Snapshot  *restaurant.Store
	TimedOut  bool
	Duration  time.Duration
}

// Finish seals the session and returns its result. The snapshot is a deep
// copy, so the scorer never observes the live store.
func (s *Session) Finish() Result {
	return Result{
		SessionID: s.id,
		Records:   s.log,
		Snapshot:  s.store.Snapshot(),
		TimedOut:  s.timedOut,
		Duration:  time.Since(s.started),
	}
}
