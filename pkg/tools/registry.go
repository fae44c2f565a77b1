package tools

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// Observer receives the outcome of every tool invocation. Implementations
// must be safe for concurrent use when the same registry serves parallel
// sessions.
type Observer interface {
	ObserveInvocation(tool string, kind Kind, status Status, d time.Duration)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) ObserveInvocation(string, Kind, Status, time.Duration) {}

// Registry holds the tool catalog. It is immutable after construction and
// shared across sessions; all per-session state lives in the store each
// Invoke call receives.
type Registry struct {
	tools    map[string]Tool
	logger   *slog.Logger
	observer Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for invocation records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.observer = o }
}

// NewRegistry builds the full tool catalog.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:    make(map[string]Tool),
		logger:   slog.Default().With("component", "tools"),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, t := range catalog() {
		r.register(t)
	}
	return r
}

func (r *Registry) register(t Tool) {
	if _, dup := r.tools[t.Name]; dup {
		panic(fmt.Sprintf("tools: duplicate registration of %q", t.Name))
	}
	r.tools[t.Name] = t
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the tool with the given name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Invoke executes a single tool request against the given store. An unknown
// tool name is an invalid argument; every other failure carries the status
// and code the handler assigned. The store is only mutated when the handler
// finished all validation, so a non-success response leaves it untouched.
func (r *Registry) Invoke(store *restaurant.Store, req Request) Response {
	start := time.Now()
	tool, ok := r.tools[req.Tool]
	if !ok {
		resp := Response{
			Status: StatusInvalidArgument,
			Code:   CodeInvalidArgument,
			Reason: fmt.Sprintf("unknown tool %q", req.Tool),
		}
		r.finish(req.Tool, KindRead, resp, time.Since(start))
		return resp
	}

	// Hold expiry is a pure function of the simulated clock; running it
	// before every call keeps reads and writes consistent with each other.
	store.ExpireHolds()

	inv := &Invocation{
		Store: store,
		Args:  Args(req.Args),
		Now:   store.Now(),
	}
	payload, terr := tool.Handler(inv)

	var resp Response
	if terr != nil {
		resp = Response{Status: terr.Status, Code: terr.Code, Reason: terr.Reason}
	} else {
		resp = Response{Status: StatusSuccess, Payload: payload}
	}
	r.finish(req.Tool, tool.Kind, resp, time.Since(start))
	return resp
}

func (r *Registry) finish(name string, kind Kind, resp Response, d time.Duration) {
	attrs := []any{
		"tool", name,
		"status", string(resp.Status),
		"duration_ms", d.Milliseconds(),
	}
	if resp.OK() {
		r.logger.Debug("tool invocation", attrs...)
	} else {
		attrs = append(attrs, "code", resp.Code, "reason", resp.Reason)
		r.logger.Info("tool invocation rejected", attrs...)
	}
	r.observer.ObserveInvocation(name, kind, resp.Status, d)
}
