package tasks

import (
	"fmt"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/scoring"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// Task is one benchmark scenario: how to seed the session, what the agent
// did (the scripted calls), and how to score the outcome.
type Task struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Seed overlays the bundled default dataset section by section.
	Seed *restaurant.Seed `yaml:"seed"`

	// Script is the ordered list of tool calls to apply.
	Script []tools.Request `yaml:"script"`

	// Scoring is evaluated against the finished session.
	Scoring scoring.Spec `yaml:"scoring"`

	// TimeoutSeconds bounds the session wall clock. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the session timeout as a duration.
func (t *Task) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// Validate checks the task for structural problems before any session runs.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task has no name")
	}
	if len(t.Script) == 0 {
		return fmt.Errorf("task %q has an empty script", t.Name)
	}
	for i, req := range t.Script {
		if req.Tool == "" {
			return fmt.Errorf("task %q script entry %d has no tool name", t.Name, i)
		}
	}
	for i, action := range t.Scoring.RequiredActions {
		if action.Tool == "" {
			return fmt.Errorf("task %q required action %d has no tool name", t.Name, i)
		}
	}
	for i, assertion := range t.Scoring.Assertions {
		if assertion.Name == "" {
			return fmt.Errorf("task %q assertion %d has no predicate name", t.Name, i)
		}
	}
	if t.TimeoutSeconds < 0 {
		return fmt.Errorf("task %q has a negative timeout", t.Name)
	}
	return nil
}

// BuildSeed resolves the task's effective seed: the bundled defaults with
// the task's overlay merged on top.
func (t *Task) BuildSeed() *restaurant.Seed {
	seed := restaurant.DefaultSeed()
	seed.Merge(t.Seed)
	return seed
}
