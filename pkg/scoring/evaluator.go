package scoring

import (
	"log/slog"

	"github.com/binleiwang/tau2-bench/pkg/session"
)

// Evaluator scores session results against task specs. It is stateless and
// safe for concurrent use.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator builds an evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{logger: slog.Default().With("component", "scoring")}
}

// Evaluate scores one finished session. Reward is the weighted fraction of
// passed checks; Pass requires every check to pass. A spec with no checks
// passes with full reward.
func (e *Evaluator) Evaluate(spec Spec, result session.Result) Report {
	env := &Env{
		Snapshot: result.Snapshot,
		Records:  result.Records,
		TimedOut: result.TimedOut,
	}

	var checks []Check
	if spec.Ordered {
		checks = matchOrdered(spec.RequiredActions, result.Records)
	} else {
		checks = matchUnordered(spec.RequiredActions, result.Records)
	}

	for _, assertion := range spec.Assertions {
		check := Check{Name: "assert:" + assertion.Name, Weight: weightOf(assertion.Weight)}
		pred, ok := predicates[assertion.Name]
		if !ok {
			check.Detail = "unknown assertion predicate"
		} else {
			check.Passed, check.Detail = pred(env, assertion.Args)
		}
		checks = append(checks, check)
	}

	report := Report{Pass: true, Checks: checks}
	var total, earned float64
	for _, c := range checks {
		total += c.Weight
		if c.Passed {
			earned += c.Weight
		} else {
			report.Pass = false
		}
	}
	if total == 0 {
		report.Reward = 1
	} else {
		report.Reward = earned / total
	}

	e.logger.Debug("session scored",
		"session_id", result.SessionID,
		"pass", report.Pass,
		"reward", report.Reward,
		"checks", len(checks))
	return report
}
