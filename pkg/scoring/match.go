package scoring

import (
	"fmt"

	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// argsMatch reports whether a logged call satisfies the action's argument
// predicates. Numeric values compare by value, not representation, since
// YAML and JSON decode them differently.
func argsMatch(want map[string]any, got tools.Args) bool {
	for key, expected := range want {
		actual, ok := got[key]
		if !ok {
			return false
		}
		if !valuesEqual(expected, actual) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return fmt.Sprint(a) == fmt.Sprint(b)
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func actionMatches(action RequiredAction, rec tools.Record) bool {
	if rec.Tool != action.Tool {
		return false
	}
	if action.MustSucceed && rec.Status != tools.StatusSuccess {
		return false
	}
	return argsMatch(action.Args, rec.Args)
}

// matchOrdered checks the actions as a subsequence of the log and returns
// one Check per action.
func matchOrdered(actions []RequiredAction, records []tools.Record) []Check {
	checks := make([]Check, len(actions))
	next := 0
	for i, action := range actions {
		checks[i] = Check{Name: "action:" + action.Tool, Weight: weightOf(action.Weight)}
		found := false
		for ; next < len(records); next++ {
			if actionMatches(action, records[next]) {
				found = true
				next++
				break
			}
		}
		if found {
			checks[i].Passed = true
		} else {
			checks[i].Detail = fmt.Sprintf("no matching call to %s after position %d", action.Tool, next)
		}
	}
	return checks
}

// matchUnordered assigns each action to a distinct matching record,
// greedily in log order.
func matchUnordered(actions []RequiredAction, records []tools.Record) []Check {
	checks := make([]Check, len(actions))
	used := make([]bool, len(records))
	for i, action := range actions {
		checks[i] = Check{Name: "action:" + action.Tool, Weight: weightOf(action.Weight)}
		for j, rec := range records {
			if used[j] || !actionMatches(action, rec) {
				continue
			}
			used[j] = true
			checks[i].Passed = true
			break
		}
		if !checks[i].Passed {
			checks[i].Detail = fmt.Sprintf("no unmatched call to %s satisfies the argument predicates", action.Tool)
		}
	}
	return checks
}
