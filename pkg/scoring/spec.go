package scoring

// RequiredAction is one tool call the agent must have made. Args are
// equality predicates on the logged arguments: every listed key must be
// present and equal; unlisted arguments are unconstrained.
type RequiredAction struct {
	Tool        string         `yaml:"tool"`
	Args        map[string]any `yaml:"args"`
	MustSucceed bool           `yaml:"must_succeed"`
	Weight      float64        `yaml:"weight"`
}

// Assertion is one named predicate over the final snapshot and call log.
type Assertion struct {
	Name   string         `yaml:"name"`
	Args   map[string]any `yaml:"args"`
	Weight float64        `yaml:"weight"`
}

// Spec is the scorable part of a task definition.
type Spec struct {
	// Ordered requires the actions to appear as a subsequence of the log;
	// otherwise each action matches any distinct record.
	Ordered bool `yaml:"ordered"`

	RequiredActions []RequiredAction `yaml:"required_actions"`
	Assertions      []Assertion      `yaml:"assertions"`
}

// Check is the outcome of one required action or assertion.
type Check struct {
	Name   string  `json:"name"`
	Passed bool    `json:"passed"`
	Detail string  `json:"detail,omitempty"`
	Weight float64 `json:"weight"`
}

// Report is the deterministic score for one session.
type Report struct {
	Pass   bool    `json:"pass"`
	Reward float64 `json:"reward"`
	Checks []Check `json:"checks"`
}

func weightOf(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
