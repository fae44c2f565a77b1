package policy

import "github.com/binleiwang/tau2-bench/pkg/restaurant"

// SeverityBucket coarsens a measured severity (wait minutes, damage extent,
// bill amount) into the granularity the remedy table is keyed on.
type SeverityBucket string

const (
	SeverityMinor    SeverityBucket = "minor"
	SeverityModerate SeverityBucket = "moderate"
	SeverityMajor    SeverityBucket = "major"
)

// Remedy is one row of the policy manual's remedy table.
type Remedy struct {
	// DiscountPct is the bill discount the remedy prescribes.
	DiscountPct int

	// DryCleaningUSD is a fixed reimbursement for clothing damage.
	DryCleaningUSD float64

	// FullCompBillLimit: when > 0 and the bill is at or under this amount,
	// the remedy upgrades from DiscountPct to a full comp.
	FullCompBillLimit float64

	// Escalate marks remedies that must be handed to a higher role.
	Escalate bool

	// EscalateTo names the role the case escalates to.
	EscalateTo string

	// MaxCompPct caps what the escalation target may grant (100 = full
	// bill comp) if the customer remains extremely upset.
	MaxCompPct int

	// Actions are the recommended structured actions for the remedy.
	Actions []string
}

type remedyKey struct {
	Category restaurant.IncidentCategory
	Severity SeverityBucket
}

// remedyTable encodes the manual's decision trees as a flat lookup instead
// of branching prose, keeping the rule set auditable in isolation.
var remedyTable = map[remedyKey]Remedy{
	{restaurant.IncidentServiceDelay, SeverityMinor}: {
		Actions: []string{"comp_beverage"},
	},
	{restaurant.IncidentServiceDelay, SeverityModerate}: {
		DiscountPct: 10,
		Actions:     []string{"comp_appetizer", "expedite_order"},
	},
	{restaurant.IncidentServiceDelay, SeverityMajor}: {
		// 30+ minute wait on an important occasion.
		DiscountPct: 20,
		Actions:     []string{"expedite_order", "comp_appetizer"},
	},
	{restaurant.IncidentCelebrationFailure, SeverityMajor}: {
		// Cake storage failure: 50% now; escalation may grant up to a
		// full comp if the customer remains extremely upset.
		DiscountPct: 50,
		Escalate:    true,
		EscalateTo:  "manager",
		MaxCompPct:  100,
		Actions:     []string{"offer_replacement_cake", "comp_dessert"},
	},
	{restaurant.IncidentPropertyDamage, SeverityMinor}: {
		DryCleaningUSD: 30,
		Actions:        []string{"offer_dry_cleaning"},
	},
	{restaurant.IncidentPropertyDamage, SeverityMajor}: {
		DryCleaningUSD:    30,
		DiscountPct:       50,
		FullCompBillLimit: 80,
		Escalate:          true,
		EscalateTo:        "manager",
		Actions:           []string{"offer_dry_cleaning", "comp_entire_meal"},
	},
	{restaurant.IncidentQualityIssue, SeverityMinor}: {
		Actions: []string{"remake_dish"},
	},
	{restaurant.IncidentQualityIssue, SeverityMajor}: {
		DiscountPct: 10,
		Actions:     []string{"remake_dish", "comp_dessert"},
	},
	{restaurant.IncidentSafety, SeverityMinor}: {
		Escalate:   true,
		EscalateTo: "manager",
		Actions:    []string{"comp_entire_meal"},
	},
	{restaurant.IncidentSafety, SeverityMajor}: {
		Escalate:   true,
		EscalateTo: "manager",
		MaxCompPct: 100,
		Actions:    []string{"comp_entire_meal", "full_refund"},
	},
}

// LookupRemedy returns the remedy for a category and severity bucket.
func LookupRemedy(cat restaurant.IncidentCategory, sev SeverityBucket) (Remedy, bool) {
	r, ok := remedyTable[remedyKey{cat, sev}]
	return r, ok
}

// DelaySeverity buckets a measured wait. Thirty minutes or more on an
// important occasion is a major delay per the manual.
func DelaySeverity(waitMinutes int, importantOccasion bool) SeverityBucket {
	switch {
	case waitMinutes >= 30 && importantOccasion:
		return SeverityMajor
	case waitMinutes >= 15:
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// DamageRemedy resolves the clothing damage path against the current bill:
// minor damage gets the dry cleaning reimbursement; major damage adds a full
// comp when the bill is at or under the limit, a 50% discount otherwise.
func DamageRemedy(severity SeverityBucket, billTotal float64) Remedy {
	r, _ := LookupRemedy(restaurant.IncidentPropertyDamage, severity)
	if severity == SeverityMajor && r.FullCompBillLimit > 0 && billTotal <= r.FullCompBillLimit {
		r.DiscountPct = 100
	}
	return r
}
