package policy

import "github.com/binleiwang/tau2-bench/pkg/restaurant"

// alwaysEscalate lists the incident categories that must reach a manager
// regardless of remedy cost.
var alwaysEscalate = map[restaurant.IncidentCategory]struct{}{
	restaurant.IncidentSafety:             {},
	restaurant.IncidentPropertyDamage:     {},
	restaurant.IncidentCelebrationFailure: {},
	restaurant.IncidentManagerRequest:     {},
	restaurant.IncidentReviewThreat:       {},
}

// MustEscalate derives whether an incident requires escalation: either the
// category always escalates, or the computed remedy cost exceeds what the
// acting role may grant on its own.
func MustEscalate(cat restaurant.IncidentCategory, remedyDiscountPct float64, auth restaurant.StaffAuthority) bool {
	if _, ok := alwaysEscalate[cat]; ok {
		return true
	}
	if auth.Unlimited {
		return false
	}
	return remedyDiscountPct > auth.MaxDiscountPct
}

// EscalationActions is the structured action vocabulary accepted by the
// escalation tool.
var EscalationActions = []string{
	// Immediate compensation within front-line authority.
	"comp_dessert",
	"comp_appetizer",
	"comp_beverage",
	"comp_kids_toy",
	// Higher compensation requiring a manager.
	"comp_entire_meal",
	"offer_replacement_cake",
	"offer_dry_cleaning",
	"full_refund",
	// Problem resolution.
	"expedite_order",
	"remake_dish",
	"change_table",
	// Future compensation.
	"gift_card",
	"priority_reservation",
	"free_dessert_next_visit",
	"discount_next_visit",
}

// ValidEscalationAction reports whether an action belongs to the documented
// vocabulary.
func ValidEscalationAction(action string) bool {
	for _, a := range EscalationActions {
		if a == action {
			return true
		}
	}
	return false
}

// ValidEscalationTarget reports whether the escalation target is a role the
// manual recognizes.
func ValidEscalationTarget(to string) bool {
	return to == "host" || to == "manager"
}
