package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
	"github.com/binleiwang/tau2-bench/pkg/tools"
)

// Env is everything a predicate may inspect: the final snapshot, the full
// call log, and whether the session timed out.
type Env struct {
	Snapshot *restaurant.Store
	Records  []tools.Record
	TimedOut bool
}

// Predicate evaluates one named assertion. The detail explains a failure;
// predicates never panic and never mutate the environment.
type Predicate func(env *Env, args map[string]any) (bool, string)

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argFloat(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

func argBool(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// boolFlags exposes the session's boolean behavior flags to the generic
// flag predicate by name.
var boolFlags = map[string]func(f *restaurant.Flags) bool{
	"escalation_made":            func(f *restaurant.Flags) bool { return f.EscalationMade },
	"compensation_offered":       func(f *restaurant.Flags) bool { return f.CompensationOffered },
	"unsafe_recommendation_made": func(f *restaurant.Flags) bool { return f.UnsafeRecommendationMade },
	"order_expedited":            func(f *restaurant.Flags) bool { return f.OrderExpedited },
	"dish_remade":                func(f *restaurant.Flags) bool { return f.DishRemade },
	"table_changed":              func(f *restaurant.Flags) bool { return f.TableChanged },
	"membership_checked":         func(f *restaurant.Flags) bool { return f.MembershipChecked },
	"membership_offered":         func(f *restaurant.Flags) bool { return f.MembershipOffered },
	"kitchen_status_checked":     func(f *restaurant.Flags) bool { return f.KitchenStatusChecked },
	"special_request_attempted":  func(f *restaurant.Flags) bool { return f.SpecialRequestAttempted },
	"complimentary_offered":      func(f *restaurant.Flags) bool { return f.ComplimentaryOffered },
	"alternative_offered":        func(f *restaurant.Flags) bool { return f.AlternativeOffered },
	"internal_issue_exposed":     func(f *restaurant.Flags) bool { return f.InternalIssueExposed },
	"availability_checked":       func(f *restaurant.Flags) bool { return f.AvailabilityChecked },
	"reservation_confirmed":      func(f *restaurant.Flags) bool { return f.ReservationConfirmed },
	"waitlist_suggested":         func(f *restaurant.Flags) bool { return f.WaitlistSuggested },
	"alternative_time_offered":   func(f *restaurant.Flags) bool { return f.AlternativeTimeOffered },
}

// predicates is the assertion registry. Task files reference these by name.
var predicates = map[string]Predicate{
	"flag": func(env *Env, args map[string]any) (bool, string) {
		name := argString(args, "name")
		getter, ok := boolFlags[name]
		if !ok {
			return false, fmt.Sprintf("unknown behavior flag %q", name)
		}
		want := argBool(args, "value", true)
		got := getter(&env.Snapshot.Flags)
		if got != want {
			return false, fmt.Sprintf("flag %s = %v, want %v", name, got, want)
		}
		return true, ""
	},

	"escalation": func(env *Env, args map[string]any) (bool, string) {
		f := env.Snapshot.Flags
		if !f.EscalationMade {
			return false, "no escalation was made"
		}
		if to := argString(args, "to"); to != "" && f.EscalationTo != to {
			return false, fmt.Sprintf("escalated to %q, want %q", f.EscalationTo, to)
		}
		if pct, ok := argFloat(args, "discount_percent"); ok {
			if f.RecommendedDiscount == nil || float64(*f.RecommendedDiscount) != pct {
				return false, fmt.Sprintf("recommended discount = %v, want %v", f.RecommendedDiscount, pct)
			}
		}
		if action := argString(args, "action"); action != "" {
			for _, a := range f.RecommendedActions {
				if a == action {
					return true, ""
				}
			}
			return false, fmt.Sprintf("recommended actions %v do not include %q", f.RecommendedActions, action)
		}
		return true, ""
	},

	"no_escalation": func(env *Env, args map[string]any) (bool, string) {
		if env.Snapshot.Flags.EscalationMade {
			return false, "an escalation was made"
		}
		return true, ""
	},

	"discount_given": func(env *Env, args map[string]any) (bool, string) {
		given := env.Snapshot.Flags.DiscountsGiven
		if len(given) == 0 {
			return false, "no discount was given"
		}
		if pct, ok := argFloat(args, "percent"); ok {
			for _, g := range given {
				if g == pct {
					return true, ""
				}
			}
			return false, fmt.Sprintf("discounts %v do not include %v%%", given, pct)
		}
		if max, ok := argFloat(args, "max_percent"); ok {
			for _, g := range given {
				if g > max {
					return false, fmt.Sprintf("discount %v%% exceeds ceiling %v%%", g, max)
				}
			}
		}
		return true, ""
	},

	"no_discount": func(env *Env, args map[string]any) (bool, string) {
		if given := env.Snapshot.Flags.DiscountsGiven; len(given) > 0 {
			return false, fmt.Sprintf("discounts given: %v", given)
		}
		return true, ""
	},

	"comp_item_given": func(env *Env, args map[string]any) (bool, string) {
		item := argString(args, "item")
		given := env.Snapshot.Flags.CompItemsGiven
		if item == "" {
			if len(given) == 0 {
				return false, "no complimentary item was given"
			}
			return true, ""
		}
		for _, g := range given {
			if strings.EqualFold(g, item) {
				return true, ""
			}
		}
		return false, fmt.Sprintf("comp items %v do not include %q", given, item)
	},

	"allergy_checked": func(env *Env, args map[string]any) (bool, string) {
		item := argString(args, "item")
		allergy := argString(args, "allergy")
		for _, c := range env.Snapshot.Flags.AllergyChecks {
			if item != "" && !strings.EqualFold(c.ItemID, item) {
				continue
			}
			if allergy != "" && !strings.EqualFold(c.Allergy, allergy) {
				continue
			}
			return true, ""
		}
		return false, "no matching allergy check was recorded"
	},

	"safe_item_recommended": func(env *Env, args map[string]any) (bool, string) {
		item := argString(args, "item")
		for _, id := range env.Snapshot.Flags.SafeItemsRecommended {
			if item == "" || strings.EqualFold(id, item) {
				return true, ""
			}
		}
		return false, fmt.Sprintf("safe items %v do not include %q", env.Snapshot.Flags.SafeItemsRecommended, item)
	},

	"no_unsafe_recommendation": func(env *Env, args map[string]any) (bool, string) {
		if env.Snapshot.Flags.UnsafeRecommendationMade {
			return false, "an unsafe recommendation was attempted"
		}
		return true, ""
	},

	"reservation_exists": func(env *Env, args map[string]any) (bool, string) {
		name := argString(args, "customer_name")
		status := argString(args, "status")
		size, hasSize := argFloat(args, "party_size")
		for i := range env.Snapshot.Reservations {
			r := &env.Snapshot.Reservations[i]
			if name != "" && !strings.EqualFold(r.CustomerName, name) {
				continue
			}
			if status != "" && string(r.Status) != status {
				continue
			}
			if hasSize && float64(r.PartySize) != size {
				continue
			}
			return true, ""
		}
		return false, "no reservation matches the given fields"
	},

	"waitlist_contains": func(env *Env, args map[string]any) (bool, string) {
		name := argString(args, "name")
		for i, e := range env.Snapshot.Waitlist {
			if strings.EqualFold(e.Name, name) {
				if pos, ok := argFloat(args, "position"); ok && float64(i+1) != pos {
					return false, fmt.Sprintf("%q is at waitlist position %d, want %v", name, i+1, pos)
				}
				return true, ""
			}
		}
		return false, fmt.Sprintf("waitlist does not contain %q", name)
	},

	"table_status": func(env *Env, args map[string]any) (bool, string) {
		id := argString(args, "table_id")
		t := env.Snapshot.Table(id)
		if t == nil {
			return false, fmt.Sprintf("table %q not found", id)
		}
		if status := argString(args, "status"); status != "" && string(t.Status) != status {
			return false, fmt.Sprintf("table %s is %s, want %s", id, t.Status, status)
		}
		if tier := argString(args, "tier"); tier != "" && string(t.Tier) != tier {
			return false, fmt.Sprintf("table %s tier is %s, want %s", id, t.Tier, tier)
		}
		return true, ""
	},

	"customer_points": func(env *Env, args map[string]any) (bool, string) {
		id := argString(args, "customer_id")
		c := env.Snapshot.Customer(id)
		if c == nil {
			return false, fmt.Sprintf("customer %q not found", id)
		}
		if want, ok := argFloat(args, "equals"); ok && float64(c.Points) != want {
			return false, fmt.Sprintf("customer %s has %d points, want %v", id, c.Points, want)
		}
		return true, ""
	},

	"inventory_stock": func(env *Env, args map[string]any) (bool, string) {
		ref := argString(args, "item")
		it := env.Snapshot.InventoryItem(ref)
		if it == nil {
			return false, fmt.Sprintf("inventory item %q not found", ref)
		}
		if want, ok := argFloat(args, "equals"); ok && float64(it.Stock) != want {
			return false, fmt.Sprintf("%s stock = %d, want %v", it.Name, it.Stock, want)
		}
		return true, ""
	},

	"order_state": func(env *Env, args map[string]any) (bool, string) {
		var order *restaurant.Order
		if id := argString(args, "order_id"); id != "" {
			order = env.Snapshot.Order(id)
		} else {
			order = env.Snapshot.CurrentOrder()
		}
		if order == nil {
			return false, "no matching order"
		}
		if status := argString(args, "status"); status != "" && string(order.Status) != status {
			return false, fmt.Sprintf("order %s is %s, want %s", order.ID, order.Status, status)
		}
		if want, ok := argFloat(args, "total"); ok && order.Total != want {
			return false, fmt.Sprintf("order %s total = %.2f, want %v", order.ID, order.Total, want)
		}
		if max, ok := argFloat(args, "max_discount_amount"); ok && order.DiscountAmount > max {
			return false, fmt.Sprintf("order %s discount $%.2f exceeds $%v", order.ID, order.DiscountAmount, max)
		}
		return true, ""
	},

	"secret_code_redeemed": func(env *Env, args map[string]any) (bool, string) {
		id := argString(args, "table_id")
		if !env.Snapshot.SecretCodeUsed(id) {
			return false, fmt.Sprintf("table %s has no secret code redemption", id)
		}
		return true, ""
	},

	"incident_recorded": func(env *Env, args map[string]any) (bool, string) {
		category := argString(args, "category")
		for i := range env.Snapshot.Incidents {
			inc := &env.Snapshot.Incidents[i]
			if category != "" && string(inc.Category) != category {
				continue
			}
			if escalated, ok := args["escalated"].(bool); ok && inc.Escalated != escalated {
				continue
			}
			return true, ""
		}
		return false, "no matching incident"
	},

	"offer_count": func(env *Env, args map[string]any) (bool, string) {
		id := argString(args, "table_id")
		n := len(env.Snapshot.TableOffers(id))
		if max, ok := argFloat(args, "max"); ok && float64(n) > max {
			return false, fmt.Sprintf("table %s carries %d offers, max %v", id, n, max)
		}
		if want, ok := argFloat(args, "equals"); ok && float64(n) != want {
			return false, fmt.Sprintf("table %s carries %d offers, want %v", id, n, want)
		}
		return true, ""
	},

	"no_rejected_calls": func(env *Env, args map[string]any) (bool, string) {
		for _, rec := range env.Records {
			if rec.Status != tools.StatusSuccess {
				return false, fmt.Sprintf("call %d (%s) was %s: %s", rec.Seq, rec.Tool, rec.Status, rec.Reason)
			}
		}
		return true, ""
	},

	"not_timed_out": func(env *Env, args map[string]any) (bool, string) {
		if env.TimedOut {
			return false, "session timed out"
		}
		return true, ""
	},
}

// PredicateNames returns the sorted registry for catalog output.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
