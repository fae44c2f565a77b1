package tools

import (
	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// resolveSafety runs the allergen lookup for either a soup base or a menu
// item and records the check on the session flags.
func resolveSafety(inv *Invocation, ref, allergy string) (policy.SafetyVerdict, string, *Error) {
	if sb := inv.Store.SoupBase(ref); sb != nil {
		return policy.ResolveSoupBaseSafety(sb, allergy), sb.ID, nil
	}
	if it := inv.Store.MenuItem(ref); it != nil {
		return policy.ResolveMenuItemSafety(it, allergy), it.ID, nil
	}
	return policy.SafetyVerdict{}, "", notFoundf("no menu item or soup base matching %q", ref)
}

func checkAllergySafety(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.String("item")
	if terr != nil {
		return nil, terr
	}
	allergy, terr := inv.Args.String("allergy")
	if terr != nil {
		return nil, terr
	}

	verdict, itemID, terr := resolveSafety(inv, ref, allergy)
	if terr != nil {
		return nil, terr
	}

	flags := &inv.Store.Flags
	flags.AllergyChecks = append(flags.AllergyChecks, restaurant.AllergyCheck{
		ItemID:        itemID,
		Allergy:       allergy,
		ConfirmedSafe: verdict.Safe && verdict.Guaranteed,
	})
	if verdict.Safe {
		flags.SafeItemsRecommended = append(flags.SafeItemsRecommended, itemID)
	}

	return map[string]any{
		"item":               verdict.Item,
		"allergy":            allergy,
		"safe":               verdict.Safe,
		"guaranteed":         verdict.Guaranteed,
		"known_allergens":    verdict.KnownAllergens,
		"hidden_ingredients": verdict.HiddenIngredients,
		"recommendation":     verdict.Recommendation,
	}, nil
}

// confirmAllergySafeItem is the only sanctioned way to make an affirmative
// safety claim to a customer. Confirming an item the lookup cannot guarantee
// is denied, and the attempt itself is recorded.
func confirmAllergySafeItem(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.String("item")
	if terr != nil {
		return nil, terr
	}
	allergy, terr := inv.Args.String("allergy")
	if terr != nil {
		return nil, terr
	}

	verdict, itemID, terr := resolveSafety(inv, ref, allergy)
	if terr != nil {
		return nil, terr
	}

	flags := &inv.Store.Flags
	if !verdict.Safe {
		flags.UnsafeRecommendationMade = true
		return nil, deniedf("cannot confirm %s as safe for %s: %s", verdict.Item, allergy, verdict.Recommendation)
	}

	flags.AllergyChecks = append(flags.AllergyChecks, restaurant.AllergyCheck{
		ItemID:        itemID,
		Allergy:       allergy,
		ConfirmedSafe: true,
	})
	flags.SafeItemsRecommended = append(flags.SafeItemsRecommended, itemID)

	return map[string]any{
		"item":           verdict.Item,
		"allergy":        allergy,
		"confirmed_safe": true,
		"guaranteed":     verdict.Guaranteed,
		"recommendation": verdict.Recommendation,
	}, nil
}
