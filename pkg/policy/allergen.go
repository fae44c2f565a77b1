package policy

import (
	"strings"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// PlainWaterID is the only soup base that may ever be confirmed
// unconditionally safe.
const PlainWaterID = "S08"

// SafetyVerdict is the result of resolving an allergy question against the
// allergen lookup tables. Safe is an affirmative claim and is only ever true
// when a lookup backs it; Guaranteed distinguishes "confirmed safe" from
// "appears safe based on known ingredients".
type SafetyVerdict struct {
	Item              string
	Safe              bool
	Guaranteed        bool
	KnownAllergens    []string
	HiddenIngredients []string
	Recommendation    string
}

// cannotGuarantee is the standing recommendation for any item whose full
// composition is not known.
const cannotGuarantee = "Cannot guarantee safety due to pre-processed ingredients and " +
	"cross-contamination risk. Plain Water base is strongly recommended for severe allergies."

// glutenQuery reports whether the allergy is a gluten or celiac concern,
// which gets the strictest handling.
func glutenQuery(allergy string) bool {
	a := strings.ToLower(allergy)
	return strings.Contains(a, "gluten") || strings.Contains(a, "celiac")
}

// ResolveSoupBaseSafety resolves an allergy question for a soup base.
// Plain Water is always safe; every other base with pre-processed
// sub-ingredients resolves to "cannot guarantee" regardless of its known
// allergen list.
func ResolveSoupBaseSafety(sb *restaurant.SoupBase, allergy string) SafetyVerdict {
	if sb.ID == PlainWaterID {
		return SafetyVerdict{
			Item:           sb.Name,
			Safe:           true,
			Guaranteed:     true,
			Recommendation: "Plain Water is the safest option for severe allergies.",
		}
	}

	v := SafetyVerdict{
		Item:              sb.Name,
		KnownAllergens:    sb.Allergens,
		HiddenIngredients: sb.HiddenIngredients,
		Recommendation:    cannotGuarantee,
	}

	if glutenQuery(allergy) {
		// Gluten/celiac never resolves affirmative outside Plain Water.
		return v
	}

	listed := containsFold(sb.Allergens, allergy) || containsFold(sb.HiddenIngredients, allergy)
	if listed || sb.PreProcessed || len(sb.HiddenIngredients) > 0 {
		return v
	}

	v.Safe = true
	v.Recommendation = "Appears safe based on known ingredients, but please inform us of your allergy."
	return v
}

// ResolveMenuItemSafety resolves an allergy question for a menu item via its
// allergen lookup entry. Items without an explicit safe marking resolve to
// unsafe/uncertain with a Plain Water recommendation.
func ResolveMenuItemSafety(it *restaurant.MenuItem, allergy string) SafetyVerdict {
	v := SafetyVerdict{
		Item:           it.Name,
		KnownAllergens: it.Allergens,
	}

	if glutenQuery(allergy) {
		if it.GlutenSafe && !it.PreProcessed {
			v.Safe = true
			v.Recommendation = "Confirmed gluten-free per the allergen table."
			return v
		}
		v.Recommendation = cannotGuarantee
		return v
	}

	if containsFold(it.Allergens, allergy) {
		v.Recommendation = "Contains " + allergy + ". Not recommended for this allergy."
		return v
	}
	if it.PreProcessed {
		v.Recommendation = cannotGuarantee
		return v
	}

	v.Safe = true
	v.Recommendation = "Appears safe based on known ingredients, but please inform us of your allergy."
	return v
}

// UnsafeConfirmation reports whether confirming the given soup base as safe
// would violate the hard safety invariant: no affirmative claim for an item
// with processed sub-ingredients other than Plain Water.
func UnsafeConfirmation(sb *restaurant.SoupBase) bool {
	return sb.ID != PlainWaterID && sb.PreProcessed
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
