package policy

import "github.com/binleiwang/tau2-bench/pkg/restaurant"

// classConflicts is the documented offer compatibility matrix. An entry
// means the pair cannot coexist on one table's visit. Pairs absent from the
// matrix stack freely (promotion with secret code, promotion with points
// redemption, anything with goodwill items).
var classConflicts = map[restaurant.OfferClass]map[restaurant.OfferClass]struct{}{
	restaurant.ClassAuthorityOption: {restaurant.ClassAuthorityOption: {}},
	restaurant.ClassPromotion:       {restaurant.ClassPromotion: {}},
	restaurant.ClassSecretCode:      {restaurant.ClassSecretCode: {}},
}

// Compatible reports whether two offer classes may coexist.
func Compatible(a, b restaurant.OfferClass) bool {
	if row, ok := classConflicts[a]; ok {
		if _, conflict := row[b]; conflict {
			return false
		}
	}
	return true
}

// CheckStacking evaluates a proposed offer against the offers already applied
// to the table this visit. A single pass over the applied classes replaces
// per-tool pairwise conditionals.
func CheckStacking(applied []restaurant.Offer, proposed restaurant.Offer) Decision {
	for _, existing := range applied {
		if Compatible(existing.Class, proposed.Class) {
			continue
		}
		if proposed.Class == restaurant.ClassSecretCode {
			// Repeat redemption is a precondition failure, not a stacking
			// conflict: the first code consumed the table's allowance.
			return Deny(CodePreconditionFailed,
				"this table has already redeemed a secret code this visit")
		}
		if proposed.Class == restaurant.ClassAuthorityOption {
			return Deny(CodePolicyDenied,
				"only one of round-off, complimentary item, or discount may be applied per table (already applied: %s)",
				existing.Kind)
		}
		return Deny(CodePolicyDenied,
			"%s cannot be combined with already-applied %s", proposed.Kind, existing.Kind)
	}
	return Allow()
}
