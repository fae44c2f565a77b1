package policy

import "github.com/binleiwang/tau2-bench/pkg/restaurant"

// BenefitKind identifies which authority ceiling a requested benefit is
// measured against.
type BenefitKind string

const (
	// BenefitDiscountPct is a percentage discount on the bill.
	BenefitDiscountPct BenefitKind = "discount_pct"

	// BenefitCompValue is the dollar value of a complimentary item.
	BenefitCompValue BenefitKind = "comp_value"

	// BenefitRoundOff is a fixed dollar round-off of the bill.
	BenefitRoundOff BenefitKind = "round_off"
)

// Ceiling returns the role's ceiling for a benefit kind. The second return
// is false when the role is unbounded.
func Ceiling(auth restaurant.StaffAuthority, kind BenefitKind) (float64, bool) {
	if auth.Unlimited {
		return 0, false
	}
	switch kind {
	case BenefitDiscountPct:
		return auth.MaxDiscountPct, true
	case BenefitCompValue:
		return auth.MaxCompValue, true
	case BenefitRoundOff:
		return auth.MaxRoundOff, true
	default:
		return 0, true
	}
}

// CheckAuthority compares a requested benefit amount against the acting
// role's ceiling. Amounts above the ceiling require escalation; they are
// never applied directly.
func CheckAuthority(auth restaurant.StaffAuthority, kind BenefitKind, amount float64) Decision {
	if amount < 0 {
		return Deny(CodePolicyDenied, "benefit amount cannot be negative")
	}
	ceiling, bounded := Ceiling(auth, kind)
	if !bounded {
		return Allow()
	}
	if amount > ceiling {
		switch kind {
		case BenefitDiscountPct:
			return Escalate("discount of %.0f%% exceeds %s authority (%.0f%%)", amount, auth.Role, ceiling)
		case BenefitCompValue:
			return Escalate("comp value $%.2f exceeds %s authority ($%.2f)", amount, auth.Role, ceiling)
		default:
			return Escalate("round-off of $%.2f exceeds %s authority ($%.2f)", amount, auth.Role, ceiling)
		}
	}
	return Allow()
}
