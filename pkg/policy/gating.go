package policy

import (
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// MaxWeekendPartySize is the largest party accepted on weekends and federal
// holidays regardless of physical table capacity.
const MaxWeekendPartySize = 20

// CheckReservationSize gates reservation party size on the calendar: parties
// over the limit are denied on weekends and federal holidays.
func CheckReservationSize(date time.Time, partySize int) Decision {
	if partySize <= 0 {
		return Deny(CodePolicyDenied, "party size must be positive")
	}
	if partySize > MaxWeekendPartySize && (restaurant.IsWeekend(date) || restaurant.IsFederalHoliday(date)) {
		return Deny(CodePolicyDenied,
			"reservations for parties over %d are not accepted on weekends and federal holidays",
			MaxWeekendPartySize)
	}
	return Allow()
}

// CheckSeating gates seating a party at a table. The squeeze tier is only
// reachable when the customer explicitly requested it; otherwise expansion is
// the hard limit.
func CheckSeating(t *restaurant.Table, partySize int, squeezeRequested bool) Decision {
	if t.Status != restaurant.TableAvailable {
		return Deny(CodePreconditionFailed, "table %s is %s", t.ID, t.Status)
	}
	if partySize <= t.StdExpansion {
		return Allow()
	}
	if partySize <= t.MaxSqueeze {
		if squeezeRequested {
			return Allow()
		}
		return Deny(CodePolicyDenied,
			"party of %d exceeds table %s expansion capacity (%d); squeeze seating requires an explicit customer request",
			partySize, t.ID, t.StdExpansion)
	}
	return Deny(CodePreconditionFailed,
		"party of %d exceeds table %s maximum squeeze capacity (%d)",
		partySize, t.ID, t.MaxSqueeze)
}

// LunchSpecialStatus is the availability verdict for the lunch special.
type LunchSpecialStatus struct {
	Available  bool
	IsHoliday  bool
	IsWeekday  bool
	BeforeFive bool
	Reason     string
}

// CheckLunchSpecial gates the lunch special on the calendar: weekdays before
// 5 PM, never on federal holidays.
func CheckLunchSpecial(now time.Time) LunchSpecialStatus {
	st := LunchSpecialStatus{
		IsHoliday:  restaurant.IsFederalHoliday(now),
		IsWeekday:  restaurant.IsWeekday(now),
		BeforeFive: restaurant.IsLunchTime(now),
	}
	switch {
	case st.IsHoliday:
		st.Reason = "lunch special is not available on federal holidays"
	case !st.IsWeekday:
		st.Reason = "lunch special is only available Monday through Friday"
	case !st.BeforeFive:
		st.Reason = "lunch special is only available before 5 PM"
	default:
		st.Available = true
	}
	return st
}
